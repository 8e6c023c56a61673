package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/ytsheet/internal/models"
	"github.com/urfave/cli/v3"
)

var errNoHistory = errors.New("export history is disabled; set database.enabled in the config")

// History prints recorded exports, most recent first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	defer r.Close()

	if r.exports == nil && !r.config.Database.Enabled {
		return errNoHistory
	}

	exports, err := r.exportHistory()
	if err != nil {
		return fmt.Errorf("failed to open export history: %w", err)
	}

	limit := int(cmd.Int("limit"))
	var runs []*models.ExportRun
	if playlistID := cmd.String("playlist"); playlistID != "" {
		runs, err = exports.ListByPlaylist(playlistID, limit)
	} else {
		runs, err = exports.List(limit)
	}
	if err != nil {
		return fmt.Errorf("failed to list exports: %w", err)
	}

	r.writePlainHeader("Export History")
	if len(runs) == 0 {
		r.writePlain("No exports recorded.\n")
		return nil
	}

	for _, run := range runs {
		status := ""
		if run.Partial {
			status = " (partial)"
		}
		r.writePlain("#%d  %s  %s [%s]\n", run.Sequence(), run.CreatedAt().Local().Format("2006-01-02 15:04"), run.PlaylistTitle, run.PlaylistID)
		r.writePlain("    %d rows, %d skipped%s -> %s\n", run.Rows, run.Skipped, status, run.Path)
	}
	return nil
}

// historyCommand lists previous exports from the history database.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List previous exports",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of exports to show (0 for all)",
				Value:   20,
			},
			&cli.StringFlag{
				Name:  "playlist",
				Usage: "Only show exports of this playlist ID",
			},
		},
		Action: r.History,
	}
}
