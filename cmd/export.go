package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/desertthunder/ytsheet/internal/auth"
	"github.com/desertthunder/ytsheet/internal/formatter"
	"github.com/desertthunder/ytsheet/internal/models"
	"github.com/desertthunder/ytsheet/internal/tasks"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

// Export authorizes, walks the playlist and writes the spreadsheet.
//
// Failures are reported on the console; the command itself always succeeds.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	defer r.Close()

	r.writePlain("YouTube Playlist to Excel\n")
	r.writePlain("---------------------------\n")

	secret := r.config.Auth.ClientSecretPath
	if _, err := os.Stat(secret); err != nil {
		r.logger.Debug("client secret missing", "path", secret, "error", err)
		name := filepath.Base(secret)
		r.writePlain("Error: %s not found.\n", name)
		r.writePlain("Please download your OAuth 2.0 Client ID credentials from Google Cloud Console\n")
		r.writePlain("and save it as '%s' in the same directory as this program.\n", name)
		return nil
	}

	if err := r.export(ctx, cmd.StringArg("playlist_id"), cmd.String("output")); err != nil {
		r.logger.Debug("export failed", "error", err)
		r.writePlain("An error occurred: %v\n", err)
	}
	return nil
}

func (r *Runner) export(ctx context.Context, playlistID, output string) error {
	config, err := auth.LoadClientConfig(r.config.Auth.ClientSecretPath)
	if err != nil {
		return err
	}

	manager := auth.NewManager(config, r.credentialStore(), r.authPrompter(), r.logger)
	client, err := manager.Client(ctx)
	if err != nil {
		return err
	}

	svc, err := r.newService(ctx, client)
	if err != nil {
		return err
	}

	if playlistID == "" {
		if playlistID, err = r.ask(ctx, "Enter YouTube playlist ID: "); err != nil {
			return err
		}
	}

	engine := tasks.NewPlaylistEngine(svc, tasks.EngineOptsFromConfig(r.config.YouTube, r.logger))

	title := engine.ResolveTitle(ctx, playlistID)
	r.writePlain("Processing playlist: %s (ID: %s)\n", title, playlistID)
	r.writePlain("Fetching videos from playlist...\n")

	result := r.enumerate(ctx, engine, playlistID)
	if result.Partial() {
		r.writePlain("Warning: stopped after %d page(s): %v\n", result.Pages, result.PageErr)
	}
	if skipped := result.Skipped(); skipped > 0 {
		r.logger.Info("skipped unavailable videos", "missing", result.Missing(), "failed", result.Failed())
	}

	if len(result.Records) == 0 {
		r.writePlain("No videos found in the playlist.\n")
		return nil
	}
	r.writePlain("Found %d videos in the playlist.\n", len(result.Records))

	path, err := formatter.WriteSpreadsheet(result.Records, title, output)
	if err != nil {
		return err
	}

	r.recordExport(models.NewExportRun(playlistID, title, path, len(result.Records), result.Skipped(), result.Partial()))

	r.writePlainln("Successfully created Excel file: %s", path)
	r.writePlain("The Excel file contains the following columns:\n")
	for _, col := range []string{"Channel", "Video Title", "Video Description", "Link to Video", "Watched Status (checkbox)"} {
		r.writePlain("- %s\n", col)
	}
	return nil
}

// enumerate runs the engine while a goroutine drains progress updates into the bar.
func (r *Runner) enumerate(ctx context.Context, engine *tasks.PlaylistEngine, playlistID string) *tasks.EnumerateResult {
	progressCh := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})

	go func() {
		defer close(done)

		var bar *progressbar.ProgressBar
		for update := range progressCh {
			r.logger.Debug(update.Message, "phase", update.Phase)
			if r.progress == nil {
				continue
			}

			switch update.Phase {
			case tasks.FetchPage:
				if bar != nil {
					bar.Describe(update.Message)
				}
			case tasks.LookupVideos:
				if bar == nil {
					bar = newProgressBar(r.progress, update.Total)
				}
				bar.ChangeMax(update.Total)
				bar.Set(update.Step)
			case tasks.EnumerationDone:
				if bar != nil {
					bar.Finish()
				}
			}
		}
	}()

	result := engine.Enumerate(ctx, progressCh, playlistID)
	close(progressCh)
	<-done
	return result
}

// recordExport appends the run to the history database. Failures are only logged.
func (r *Runner) recordExport(run *models.ExportRun) {
	if r.exports == nil && !r.config.Database.Enabled {
		return
	}

	exports, err := r.exportHistory()
	if err != nil {
		r.logger.Warn("export history unavailable", "error", err)
		return
	}

	if err := exports.Create(run); err != nil {
		r.logger.Warn("failed to record export", "error", err)
		return
	}
	r.logger.Debug("recorded export", "id", run.ID(), "sequence", run.Sequence())
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Looking up videos"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
