package main

import (
	"context"
	"os"

	"github.com/desertthunder/ytsheet/internal/shared"
	"github.com/desertthunder/ytsheet/internal/ui"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	opts := RunnerOpts{Logger: logger}
	if ui.IsTerminal(os.Stderr) {
		opts.Progress = os.Stderr
	}

	runner := NewRunner(opts)

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// newApp builds the command tree. The root action is the export itself.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "ytsheet",
		Usage:     "Export a YouTube playlist to an Excel spreadsheet",
		Version:   "0.1.0",
		ArgsUsage: "[playlist_id]",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist_id"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file name (default: <playlist title>_videos.xlsx; .csv writes CSV)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.loadConfig,
		Action:   r.Export,
		Commands: r.register(),
	}
}
