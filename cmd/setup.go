package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/ytsheet/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the example configuration to the --config path.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", path)

	r.writePlain("✓ Configuration written to %s\n", path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Create an OAuth 2.0 Client ID (Desktop app) in the Google Cloud Console\n")
	r.writePlain("2. Save it as %s\n", r.config.Auth.ClientSecretPath)
	r.writePlain("3. Run 'ytsheet <playlist_id>'\n")
	return nil
}

// SetupDatabase initializes the export history database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else if config, err := shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load created config, using defaults", "error", err)
		} else {
			r.config = config
		}
	}

	dbConfig := r.config.Database
	dbConfig.Enabled = true

	r.logger.Info("initializing database", "path", dbConfig.Path)

	db, err := shared.OpenHistory(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer db.Close()

	r.logger.Infof("setup complete for database: %v", dbConfig.Path)
	r.writePlain("✓ Export history ready at %s\n", dbConfig.Path)
	return nil
}

// setupCommand handles setup operations for configuration and the history database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write an example config.toml",
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the export history database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}
