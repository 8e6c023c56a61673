package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytsheet/internal/auth"
	"github.com/desertthunder/ytsheet/internal/repositories"
	"github.com/desertthunder/ytsheet/internal/services"
	"github.com/desertthunder/ytsheet/internal/shared"
	"github.com/desertthunder/ytsheet/internal/ui"
	"github.com/urfave/cli/v3"
)

// ServiceFactory builds the platform client on top of an authorized HTTP client.
type ServiceFactory func(ctx context.Context, client *http.Client) (services.Service, error)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	logger     *log.Logger
	output     io.Writer
	progress   io.Writer
	ask        ui.AskFunc
	newService ServiceFactory
	prompter   auth.Prompter
	store      auth.Store
	exports    *repositories.ExportRepository
	db         *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Nil fields are filled in from the configuration when a command runs.
type RunnerOpts struct {
	Config     *shared.Config
	Logger     *log.Logger
	Output     io.Writer
	Progress   io.Writer // Progress bar destination; nil disables the bar
	Ask        ui.AskFunc
	NewService ServiceFactory
	Prompter   auth.Prompter
	Store      auth.Store
	Exports    *repositories.ExportRepository
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Ask == nil {
		opts.Ask = ui.NewAsker(os.Stdin, os.Stdout)
	}
	if opts.NewService == nil {
		opts.NewService = youtubeService
	}

	return &Runner{
		config:     opts.Config,
		logger:     opts.Logger,
		output:     opts.Output,
		progress:   opts.Progress,
		ask:        opts.Ask,
		newService: opts.NewService,
		prompter:   opts.Prompter,
		store:      opts.Store,
		exports:    opts.Exports,
	}
}

func youtubeService(ctx context.Context, client *http.Client) (services.Service, error) {
	return services.NewYouTubeService(ctx, client)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){setupCommand, historyCommand} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig replaces the runner's configuration with the file named by --config, when it exists.
func (r *Runner) loadConfig(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	path := cmd.String("config")
	if _, err := os.Stat(path); err != nil {
		r.logger.Debug("config file not found, using defaults", "path", path)
		return ctx, nil
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return ctx, err
	}
	r.config = config
	r.logger.Debug("loaded config", "path", path, "flow", config.Auth.Flow)
	return ctx, nil
}

// credentialStore returns the injected store or the token file from the configuration.
func (r *Runner) credentialStore() auth.Store {
	if r.store != nil {
		return r.store
	}
	return auth.NewFileStore(r.config.Auth.TokenPath)
}

// authPrompter returns the injected prompter or the one selected by auth.flow.
func (r *Runner) authPrompter() auth.Prompter {
	if r.prompter != nil {
		return r.prompter
	}
	if r.config.Auth.Flow == shared.FlowLoopback {
		return auth.NewLoopbackPrompter(r.config.ServerAddr(), r.output, r.logger)
	}
	return auth.NewConsolePrompter(r.output, auth.Asker(r.ask), r.config.Auth.RedirectURL)
}

// exportHistory opens the history database on first use.
func (r *Runner) exportHistory() (*repositories.ExportRepository, error) {
	if r.exports != nil {
		return r.exports, nil
	}

	db, err := shared.OpenHistory(r.config.Database)
	if err != nil {
		return nil, err
	}
	r.db = db
	r.exports = repositories.NewExportRepository(db)
	return r.exports, nil
}

// Close releases the history database if this runner opened it.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	r.exports = nil
	return err
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
