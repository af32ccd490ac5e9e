package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/glabrego/urlinfo-cli/internal/app"
	"github.com/glabrego/urlinfo-cli/internal/config"
	"github.com/glabrego/urlinfo-cli/internal/storage"
	"github.com/glabrego/urlinfo-cli/internal/tui"
	"github.com/glabrego/urlinfo-cli/internal/urlinfo"
)

// NewRootCommand creates the root command. Without a subcommand it starts the TUI.
func NewRootCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "urlinfo",
		Short:         "urlinfo - browse and manage URL info records",
		Long:          "urlinfo lists, searches, adds and deletes records of the URL info extractor API, and shows bitcoin exchange rates.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd)
		},
	}

	cmd.AddCommand(
		NewListCommand(),
		NewShowCommand(),
		NewAddCommand(),
		NewRemoveCommand(),
		NewRatesCommand(),
		NewHistoryCommand(),
	)
	return cmd
}

// env is everything a command needs, built from config.
type env struct {
	cfg     config.Config
	logger  *slog.Logger
	repo    *storage.Repository
	service *app.Service
}

func (e *env) Close() {
	if e.repo != nil {
		_ = e.repo.Close()
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return config.Config{}, fmt.Errorf("config error: %w", err)
	}
	return cfg, nil
}

// openEnv is newEnv for one-shot commands, which log to stderr.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newEnv(cmd.Context(), cfg, cmd.ErrOrStderr())
}

// newEnv opens the local database and builds the service. Logs go to logOut.
func newEnv(ctx context.Context, cfg config.Config, logOut io.Writer) (*env, error) {
	logger := cfg.NewLogger(logOut)

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	initCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := repo.Init(initCtx); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("storage schema error: %w", err)
	}
	if err := repo.CheckWritable(initCtx); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("storage write check failed (%v). Verify URLINFO_DB_PATH is writable: %s", err, cfg.DBPath)
	}

	client := urlinfo.NewClient(cfg.APIBaseURL, nil, logger)
	logger.Debug("cli: environment ready", "api", cfg.APIBaseURL, "db", cfg.DBPath)
	return &env{
		cfg:     cfg,
		logger:  logger,
		repo:    repo,
		service: app.NewService(client, repo, logger),
	}, nil
}

// tuiLogOutput opens the configured log file for the TUI, which owns the terminal.
func tuiLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func runTUI(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logOut, closeLog, err := tuiLogOutput(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	e, err := newEnv(cmd.Context(), cfg, logOut)
	if err != nil {
		return err
	}
	defer e.Close()

	model := tui.NewModel(e.service, e.cfg.Timeout)

	prefCtx, prefCancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	prefs, err := e.service.LoadUIPreferences(prefCtx)
	prefCancel()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not load UI preferences (%v), using defaults\n", err)
		prefs = storage.DefaultUIPreferences
	}
	if !e.cfg.InlineImages {
		prefs.InlineImages = false
	}
	model.ApplyPreferences(prefs)

	model.SetPreferencesSaver(func(p storage.UIPreferences) error {
		saveCtx, saveCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer saveCancel()
		return e.service.SaveUIPreferences(saveCtx, p)
	})

	e.logger.Info("tui: starting")
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
