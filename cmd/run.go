package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathjourney/internal/app"
	"github.com/abhisek/mathjourney/internal/catalog"
	"github.com/abhisek/mathjourney/internal/coach"
	"github.com/abhisek/mathjourney/internal/config"
	"github.com/abhisek/mathjourney/internal/game"
	"github.com/abhisek/mathjourney/internal/llm"
	"github.com/abhisek/mathjourney/internal/progress"
	"github.com/abhisek/mathjourney/internal/store"
)

// env holds what every command needs: settings, the lesson catalog, the
// progress store and, when it could be opened, the SQLite journal.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	catalog  *catalog.Catalog
	progress progress.Store
	journal  *store.Store // nil when the journal is unavailable
}

// loadConfig reads the environment and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("progress"); p != "" {
		cfg.Progress = p
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB = p
	}
	if b, _ := cmd.Flags().GetString("backend"); b != "" {
		cfg.Backend = config.Backend(b)
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the journal path: --db or MATHJOURNEY_DB, then
// the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// tuiLogName is the log file written next to the journal while the TUI
// owns the terminal.
const tuiLogName = "mathjourney.log"

// openTUILog opens the TUI log file in the journal's directory. Logs are
// discarded when the file cannot be opened.
func openTUILog(cfg config.Config) (io.Writer, func() error) {
	noop := func() error { return nil }
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return io.Discard, noop
	}
	f, err := os.OpenFile(filepath.Join(filepath.Dir(dbPath), tuiLogName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard, noop
	}
	return f, f.Close
}

// openEnv builds the shared dependencies. A journal that cannot be opened
// is reported on stderr and skipped unless the sqlite backend needs it.
func openEnv(cmd *cobra.Command, logOut io.Writer) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, logger: cfg.NewLogger(logOut)}

	if cfg.Lessons != "" {
		e.catalog, err = catalog.LoadFile(cfg.Lessons)
	} else {
		e.catalog, err = catalog.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("load lessons: %w", err)
	}

	dbPath, err := resolveDBPath(cfg)
	if err == nil {
		e.journal, err = store.Open(dbPath)
	}
	if err != nil {
		if cfg.Backend == config.BackendSQLite {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Warning: history is unavailable:", err)
	}

	switch cfg.Backend {
	case config.BackendSQLite:
		e.progress = store.NewProgressStore(e.journal.SnapshotRepo(), time.Now, e.logger)
	default:
		path := cfg.Progress
		if path == "" {
			if path, err = progress.DefaultPath(); err != nil {
				e.Close()
				return nil, fmt.Errorf("resolve progress path: %w", err)
			}
		}
		e.progress = progress.NewFileStore(path, progress.WithLogger(e.logger))
	}
	return e, nil
}

// Close releases the journal.
func (e *env) Close() error {
	if e.journal == nil {
		return nil
	}
	return e.journal.Close()
}

// controller builds a controller and loads saved progress. A load error
// is returned as a warning; the controller is usable either way.
func (e *env) controller(ctx context.Context) (*game.Controller, string) {
	opts := []game.Option{game.WithLogger(e.logger)}
	if e.journal != nil {
		opts = append(opts, game.WithJournal(e.journal.EventRepo()))
	}
	ctrl := game.New(e.progress, e.catalog, opts...)
	if err := ctrl.Load(ctx); err != nil {
		var pe *progress.PersistenceError
		if errors.As(err, &pe) && errors.Is(err, progress.ErrCorrupt) {
			return ctrl, "Saved progress was damaged and has been set aside. Starting fresh."
		}
		return ctrl, "Could not read saved progress: " + err.Error()
	}
	return ctrl, ""
}

// coach returns a hint coach, or nil when hints are off or no provider
// is configured.
func (e *env) coach(ctx context.Context) *coach.Service {
	if !e.cfg.Hints {
		return nil
	}
	llmCfg, err := llm.LoadConfig(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: hint settings ignored:", err)
		return nil
	}

	var journal llm.RequestJournal
	if e.journal != nil {
		journal = e.journal.EventRepo()
	}
	provider, err := llm.NewProvider(ctx, llmCfg, journal, e.logger)
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			fmt.Fprintln(os.Stderr, "Warning: hints unavailable:", err)
		}
		return nil
	}
	return coach.New(provider, coach.WithLogger(e.logger))
}

// runApp wires the dependencies and launches the TUI.
func runApp(cmd *cobra.Command, startLesson int) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return errors.New("mathjourney needs an interactive terminal; try `mathjourney stats` instead")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// The TUI draws over stderr, so logs go to a file instead.
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logOut, closeLog := openTUILog(cfg)
	defer closeLog()

	e, err := openEnv(cmd, logOut)
	if err != nil {
		return err
	}
	defer e.Close()

	ctrl, warning := e.controller(ctx)
	opts := app.Options{
		Controller:  ctrl,
		Coach:       e.coach(ctx),
		StartLesson: startLesson,
		Warning:     warning,
	}
	if e.journal != nil {
		opts.History = e.journal.EventRepo()
	}
	if startLesson > 0 {
		if _, ok := e.catalog.Lookup(startLesson); !ok {
			return fmt.Errorf("lesson %d: %w", startLesson, catalog.ErrUnknownLesson)
		}
	}
	if warning != "" {
		e.logger.Warn("starting with a warning", "warning", warning)
	}
	return app.Run(opts)
}
