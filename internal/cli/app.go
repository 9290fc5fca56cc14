package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sandeepkv93/hourline/internal/calendar"
	"github.com/sandeepkv93/hourline/internal/config"
	"github.com/sandeepkv93/hourline/internal/notify"
	"github.com/sandeepkv93/hourline/internal/scheduler"
	"github.com/sandeepkv93/hourline/internal/storage"
	"github.com/sandeepkv93/hourline/internal/store"
	"github.com/sandeepkv93/hourline/internal/timeline"
	"github.com/spf13/cobra"
)

// app is the wired runtime shared by every subcommand.
type app struct {
	cfg       config.RuntimeConfig
	logger    *slog.Logger
	repo      *storage.SQLiteRepository
	engine    *scheduler.Engine
	assembler *timeline.Assembler
	logCloser io.Closer
}

func loadConfig(opts *rootOptions) (config.RuntimeConfig, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.RuntimeConfig{}, err
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// openApp wires storage, the reminder engine and the assembler, then
// rehydrates tasks and reminders from the database.
func openApp(ctx context.Context, cfg config.RuntimeConfig, logOut io.Writer) (*app, error) {
	logger, closer, err := config.NewLogger(cfg, logOut)
	if err != nil {
		return nil, err
	}

	fail := func(err error, closers ...io.Closer) (*app, error) {
		for _, c := range closers {
			_ = c.Close()
		}
		_ = closer.Close()
		return nil, err
	}

	first, err := cfg.FirstWeekday()
	if err != nil {
		return fail(err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fail(fmt.Errorf("create data dir: %w", err))
	}
	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fail(err)
	}

	tasks, err := store.New(repo)
	if err != nil {
		return fail(err, repo)
	}
	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	reminders, err := notify.New(engine, tasks,
		notify.WithTimeout(cfg.ReminderTimeout),
		notify.WithLogger(logger),
	)
	if err != nil {
		return fail(err, repo)
	}
	assembler, err := timeline.New(tasks, reminders,
		timeline.WithWeek(calendar.NewWeek(first)),
		timeline.WithLogger(logger),
	)
	if err != nil {
		return fail(err, repo)
	}

	a := &app{cfg: cfg, logger: logger, repo: repo, engine: engine, assembler: assembler, logCloser: closer}
	if warning, err := assembler.Start(ctx); err != nil {
		a.Close()
		return nil, err
	} else if warning != nil {
		logger.Warn("starting with degraded reminders", "err", warning)
	}
	return a, nil
}

func (a *app) Close() {
	a.engine.Stop()
	if dropped := a.engine.Dropped(); dropped > 0 {
		a.logger.Warn("reminder events dropped", "count", dropped)
	}
	if err := a.repo.Close(); err != nil {
		a.logger.Warn("close database", "err", err)
	}
	_ = a.logCloser.Close()
}

// withApp opens the runtime for a one-shot command. Without a log file
// only warnings reach stderr unless --verbose is set.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(*app) error) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if cfg.LogFile == "" && !opts.verbose {
		cfg.LogLevel = "warn"
	}
	a, err := openApp(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
