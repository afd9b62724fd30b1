package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/timeboxd/internal/commands"
	"github.com/sandeepkv93/timeboxd/internal/config"
	"github.com/sandeepkv93/timeboxd/internal/focus"
	"github.com/sandeepkv93/timeboxd/internal/logging"
	"github.com/sandeepkv93/timeboxd/internal/model"
	"github.com/sandeepkv93/timeboxd/internal/planner"
	"github.com/sandeepkv93/timeboxd/internal/prefs"
	"github.com/sandeepkv93/timeboxd/internal/scheduler"
	"github.com/sandeepkv93/timeboxd/internal/storage"
	"github.com/sandeepkv93/timeboxd/internal/update"
)

// app is everything a command needs, opened from configuration.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	repo   storage.Repository
	store  *planner.Store
	prefs  *prefs.Store
}

func openApp(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	repo, openErr := storage.Open(cfg.Storage.Backend, cfg.Storage.DataDir, cfg.Storage.DBPath)
	if openErr != nil {
		// The planner keeps working in memory.
		logger.Warn("open storage", zap.String("backend", string(cfg.Storage.Backend)), zap.Error(openErr))
		repo = nil
	}
	store, err := planner.New(ctx, planner.Options{Repo: repo, Logger: logger, OpenErr: openErr})
	if err != nil {
		if repo != nil {
			_ = repo.Close()
		}
		return nil, err
	}
	return &app{
		cfg:    cfg,
		logger: logger,
		repo:   repo,
		store:  store,
		prefs:  prefs.New(repo, logger),
	}, nil
}

func (a *app) Close() error {
	var err error
	if a.repo != nil {
		err = a.repo.Close()
	}
	_ = a.logger.Sync()
	return err
}

// run parses line with the palette grammar and executes it against the store.
func (a *app) run(ctx context.Context, line string) (commands.Result, error) {
	cmd, err := commands.Parse(line)
	if err != nil {
		return commands.Result{}, err
	}
	res, err := commands.Execute(cmd, commands.Bind(ctx, a.store, func(theme model.Theme) error {
		return a.prefs.SetTheme(ctx, theme)
	}))
	if err != nil {
		return commands.Result{}, err
	}
	a.logger.Info("command executed", zap.String("command", string(cmd.Type)))
	return res, nil
}

func runTUI(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a, err := openApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	engine := scheduler.NewEngine(a.cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if a.cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}
	m := update.NewModel(update.Deps{
		Ctx:            ctx,
		Store:          a.store,
		Prefs:          a.prefs,
		Engine:         engine,
		Timer:          focus.NewTimer(a.cfg.WarningSeconds),
		Notifier:       notifier,
		Logger:         a.logger,
		NewTickSource:  opts.newTickSource,
		DesktopEnabled: a.cfg.DesktopNotifications,
	})
	a.logger.Info("tui starting", zap.String("backend", string(a.cfg.Storage.Backend)), zap.Bool("degraded", a.store.Degraded()))
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
