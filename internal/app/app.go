package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/thenoetrevino/tablero/internal/analytics"
	"github.com/thenoetrevino/tablero/internal/clock"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/server"
	"github.com/thenoetrevino/tablero/internal/services/board"
	"github.com/thenoetrevino/tablero/internal/services/dashboard"
	"github.com/thenoetrevino/tablero/internal/user"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	db   *sqlx.DB
	repo database.DataStore

	// Change notification for the websocket push
	Bus *events.Bus

	Config *config.Config
	Clock  clock.Clock
	User   analytics.UserContext

	// Service layer (business logic)
	BoardService     board.Service
	DashboardService dashboard.Service
}

// New creates a new App over repo with all services initialized.
// A nil cfg uses config.Default().
func New(repo database.DataStore, cfg *config.Config, opts ...Option) *App {
	ac := &appConfig{}
	for _, opt := range opts {
		opt(ac)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if ac.clock == nil {
		ac.clock = clock.Real()
	}
	if ac.bus == nil {
		ac.bus = events.NewBus(events.DefaultBufferSize)
	}
	if ac.logger != nil {
		slog.SetDefault(ac.logger)
	}

	uc := analytics.UserContext{
		ActiveUserID: user.Resolve(cfg.User.Active),
		DailyTarget:  cfg.Dashboard.PersonalTargets.Daily,
		WeeklyTarget: cfg.Dashboard.PersonalTargets.Weekly,
	}
	boards := board.NewService(repo, ac.bus, ac.clock)

	return &App{
		repo:             repo,
		Bus:              ac.bus,
		Config:           cfg,
		Clock:            ac.clock,
		User:             uc,
		BoardService:     boards,
		DashboardService: dashboard.NewService(repo, boards, uc, ac.clock),
	}
}

// Open opens the configured SQLite database (or the default path) and
// builds the App on top of it. Close releases the database.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	path := cfg.Database.Path
	if path == "" {
		var err error
		if path, err = database.DefaultPath(); err != nil {
			return nil, err
		}
	}

	db, err := database.InitDB(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	slog.Debug("database opened", "path", path)

	a := New(database.NewRepository(db), cfg, opts...)
	a.db = db
	return a, nil
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Server builds the HTTP API over the app's services and config
func (a *App) Server() *server.Server {
	return server.New(server.Options{
		Addr:           a.Config.Server.Addr,
		AllowedOrigins: a.Config.Server.AllowedOrigins,
		Boards:         a.BoardService,
		Dashboard:      a.DashboardService,
		Bus:            a.Bus,
		Clock:          a.Clock,
		DefaultRange:   a.Config.Dashboard.DateRange(),
		DefaultQuick:   a.Config.Dashboard.QuickFilter(),
		Layout:         a.Config.Dashboard.ReportLayout(),
	})
}

// Close shuts the event bus and the database opened by Open
func (a *App) Close() error {
	var errs []error
	if err := a.Bus.Close(); err != nil {
		errs = append(errs, err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
