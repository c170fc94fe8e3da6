package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/config"
	"github.com/pattyalex/brand-journey-tracker/internal/database"
	"github.com/pattyalex/brand-journey-tracker/internal/events"
	"github.com/pattyalex/brand-journey-tracker/internal/reorder"
	archiveservice "github.com/pattyalex/brand-journey-tracker/internal/services/archive"
	boardservice "github.com/pattyalex/brand-journey-tracker/internal/services/board"
	scheduleservice "github.com/pattyalex/brand-journey-tracker/internal/services/schedule"
	"github.com/pattyalex/brand-journey-tracker/internal/session"
	"github.com/pattyalex/brand-journey-tracker/internal/transition"
	"github.com/pattyalex/brand-journey-tracker/internal/user"
	"github.com/pattyalex/brand-journey-tracker/internal/wizard"
	"golang.org/x/sync/errgroup"
)

// App holds all application services and provides dependency injection.
// One App is one view: it owns a session over the shared store.
type App struct {
	db      *sql.DB
	bus     events.EventPublisher
	journal *events.JournaledBus
	ownsBus bool
	logger  *slog.Logger
	source  string

	Config  *config.Config
	Session *session.Session

	// Service layer (business logic)
	BoardService    boardservice.Service
	ScheduleService scheduleservice.Service
	ArchiveService  archiveservice.Service

	// Per-view interaction state
	Wizard *wizard.Controller
	Drag   *reorder.Engine
}

// Policy builds the stage transition policy from the workflow settings
func Policy(cfg *config.Config) transition.Policy {
	return transition.Policy{
		DefaultProductionStatus: cfg.Workflow.DefaultProductionStatus,
		DefaultStartTime:        cfg.Workflow.DefaultStartTime,
		Slot:                    cfg.Workflow.Slot(),
	}
}

// New creates a new App with all services initialized over an open database.
// The App takes ownership of db.
func New(ctx context.Context, cfg *config.Config, db *sql.DB, opts ...Option) *App {
	ac := &appConfig{}
	for _, opt := range opts {
		opt(ac)
	}
	if ac.logger == nil {
		ac.logger = slog.Default()
	}
	if ac.source == "" {
		ac.source = user.NewSourceTag()
	}

	a := &App{db: db, Config: cfg, logger: ac.logger, source: ac.source}
	if ac.eventClient != nil {
		a.bus = ac.eventClient
	} else {
		// Views in other processes share only the database, so every send is
		// journaled there as well.
		eventLog := database.NewEventLog(db)
		if n, err := eventLog.Prune(ctx, time.Now().Add(-events.JournalRetention)); err != nil {
			a.logger.Warn("failed to prune event journal", "error", err)
		} else if n > 0 {
			a.logger.Debug("pruned event journal", "entries", n)
		}
		a.journal = events.NewJournaledBus(events.NewBus(cfg.Events.BufferSize), eventLog)
		a.bus = a.journal
		a.ownsBus = true
	}

	a.Session = session.New(ctx, database.NewStore(db), a.bus, ac.source, cfg.Events.PublishRetries)
	a.BoardService = boardservice.NewService(a.Session, Policy(cfg))
	a.ScheduleService = scheduleservice.NewService(a.Session, cfg.Workflow.Slot())
	a.ArchiveService = archiveservice.NewService(a.Session)
	a.Wizard = wizard.New(a.BoardService, a.ScheduleService)
	a.Drag = reorder.NewEngine(a.BoardService)

	a.logger.Debug("app initialized", "source", ac.source, "data_dir", cfg.DataDir)
	return a
}

// Open opens the database under cfg.DataDir and builds the App on top of it
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	db, err := database.InitDB(ctx, database.DefaultPath(cfg.DataDir))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return New(ctx, cfg, db, opts...), nil
}

// Run serves the background loops of a long-lived view: replaying events
// journaled by other processes, reloading on other views' updates and
// handling archive requests. Blocks until ctx is done.
func (a *App) Run(ctx context.Context, onReload func()) error {
	g, ctx := errgroup.WithContext(ctx)
	if a.journal != nil {
		g.Go(func() error { return a.journal.Follow(ctx, a.source, a.Config.Events.PollInterval()) })
	}
	g.Go(func() error { return a.Session.Listen(ctx, onReload) })
	g.Go(func() error { return a.ArchiveService.Run(ctx) })

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close performs cleanup of application resources
func (a *App) Close() error {
	var errs []error
	if a.ownsBus {
		errs = append(errs, a.bus.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
