package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexa-app/lexa-api/internal/config"
	"github.com/lexa-app/lexa-api/internal/domain/srs"
	"github.com/lexa-app/lexa-api/internal/events"
	"github.com/lexa-app/lexa-api/internal/platform/clock"
	"github.com/lexa-app/lexa-api/internal/platform/postgres"
	"github.com/lexa-app/lexa-api/internal/service/auth"
	"github.com/lexa-app/lexa-api/internal/service/progress"
	syncpkg "github.com/lexa-app/lexa-api/internal/sync"
)

// application holds the wired dependencies for the server.
type application struct {
	config          *config.Config
	logger          *slog.Logger
	db              *sql.DB
	jwtService      auth.JWTService
	progressService progress.ProgressService
	dispatcher      *syncpkg.Dispatcher
}

// newApplication connects to the database, runs migrations and wires the
// service graph.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := postgres.RunMigrations(db, logger); err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	location, err := time.LoadLocation(cfg.Engine.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid engine timezone %q: %w", cfg.Engine.Timezone, err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	profileStore := postgres.NewPostgresProfileStore(db, logger)
	activityStore := postgres.NewPostgresDailyActivityStore(db, logger)
	progressStore := postgres.NewPostgresWordProgressStore(db, logger)
	eventStore := postgres.NewPostgresXPEventStore(db, logger)
	catalog := postgres.NewPostgresWordCatalog(db, logger)

	emitter := events.NewInMemoryEventEmitter(logger)
	dispatcher := syncpkg.NewDispatcher(
		syncpkg.NewLoggingMirror(logger),
		syncpkg.DefaultDispatcherConfig(),
		logger,
	)
	emitter.RegisterHandler(dispatcher)
	dispatcher.Start()

	progressService := progress.NewProgressService(
		db,
		profileStore,
		activityStore,
		progressStore,
		eventStore,
		catalog,
		srs.NewDefaultScheduler(),
		emitter,
		clock.New(),
		location,
		cfg.Engine.DefaultDailyGoalXP,
		logger,
	)

	return &application{
		config:          cfg,
		logger:          logger,
		db:              db,
		jwtService:      jwtService,
		progressService: progressService,
		dispatcher:      dispatcher,
	}, nil
}

// cleanup releases application resources in reverse dependency order.
func (app *application) cleanup() {
	if app.dispatcher != nil {
		app.dispatcher.Stop()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
