package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/lingo/internal/api"
	"github.com/phrazzld/lingo/internal/config"
	"github.com/phrazzld/lingo/internal/events"
	"github.com/phrazzld/lingo/internal/generation"
	"github.com/phrazzld/lingo/internal/lesson"
	"github.com/phrazzld/lingo/internal/redact"
	"github.com/phrazzld/lingo/internal/task"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	provider generation.ContentProvider

	// Event system
	eventEmitter *events.InMemoryEventEmitter

	// Image back-fill
	taskRunner *task.Runner

	sessions  *lesson.Manager
	templates *api.TemplateRenderer

	// cancel ends the context every session request runs under.
	cancel context.CancelFunc
}

// newApplication wires sessions, the image back-fill pipeline and the HTML
// templates around provider, and starts the background workers.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	provider generation.ContentProvider,
) (*application, error) {
	templates, err := api.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	appCtx, cancel := context.WithCancel(ctx)
	app := &application{
		config:    cfg,
		logger:    logger,
		provider:  provider,
		templates: templates,
		cancel:    cancel,
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	app.sessions = lesson.NewManager(
		appCtx,
		provider,
		task.NewEventImageScheduler(app.eventEmitter),
		lesson.ManagerConfig{
			IdleTTL:         time.Duration(cfg.Session.IdleTTLMinutes) * time.Minute,
			JanitorInterval: time.Duration(cfg.Session.JanitorIntervalSeconds) * time.Second,
		},
		logger,
	)

	app.taskRunner = setupTaskRunner(app)

	factory := task.NewImageBackfillTaskFactory(provider, app.sessions, logger)
	app.eventEmitter.Subscribe(
		task.TaskTypeImageBackfill,
		task.NewImageTaskEventHandler(factory, app.taskRunner, logger),
	)

	go app.sessions.RunJanitor(appCtx)

	logger.Info("Application initialized successfully",
		"worker_count", cfg.Task.WorkerCount,
		"queue_size", cfg.Task.QueueSize,
		"session_idle_ttl_minutes", cfg.Session.IdleTTLMinutes)
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// setupTaskRunner creates and starts the image back-fill runner.
func setupTaskRunner(app *application) *task.Runner {
	runner := task.NewRunner(task.RunnerConfig{
		WorkerCount: app.config.Task.WorkerCount,
		QueueSize:   app.config.Task.QueueSize,
	}, app.logger)

	runner.SetErrorHandler(func(t task.Task, err error) {
		app.logger.Warn("image back-fill task failed",
			"task_id", t.ID(),
			"task_type", t.Type(),
			"error", redact.Error(err))
	})

	runner.Start()
	return runner
}

// cleanup handles graceful shutdown of application resources. Sessions are
// closed first so that queued back-fill tasks see cancelled contexts.
func (app *application) cleanup() {
	if app.sessions != nil {
		app.sessions.Shutdown()
	}
	if app.cancel != nil {
		app.cancel()
	}
	if app.taskRunner != nil {
		app.taskRunner.Stop()

		completed, failed, cancelled := app.taskRunner.Stats()
		app.logger.Info("Task runner stopped",
			"completed", completed,
			"failed", failed,
			"cancelled", cancelled)
	}

	app.logger.Info("Application shutdown completed")
}
