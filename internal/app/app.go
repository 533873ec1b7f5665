package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/migrations"
	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/server"
)

// Application aggregates shared infrastructure (DB pool, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool *pgxpool.Pool
	http *http.Server
}

// Deps is the wired domain layer, shared by the API and the importer.
type Deps struct {
	Logger    zerolog.Logger
	Pool      *pgxpool.Pool
	Questions *question.Service
}

// Bootstrap opens Postgres, optionally migrates it and builds the question
// service. Callers own the returned pool.
func Bootstrap(ctx context.Context, cfg *config.App) (*Deps, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Msg("starting application bootstrap")

	pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if cfg.Postgres.AutoMigrate {
		db := stdlib.OpenDBFromPool(pool)
		err := migrations.Up(ctx, db)
		_ = db.Close()
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		logger.Info().Msg("migrations applied")
	}

	q := queries.New(pool)
	svc := question.NewService(
		repository.NewQuestionRepository(q),
		repository.NewCategoryRepository(q),
		question.ServiceOptions{
			PageSize:      cfg.Trivia.PageSize,
			FetchStrategy: cfg.Trivia.FetchStrategy,
		},
	)

	logger.Info().
		Int("page_size", cfg.Trivia.PageSize).
		Str("fetch_strategy", cfg.Trivia.FetchStrategy).
		Msg("question service ready")

	return &Deps{Logger: logger, Pool: pool, Questions: svc}, nil
}

// New bootstraps configs, logger, Postgres and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	deps, err := Bootstrap(ctx, cfg)
	if err != nil {
		return nil, err
	}

	handlers := question.NewHTTPHandlers(deps.Questions, deps.Logger)
	apiServer := server.NewHTTPServer(cfg, deps.Logger, deps.Pool, handlers)

	return &Application{
		cfg:    cfg,
		logger: deps.Logger,
		pool:   deps.Pool,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		a.pool.Close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pool.Close()

	a.logger.Info().Msg("shutdown complete")
	return nil
}
