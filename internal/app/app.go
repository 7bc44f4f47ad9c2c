package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/victorazesc/appseed-sub000/internal/adapter/notify"
	"github.com/victorazesc/appseed-sub000/internal/adapter/postgres"
	activityrepo "github.com/victorazesc/appseed-sub000/internal/adapter/postgres/activity"
	auditrepo "github.com/victorazesc/appseed-sub000/internal/adapter/postgres/audit"
	leadrepo "github.com/victorazesc/appseed-sub000/internal/adapter/postgres/lead"
	"github.com/victorazesc/appseed-sub000/internal/adapter/postgres/membership"
	"github.com/victorazesc/appseed-sub000/internal/adapter/postgres/migration"
	"github.com/victorazesc/appseed-sub000/internal/adapter/postgres/pipeline"
	"github.com/victorazesc/appseed-sub000/internal/auth"
	"github.com/victorazesc/appseed-sub000/internal/config"
	"github.com/victorazesc/appseed-sub000/internal/service/ingest"
	"github.com/victorazesc/appseed-sub000/internal/service/lead"
	"github.com/victorazesc/appseed-sub000/internal/service/transfer"
	"github.com/victorazesc/appseed-sub000/internal/service/transition"
	"github.com/victorazesc/appseed-sub000/internal/transport/middleware"
	"github.com/victorazesc/appseed-sub000/internal/transport/rest"
)

// rateLimitCleanup is how often idle webhook rate-limit buckets are swept.
const rateLimitCleanup = time.Minute

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL, wires repositories, services and handlers, and serves HTTP
// until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	handler, closeStack := NewHTTPHandler(cfg, logger, pool)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			closeStack(context.Background()) //nolint:errcheck
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", slog.String("error", err.Error()))
	}
	if err := closeStack(shutdownCtx); err != nil {
		logger.Error("forwarder drain", slog.String("error", err.Error()))
	}

	logger.Info("stopped")
	return nil
}

// NewHTTPHandler wires repositories, services and handlers over pool and
// returns the routed handler. The returned func stops background work and
// drains pending forward deliveries.
func NewHTTPHandler(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (http.Handler, func(context.Context) error) {
	txm := postgres.NewTxManager(pool).WithMaxRetries(cfg.Ingest.MaxRetries)

	pipelines := pipeline.New(pool)
	leads := leadrepo.New(pool)
	activities := activityrepo.New(pool)
	migrations := migration.New(pool)
	members := membership.New(pool)
	audit := auditrepo.New(pool)

	forwarder := notify.NewForwarder(logger, cfg.Ingest.ForwardTimeout)

	ingestSvc := ingest.NewService(logger, ingest.Config{
		DedupWindow:  cfg.Ingest.DedupWindow,
		Serializable: cfg.Ingest.Serializable,
	}, pipelines, leads, activities, audit, txm, forwarder)
	transferSvc := transfer.NewService(logger, cfg.Transfer.ActivityCopyWindow,
		leads, pipelines, activities, migrations, members, audit, txm)
	transitionSvc := transition.NewService(logger, leads, pipelines, members, audit, txm, transferSvc)
	leadSvc := lead.NewService(logger, leads, pipelines, activities, audit, members)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	limiter := middleware.NewRateLimiter(rateLimitCleanup)

	handler := newHandler(cfg, logger, handlers{
		health:  rest.NewHealthHandler(Version, rest.Check{Name: "postgres", Ping: pool.Ping}),
		webhook: rest.NewWebhookHandler(ingestSvc, cfg.Ingest.MaxBodyBytes, logger),
		leads:   rest.NewLeadHandler(transferSvc, transitionSvc, leadSvc, logger),
		stages:  rest.NewStageHandler(transitionSvc, logger),
	}, jwtManager, limiter)

	return handler, func(ctx context.Context) error {
		limiter.Stop()
		return forwarder.Close(ctx)
	}
}
