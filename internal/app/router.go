package app

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/config"
	"github.com/victorazesc/appseed-sub000/internal/observability"
	"github.com/victorazesc/appseed-sub000/internal/transport/middleware"
	"github.com/victorazesc/appseed-sub000/internal/transport/rest"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, error)
}

// handlers groups everything the router mounts.
type handlers struct {
	health  *rest.HealthHandler
	webhook *rest.WebhookHandler
	leads   *rest.LeadHandler
	stages  *rest.StageHandler
}

// newHandler builds the HTTP surface.
//
// Webhook routes authenticate with the pipeline secret inside the ingest
// service and are rate limited per client address. /api routes require a
// caller token. Probes and metrics are open.
func newHandler(cfg *config.Config, logger *slog.Logger, h handlers, validator tokenValidator, limiter *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.health.Live)
	mux.HandleFunc("GET /ready", h.health.Ready)
	mux.HandleFunc("GET /health", h.health.Health)

	if cfg.Metrics.Enabled {
		mux.Handle("GET "+cfg.Metrics.Path, observability.Handler())
	}

	limited := limiter.Limit(cfg.Ingest.RateLimitPerMinute, func(*http.Request) {
		observability.RecordIngestRejected("rate_limited")
	})
	mux.Handle("POST /webhooks/{pipelineID}/leads", limited(http.HandlerFunc(h.webhook.IngestByID)))
	mux.Handle("POST /webhooks/by-slug/{slug}/leads", limited(http.HandlerFunc(h.webhook.IngestBySlug)))

	authed := middleware.Auth(validator)
	api := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, authed(fn))
	}
	api("GET /api/pipelines/{pipelineID}/leads", h.leads.List)
	api("GET /api/leads/{leadID}", h.leads.Get)
	api("POST /api/leads/{leadID}/stage", h.leads.MoveStage)
	api("POST /api/leads/{leadID}/transfer", h.leads.Transfer)
	api("PUT /api/stages/{stageID}/transition", h.stages.ConfigureTransition)

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.ClientIP(cfg.Server.TrustForwardedFor),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)
}
