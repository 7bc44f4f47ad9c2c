// Package ingest accepts lead submissions from external systems through a
// pipeline's webhook, deduplicates them and persists them atomically.
package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/domain"
)

type pipelineRepo interface {
	GetByWebhookRef(ctx context.Context, ref domain.PipelineRef) (domain.Pipeline, error)
	ListStages(ctx context.Context, pipelineID uuid.UUID) ([]domain.Stage, error)
}

type leadRepo interface {
	FindRecentMatch(ctx context.Context, pipelineID uuid.UUID, email, company string, since time.Time) (*domain.Lead, error)
	Create(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	Update(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	UpdateStage(ctx context.Context, id, stageID uuid.UUID, at time.Time) error
}

type activityRepo interface {
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	RunInTxSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type forwarder interface {
	Forward(ctx context.Context, url string, body []byte)
}

// DefaultDedupWindow is how far back a submission may match an existing lead.
const DefaultDedupWindow = 24 * time.Hour

// Config tunes ingestion.
type Config struct {
	DedupWindow time.Duration
	// Serializable runs the dedup read and the upsert under SERIALIZABLE
	// isolation so concurrent identical submissions cannot both insert.
	Serializable bool
}

// Service implements the webhook ingestion gateway.
type Service struct {
	pipelines  pipelineRepo
	leads      leadRepo
	activities activityRepo
	audit      auditLogger
	tx         txManager
	forward    forwarder
	cfg        Config
	now        func() time.Time
	log        *slog.Logger
}

// NewService creates a new ingest service.
func NewService(
	log *slog.Logger,
	cfg Config,
	pipelines pipelineRepo,
	leads leadRepo,
	activities activityRepo,
	audit auditLogger,
	tx txManager,
	forward forwarder,
) *Service {
	if cfg.DedupWindow <= 0 {
		cfg.DedupWindow = DefaultDedupWindow
	}
	return &Service{
		pipelines:  pipelines,
		leads:      leads,
		activities: activities,
		audit:      audit,
		tx:         tx,
		forward:    forward,
		cfg:        cfg,
		now:        func() time.Time { return time.Now().UTC() },
		log:        log.With("service", "ingest"),
	}
}

func (s *Service) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.cfg.Serializable {
		return s.tx.RunInTxSerializable(ctx, fn)
	}
	return s.tx.RunInTx(ctx, fn)
}
