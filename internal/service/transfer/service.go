// Package transfer moves leads across pipelines: it creates the destination
// lead, optionally copies recent history and archives the source, and makes
// sure each (lead, source stage, target pipeline) hop happens at most once.
package transfer

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/domain"
)

type leadRepo interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	Create(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	Archive(ctx context.Context, id uuid.UUID, at time.Time) error
}

type pipelineRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Pipeline, error)
	ListStages(ctx context.Context, pipelineID uuid.UUID) ([]domain.Stage, error)
}

type activityRepo interface {
	CopyRecent(ctx context.Context, fromLeadID, toLeadID, workspaceID uuid.UUID, since time.Time) (int64, error)
}

type migrationRepo interface {
	Find(ctx context.Context, leadID, sourceStageID, targetPipelineID uuid.UUID) (domain.LeadMigration, error)
	Create(ctx context.Context, m domain.LeadMigration) error
}

type memberRepo interface {
	Role(ctx context.Context, workspaceID, userID uuid.UUID) (domain.Role, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DefaultActivityCopyWindow is how far back activities are copied.
const DefaultActivityCopyWindow = 30 * 24 * time.Hour

// Service is the cross-pipeline migration executor.
type Service struct {
	leads      leadRepo
	pipelines  pipelineRepo
	activities activityRepo
	migrations migrationRepo
	members    memberRepo
	audit      auditLogger
	tx         txManager
	copyWindow time.Duration
	now        func() time.Time
	log        *slog.Logger
}

// NewService creates a new transfer service. A non-positive copyWindow
// falls back to DefaultActivityCopyWindow.
func NewService(
	log *slog.Logger,
	copyWindow time.Duration,
	leads leadRepo,
	pipelines pipelineRepo,
	activities activityRepo,
	migrations migrationRepo,
	members memberRepo,
	audit auditLogger,
	tx txManager,
) *Service {
	if copyWindow <= 0 {
		copyWindow = DefaultActivityCopyWindow
	}
	return &Service{
		leads:      leads,
		pipelines:  pipelines,
		activities: activities,
		migrations: migrations,
		members:    members,
		audit:      audit,
		tx:         tx,
		copyWindow: copyWindow,
		now:        func() time.Time { return time.Now().UTC() },
		log:        log.With("service", "transfer"),
	}
}
