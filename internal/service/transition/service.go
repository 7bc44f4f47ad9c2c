// Package transition is the stage transition rule engine. It moves leads
// between stages of their pipeline and applies the destination stage's
// transition configuration: nothing, a proposal for manual confirmation,
// or an immediate cross-pipeline transfer.
package transition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/domain"
	"github.com/victorazesc/appseed-sub000/internal/service/transfer"
)

type leadRepo interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	UpdateStage(ctx context.Context, id, stageID uuid.UUID, at time.Time) error
}

type pipelineRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Pipeline, error)
	ListStages(ctx context.Context, pipelineID uuid.UUID) ([]domain.Stage, error)
	GetStage(ctx context.Context, id uuid.UUID) (domain.Stage, error)
	UpdateStageTransition(ctx context.Context, stageID uuid.UUID, cfg domain.TransitionConfig) (domain.Stage, error)
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

type transferer interface {
	Transfer(ctx context.Context, input transfer.Input) (transfer.Result, error)
}

// Service implements stage moves and stage transition configuration.
type Service struct {
	leads     leadRepo
	pipelines pipelineRepo
	members   memberRepo
	audit     auditLogger
	tx        txManager
	transfers transferer
	now       func() time.Time
	log       *slog.Logger
}

// NewService creates a new transition service. transfers runs the
// migration of automatic transitions.
func NewService(
	log *slog.Logger,
	leads leadRepo,
	pipelines pipelineRepo,
	members memberRepo,
	audit auditLogger,
	tx txManager,
	transfers transferer,
) *Service {
	return &Service{
		leads:     leads,
		pipelines: pipelines,
		members:   members,
		audit:     audit,
		tx:        tx,
		transfers: transfers,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log.With("service", "transition"),
	}
}

// authorize returns NotFound for the entity when the caller is not a member
// of the workspace and ErrForbidden when the role is below minRole.
func (s *Service) authorize(ctx context.Context, workspaceID, callerID uuid.UUID, minRole domain.Role, entity string, id uuid.UUID) error {
	role, err := s.members.Role(ctx, workspaceID, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(entity, id)
		}
		return fmt.Errorf("authorize: %w", err)
	}
	if !role.Allows(minRole) {
		return domain.ErrForbidden
	}
	return nil
}

func notFound(entity string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
}
