// Package lead serves read access to leads: active listings per pipeline
// and a single lead with its activity and audit history.
package lead

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type leadRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	ListActive(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error)
}

type pipelineRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Pipeline, error)
	ListStages(ctx context.Context, pipelineID uuid.UUID) ([]domain.Stage, error)
}

type activityRepo interface {
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.Activity, error)
}

type auditRepo interface {
	GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error)
}

type memberRepo interface {
	Role(ctx context.Context, workspaceID, userID uuid.UUID) (domain.Role, error)
}

// historyLimit bounds the audit records returned with a lead.
const historyLimit = 50

// Service is the lead read service.
type Service struct {
	leads      leadRepo
	pipelines  pipelineRepo
	activities activityRepo
	audit      auditRepo
	members    memberRepo
	log        *slog.Logger
}

func NewService(
	log *slog.Logger,
	leads leadRepo,
	pipelines pipelineRepo,
	activities activityRepo,
	audit auditRepo,
	members memberRepo,
) *Service {
	return &Service{
		leads:      leads,
		pipelines:  pipelines,
		activities: activities,
		audit:      audit,
		members:    members,
		log:        log.With("service", "lead"),
	}
}

// canView reports NotFound for workspaces the caller does not belong to.
func (s *Service) canView(ctx context.Context, workspaceID, callerID uuid.UUID, entity string, id uuid.UUID) error {
	role, err := s.members.Role(ctx, workspaceID, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		}
		return fmt.Errorf("authorize: %w", err)
	}
	if !role.Allows(domain.RoleViewer) {
		return domain.ErrForbidden
	}
	return nil
}
