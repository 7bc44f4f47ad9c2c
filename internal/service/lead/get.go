package lead

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/domain"
	"github.com/victorazesc/appseed-sub000/pkg/ctxutil"
)

// Detail is a lead with its activities (oldest first) and its most recent
// audit records (newest first).
type Detail struct {
	Lead       domain.Lead
	Activities []domain.Activity
	History    []domain.AuditRecord
}

// Get returns one lead. Archived leads stay readable.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Detail, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return Detail{}, domain.ErrUnauthorized
	}

	l, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return Detail{}, fmt.Errorf("load lead: %w", err)
	}
	if err := s.canView(ctx, l.WorkspaceID, callerID, "lead", l.ID); err != nil {
		return Detail{}, err
	}

	activities, err := s.activities.ListByLead(ctx, l.ID)
	if err != nil {
		return Detail{}, fmt.Errorf("list activities: %w", err)
	}
	history, err := s.audit.GetByEntity(ctx, domain.EntityTypeLead, l.ID, historyLimit)
	if err != nil {
		return Detail{}, fmt.Errorf("list history: %w", err)
	}

	return Detail{Lead: l, Activities: activities, History: history}, nil
}
