package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/domain"
)

// findDuplicate returns the most recent active lead of the pipeline that
// shares the submission's email and company within the dedup window.
// Nothing is searched unless both fields are present.
func (s *Service) findDuplicate(ctx context.Context, pipelineID uuid.UUID, p Payload, now time.Time) (*domain.Lead, error) {
	if p.Email == nil || p.Company == nil {
		return nil, nil
	}

	match, err := s.leads.FindRecentMatch(ctx, pipelineID, *p.Email, *p.Company, now.Add(-s.cfg.DedupWindow))
	if err != nil {
		return nil, fmt.Errorf("dedup lookup: %w", err)
	}
	return match, nil
}
