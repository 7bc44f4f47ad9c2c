package lead

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/domain"
	"github.com/victorazesc/appseed-sub000/pkg/ctxutil"
)

// ListActive returns the non-archived leads of a pipeline, newest first.
// A stage filter must name a stage of that pipeline.
func (s *Service) ListActive(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if filter.PipelineID == uuid.Nil {
		return nil, domain.NewValidationError("pipeline_id", "required")
	}
	filter = filter.Normalize()

	p, err := s.pipelines.GetByID(ctx, filter.PipelineID)
	if err != nil {
		return nil, fmt.Errorf("load pipeline: %w", err)
	}
	if err := s.canView(ctx, p.WorkspaceID, callerID, "pipeline", p.ID); err != nil {
		return nil, err
	}

	if filter.StageID != nil {
		stages, err := s.pipelines.ListStages(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("list stages: %w", err)
		}
		if _, ok := domain.FindStage(stages, *filter.StageID); !ok {
			return nil, domain.NewValidationError("stage_id", "must belong to the pipeline")
		}
	}

	leads, err := s.leads.ListActive(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}
