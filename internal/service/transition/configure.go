package transition

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/domain"
	"github.com/victorazesc/appseed-sub000/pkg/ctxutil"
)

// ConfigInput is the transition configuration requested for a stage.
type ConfigInput struct {
	StageID          uuid.UUID
	Mode             domain.TransitionMode
	TargetPipelineID *uuid.UUID
	TargetStageID    *uuid.UUID
	// CopyActivities defaults to true.
	CopyActivities *bool
	ArchiveSource  bool
}

func (i ConfigInput) config() (domain.TransitionConfig, error) {
	if i.Mode == "" || i.Mode == domain.TransitionModeNone {
		return domain.NoTransition(), nil
	}
	if i.TargetPipelineID == nil {
		return domain.NewTransitionConfig(i.Mode, nil)
	}

	copyActivities := true
	if i.CopyActivities != nil {
		copyActivities = *i.CopyActivities
	}
	return domain.NewTransitionConfig(i.Mode, &domain.TransitionTarget{
		PipelineID:     *i.TargetPipelineID,
		StageID:        i.TargetStageID,
		CopyActivities: copyActivities,
		ArchiveSource:  i.ArchiveSource,
	})
}

// ConfigureTransition replaces a stage's transition configuration. Only
// workspace admins may change it. The target must be another active
// pipeline of the same workspace, and an explicit target stage must belong
// to it.
func (s *Service) ConfigureTransition(ctx context.Context, input ConfigInput) (domain.Stage, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Stage{}, domain.ErrUnauthorized
	}

	cfg, err := input.config()
	if err != nil {
		return domain.Stage{}, err
	}

	stage, err := s.pipelines.GetStage(ctx, input.StageID)
	if err != nil {
		return domain.Stage{}, fmt.Errorf("load stage: %w", err)
	}
	owner, err := s.pipelines.GetByID(ctx, stage.PipelineID)
	if err != nil {
		return domain.Stage{}, fmt.Errorf("load pipeline: %w", err)
	}
	if err := s.authorize(ctx, owner.WorkspaceID, callerID, domain.RoleAdmin, "stage", stage.ID); err != nil {
		return domain.Stage{}, err
	}

	if err := cfg.Validate(stage.PipelineID); err != nil {
		return domain.Stage{}, err
	}
	if target, ok := cfg.Target(); ok {
		if err := s.checkTarget(ctx, owner.WorkspaceID, target); err != nil {
			return domain.Stage{}, err
		}
	}

	var updated domain.Stage
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.pipelines.UpdateStageTransition(txCtx, stage.ID, cfg)
		if err != nil {
			return fmt.Errorf("update stage transition: %w", err)
		}
		err = s.audit.Log(txCtx, domain.AuditRecord{
			ID:          uuid.New(),
			WorkspaceID: owner.WorkspaceID,
			ActorID:     &callerID,
			EntityType:  domain.EntityTypeStage,
			EntityID:    stage.ID,
			Action:      domain.AuditActionUpdate,
			Changes:     transitionChanges(stage.Transition, cfg),
			CreatedAt:   s.now(),
		})
		if err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Stage{}, err
	}

	s.log.InfoContext(ctx, "stage transition configured",
		slog.String("stage_id", stage.ID.String()),
		slog.String("mode", cfg.Mode().String()),
	)
	return updated, nil
}

func (s *Service) checkTarget(ctx context.Context, workspaceID uuid.UUID, target domain.TransitionTarget) error {
	p, err := s.pipelines.GetByID(ctx, target.PipelineID)
	if err != nil {
		return fmt.Errorf("load target pipeline: %w", err)
	}
	if p.WorkspaceID != workspaceID || p.Archived {
		return notFound("pipeline", target.PipelineID)
	}

	if target.StageID == nil {
		return nil
	}
	stages, err := s.pipelines.ListStages(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("list target stages: %w", err)
	}
	if _, ok := domain.FindStage(stages, *target.StageID); !ok {
		return domain.NewValidationError("target_stage_id", "must belong to the target pipeline")
	}
	return nil
}

func transitionChanges(old, cur domain.TransitionConfig) map[string]any {
	changes := map[string]any{
		"mode": map[string]any{"old": old.Mode().String(), "new": cur.Mode().String()},
	}
	if target, ok := cur.Target(); ok {
		changes["target_pipeline_id"] = target.PipelineID.String()
		if target.StageID != nil {
			changes["target_stage_id"] = target.StageID.String()
		}
		changes["copy_activities"] = target.CopyActivities
		changes["archive_source"] = target.ArchiveSource
	}
	return changes
}
