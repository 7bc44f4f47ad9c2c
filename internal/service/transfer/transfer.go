package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/domain"
	"github.com/victorazesc/appseed-sub000/internal/observability"
	"github.com/victorazesc/appseed-sub000/pkg/ctxutil"
)

// Transfer executes one migration for the authenticated caller.
//
// Every check runs before the first write; the writes (new lead, copied
// activities, source archive, migration record, audit) commit together.
// A repeated (lead, source stage, target pipeline) hop fails with a
// *domain.TransferConflictError naming the pipeline the lead already went to.
func (s *Service) Transfer(ctx context.Context, input Input) (Result, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return Result{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return Result{}, err
	}

	trigger := input.Trigger
	if trigger != domain.TransitionModeAutomatic {
		trigger = domain.TransitionModeManual
	}

	var result Result
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		result, err = s.execute(txCtx, callerID, input)
		return err
	})
	if err != nil {
		var conflict *domain.TransferConflictError
		switch {
		case errors.As(err, &conflict):
			observability.RecordTransfer(trigger.String(), observability.OutcomeConflict)
			s.log.InfoContext(ctx, "lead already transferred",
				slog.String("lead_id", input.LeadID.String()),
				slog.String("target_pipeline_id", input.TargetPipelineID.String()),
			)
			return Result{}, conflict
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrForbidden):
			return Result{}, err
		default:
			observability.RecordTransfer(trigger.String(), observability.OutcomeFailed)
			return Result{}, fmt.Errorf("transfer lead %s: %w", input.LeadID, err)
		}
	}

	observability.RecordTransfer(trigger.String(), observability.OutcomeTransferred)
	s.log.InfoContext(ctx, "lead transferred",
		slog.String("user_id", callerID.String()),
		slog.String("lead_id", input.LeadID.String()),
		slog.String("new_lead_id", result.NewLeadID.String()),
		slog.String("target_pipeline_id", result.TargetPipelineID.String()),
		slog.String("trigger", trigger.String()),
		slog.Int64("copied_activities", result.CopiedActivities),
		slog.Bool("source_archived", result.SourceArchived),
	)

	return result, nil
}

func (s *Service) execute(ctx context.Context, callerID uuid.UUID, input Input) (Result, error) {
	source, err := s.leads.GetForUpdate(ctx, input.LeadID)
	if err != nil {
		return Result{}, fmt.Errorf("load lead: %w", err)
	}

	role, err := s.members.Role(ctx, source.WorkspaceID, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// outside the caller's workspaces the lead does not exist
			return Result{}, fmt.Errorf("lead %s: %w", source.ID, domain.ErrNotFound)
		}
		return Result{}, fmt.Errorf("authorize: %w", err)
	}
	if !role.Allows(domain.RoleMember) {
		return Result{}, domain.ErrForbidden
	}

	sourceStageID, err := s.resolveSourceStage(ctx, source, input.SourceStageID)
	if err != nil {
		return Result{}, err
	}

	target, err := s.loadTarget(ctx, source, input.TargetPipelineID)
	if err != nil {
		return Result{}, err
	}

	if err := s.checkNotMigrated(ctx, source.ID, sourceStageID, target); err != nil {
		return Result{}, err
	}

	stage, err := s.resolveTargetStage(ctx, target.ID, input.TargetStageID)
	if err != nil {
		return Result{}, err
	}

	now := s.now()

	created, err := s.leads.Create(ctx, domain.Lead{
		ID:          uuid.New(),
		PipelineID:  target.ID,
		StageID:     stage.ID,
		WorkspaceID: target.WorkspaceID,
		Name:        source.Name,
		Email:       source.Email,
		Phone:       source.Phone,
		Company:     source.Company,
		ValueCents:  source.ValueCents,
		OwnerID:     source.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return Result{}, fmt.Errorf("create destination lead: %w", err)
	}

	var copied int64
	if input.CopyActivities {
		copied, err = s.activities.CopyRecent(ctx, source.ID, created.ID, created.WorkspaceID, now.Add(-s.copyWindow))
		if err != nil {
			return Result{}, fmt.Errorf("copy activities: %w", err)
		}
	}

	if input.ArchiveSource {
		if err := s.leads.Archive(ctx, source.ID, now); err != nil {
			return Result{}, fmt.Errorf("archive source lead: %w", err)
		}
	}

	err = s.migrations.Create(ctx, domain.LeadMigration{
		ID:               uuid.New(),
		LeadID:           source.ID,
		SourceStageID:    sourceStageID,
		TargetPipelineID: target.ID,
		NewLeadID:        created.ID,
		CreatedByID:      &callerID,
		CreatedAt:        now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// a concurrent transfer of the same hop committed first
			return Result{}, conflictError(source.ID, target)
		}
		return Result{}, fmt.Errorf("record migration: %w", err)
	}

	err = s.audit.Log(ctx, domain.AuditRecord{
		ID:          uuid.New(),
		WorkspaceID: source.WorkspaceID,
		ActorID:     &callerID,
		EntityType:  domain.EntityTypeLead,
		EntityID:    source.ID,
		Action:      domain.AuditActionTransfer,
		Changes: map[string]any{
			"source_stage_id":    sourceStageID.String(),
			"target_pipeline_id": target.ID.String(),
			"target_stage_id":    stage.ID.String(),
			"new_lead_id":        created.ID.String(),
			"copied_activities":  copied,
			"source_archived":    input.ArchiveSource,
		},
		CreatedAt: now,
	})
	if err != nil {
		return Result{}, fmt.Errorf("audit log: %w", err)
	}

	return Result{
		NewLeadID:          created.ID,
		TargetPipelineID:   target.ID,
		TargetPipelineName: target.Name,
		TargetStageID:      stage.ID,
		CopiedActivities:   copied,
		SourceArchived:     input.ArchiveSource,
	}, nil
}

// loadTarget returns the destination pipeline. It must be another active
// pipeline of the source lead's workspace.
func (s *Service) loadTarget(ctx context.Context, source domain.Lead, targetID uuid.UUID) (domain.Pipeline, error) {
	if targetID == source.PipelineID {
		return domain.Pipeline{}, domain.NewValidationError("target_pipeline_id", "must differ from the lead's pipeline")
	}

	target, err := s.pipelines.GetByID(ctx, targetID)
	if err != nil {
		return domain.Pipeline{}, fmt.Errorf("load target pipeline: %w", err)
	}
	if target.WorkspaceID != source.WorkspaceID || target.Archived {
		return domain.Pipeline{}, fmt.Errorf("pipeline %s: %w", targetID, domain.ErrNotFound)
	}
	return target, nil
}

// resolveSourceStage returns the explicit source stage, which must belong to
// the lead's pipeline, or the lead's current stage.
func (s *Service) resolveSourceStage(ctx context.Context, source domain.Lead, explicit *uuid.UUID) (uuid.UUID, error) {
	if explicit == nil || *explicit == source.StageID {
		return source.StageID, nil
	}

	stages, err := s.pipelines.ListStages(ctx, source.PipelineID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("list source stages: %w", err)
	}
	if _, ok := domain.FindStage(stages, *explicit); !ok {
		return uuid.Nil, fmt.Errorf("source stage %s: %w", *explicit, domain.ErrNotFound)
	}
	return *explicit, nil
}

func (s *Service) checkNotMigrated(ctx context.Context, leadID, sourceStageID uuid.UUID, target domain.Pipeline) error {
	_, err := s.migrations.Find(ctx, leadID, sourceStageID, target.ID)
	switch {
	case err == nil:
		return conflictError(leadID, target)
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("check migration: %w", err)
	}
}

// resolveTargetStage returns the explicit stage when it belongs to the
// target pipeline, otherwise the pipeline's first stage.
func (s *Service) resolveTargetStage(ctx context.Context, pipelineID uuid.UUID, explicit *uuid.UUID) (domain.Stage, error) {
	stages, err := s.pipelines.ListStages(ctx, pipelineID)
	if err != nil {
		return domain.Stage{}, fmt.Errorf("list target stages: %w", err)
	}

	if explicit != nil {
		if st, ok := domain.FindStage(stages, *explicit); ok {
			return st, nil
		}
	}

	first, ok := domain.FirstStage(stages)
	if !ok {
		return domain.Stage{}, domain.NewValidationError("target_pipeline_id", "target pipeline has no stages")
	}
	return first, nil
}

func conflictError(leadID uuid.UUID, target domain.Pipeline) error {
	return &domain.TransferConflictError{
		LeadID:       leadID,
		PipelineID:   target.ID,
		PipelineName: target.Name,
	}
}

