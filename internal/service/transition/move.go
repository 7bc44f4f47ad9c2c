package transition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/domain"
	"github.com/victorazesc/appseed-sub000/internal/service/transfer"
	"github.com/victorazesc/appseed-sub000/pkg/ctxutil"
)

// MoveResult is the outcome of a stage move.
type MoveResult struct {
	LeadID  uuid.UUID
	StageID uuid.UUID
	// Moved is false when the lead already was in the requested stage.
	Moved      bool
	Transition Outcome
}

// Outcome describes what the destination stage's transition did.
type Outcome struct {
	Mode domain.TransitionMode

	// Manual: the parameters the caller must confirm.
	Target        domain.TransitionTarget
	SourceStageID uuid.UUID

	// Automatic.
	Transfer           *transfer.Result
	AlreadyTransferred bool
	PipelineName       string
	// Err is set when the automatic transfer failed. The stage move itself
	// is committed regardless.
	Err error
}

// MoveStage puts a lead into another stage of its pipeline and applies the
// destination stage's transition configuration.
//
// The move commits on its own. An Automatic destination then runs one
// transfer with the stage being left as the source stage; a hop that was
// already executed is reported through Outcome.AlreadyTransferred. Moving
// a lead to the stage it is already in changes nothing and triggers
// nothing.
func (s *Service) MoveStage(ctx context.Context, leadID, stageID uuid.UUID) (MoveResult, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return MoveResult{}, domain.ErrUnauthorized
	}
	if leadID == uuid.Nil {
		return MoveResult{}, domain.NewValidationError("lead_id", "required")
	}
	if stageID == uuid.Nil {
		return MoveResult{}, domain.NewValidationError("stage_id", "required")
	}

	var (
		lead        domain.Lead
		destination domain.Stage
		moved       bool
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		lead, err = s.leads.GetForUpdate(txCtx, leadID)
		if err != nil {
			return fmt.Errorf("load lead: %w", err)
		}
		if err := s.authorize(txCtx, lead.WorkspaceID, callerID, domain.RoleMember, "lead", lead.ID); err != nil {
			return err
		}
		if lead.Archived {
			return domain.NewValidationError("lead_id", "lead is archived")
		}

		stages, err := s.pipelines.ListStages(txCtx, lead.PipelineID)
		if err != nil {
			return fmt.Errorf("list stages: %w", err)
		}
		var found bool
		destination, found = domain.FindStage(stages, stageID)
		if !found {
			return domain.NewValidationError("stage_id", "must belong to the lead's pipeline")
		}
		if destination.ID == lead.StageID {
			return nil
		}

		now := s.now()
		if err := s.leads.UpdateStage(txCtx, lead.ID, destination.ID, now); err != nil {
			return fmt.Errorf("update stage: %w", err)
		}
		moved = true

		err = s.audit.Log(txCtx, domain.AuditRecord{
			ID:          uuid.New(),
			WorkspaceID: lead.WorkspaceID,
			ActorID:     &callerID,
			EntityType:  domain.EntityTypeLead,
			EntityID:    lead.ID,
			Action:      domain.AuditActionUpdate,
			Changes: map[string]any{
				"stage_id": map[string]any{"old": lead.StageID.String(), "new": destination.ID.String()},
			},
			CreatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return MoveResult{}, err
	}

	result := MoveResult{
		LeadID:     lead.ID,
		StageID:    destination.ID,
		Moved:      moved,
		Transition: Outcome{Mode: domain.TransitionModeNone},
	}
	if !moved {
		return result, nil
	}

	s.log.InfoContext(ctx, "lead moved",
		slog.String("lead_id", lead.ID.String()),
		slog.String("from_stage_id", lead.StageID.String()),
		slog.String("to_stage_id", destination.ID.String()),
		slog.String("transition", destination.Transition.Mode().String()),
	)

	result.Transition = s.apply(ctx, lead, destination)
	return result, nil
}

// apply evaluates the destination stage's configuration for a lead that
// has just left lead.StageID.
func (s *Service) apply(ctx context.Context, lead domain.Lead, destination domain.Stage) Outcome {
	target, ok := destination.Transition.Target()
	if !ok {
		return Outcome{Mode: domain.TransitionModeNone}
	}

	switch destination.Transition.Mode() {
	case domain.TransitionModeManual:
		return Outcome{
			Mode:          domain.TransitionModeManual,
			Target:        target,
			SourceStageID: lead.StageID,
		}

	case domain.TransitionModeAutomatic:
		out := Outcome{Mode: domain.TransitionModeAutomatic, Target: target, SourceStageID: lead.StageID}

		res, err := s.transfers.Transfer(ctx, transfer.InputFromTarget(lead.ID, lead.StageID, target, domain.TransitionModeAutomatic))
		var conflict *domain.TransferConflictError
		switch {
		case err == nil:
			out.Transfer = &res
			out.PipelineName = res.TargetPipelineName
		case errors.As(err, &conflict):
			out.AlreadyTransferred = true
			out.PipelineName = conflict.PipelineName
		default:
			s.log.ErrorContext(ctx, "automatic transfer failed",
				slog.String("lead_id", lead.ID.String()),
				slog.String("stage_id", destination.ID.String()),
				slog.String("target_pipeline_id", target.PipelineID.String()),
				slog.String("error", err.Error()),
			)
			out.Err = err
		}
		return out
	}

	return Outcome{Mode: domain.TransitionModeNone}
}
