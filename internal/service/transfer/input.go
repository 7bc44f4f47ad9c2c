package transfer

import (
	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/domain"
)

// Input holds the parameters of one migration.
type Input struct {
	LeadID           uuid.UUID
	TargetPipelineID uuid.UUID
	TargetStageID    *uuid.UUID
	CopyActivities   bool
	ArchiveSource    bool
	// SourceStageID defaults to the lead's current stage.
	SourceStageID *uuid.UUID
	// Trigger is manual unless the rule engine started the migration.
	Trigger domain.TransitionMode
}

// InputFromTarget builds the input for a configured transition target.
func InputFromTarget(leadID, sourceStageID uuid.UUID, target domain.TransitionTarget, trigger domain.TransitionMode) Input {
	return Input{
		LeadID:           leadID,
		TargetPipelineID: target.PipelineID,
		TargetStageID:    target.StageID,
		CopyActivities:   target.CopyActivities,
		ArchiveSource:    target.ArchiveSource,
		SourceStageID:    &sourceStageID,
		Trigger:          trigger,
	}
}

// Validate checks all fields and collects all errors.
func (i Input) Validate() error {
	var errs []domain.FieldError

	if i.LeadID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "lead_id", Message: "required"})
	}
	if i.TargetPipelineID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "target_pipeline_id", Message: "required"})
	}
	if i.TargetStageID != nil && *i.TargetStageID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "target_stage_id", Message: "invalid id"})
	}
	if i.SourceStageID != nil && *i.SourceStageID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "source_stage_id", Message: "invalid id"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Result describes the lead created by a migration.
type Result struct {
	NewLeadID          uuid.UUID
	TargetPipelineID   uuid.UUID
	TargetPipelineName string
	TargetStageID      uuid.UUID
	CopiedActivities   int64
	SourceArchived     bool
}
