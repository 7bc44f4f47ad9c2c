package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Pipeline is an ordered sequence of stages owned by a workspace.
type Pipeline struct {
	ID             uuid.UUID
	WorkspaceID    uuid.UUID
	Name           string
	Color          string
	Archived       bool
	Webhook        Webhook
	DefaultStageID *uuid.UUID
	ForwardURL     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Webhook is the inbound identity of a pipeline. ID and Slug are independent
// lookup keys; Token is compared by exact match.
type Webhook struct {
	ID    uuid.UUID
	Slug  string
	Token string
}

// PipelineRef addresses a pipeline from the outside: either by id (pipeline
// id or webhook id) or by webhook slug. Exactly one of the fields is set.
type PipelineRef struct {
	ID   uuid.UUID
	Slug string
}

// PipelineRefFromString parses s as a UUID and falls back to a slug.
func PipelineRefFromString(s string) PipelineRef {
	if id, err := uuid.Parse(s); err == nil {
		return PipelineRef{ID: id}
	}
	return PipelineRef{Slug: s}
}

func (r PipelineRef) String() string {
	if r.ID != uuid.Nil {
		return r.ID.String()
	}
	return r.Slug
}

// Stage is one step of a pipeline.
type Stage struct {
	ID         uuid.UUID
	PipelineID uuid.UUID
	Name       string
	Position   int
	Transition TransitionConfig
	CreatedAt  time.Time
}

// TransitionTarget is where a transition sends a lead.
type TransitionTarget struct {
	PipelineID     uuid.UUID
	StageID        *uuid.UUID
	CopyActivities bool
	ArchiveSource  bool
}

// TransitionConfig is a tagged variant: None, Manual(target) or
// Automatic(target). The zero value is None. A target only exists when the
// mode is not None; the fields are unexported so that cannot be broken.
type TransitionConfig struct {
	mode   TransitionMode
	target TransitionTarget
}

// NoTransition returns the None variant.
func NoTransition() TransitionConfig {
	return TransitionConfig{mode: TransitionModeNone}
}

// ManualTransition returns the Manual variant.
func ManualTransition(target TransitionTarget) TransitionConfig {
	return TransitionConfig{mode: TransitionModeManual, target: target}
}

// AutomaticTransition returns the Automatic variant.
func AutomaticTransition(target TransitionTarget) TransitionConfig {
	return TransitionConfig{mode: TransitionModeAutomatic, target: target}
}

// NewTransitionConfig builds the variant for mode. A nil target is only
// accepted for TransitionModeNone.
func NewTransitionConfig(mode TransitionMode, target *TransitionTarget) (TransitionConfig, error) {
	switch mode {
	case TransitionModeNone, "":
		return NoTransition(), nil
	case TransitionModeManual, TransitionModeAutomatic:
		if target == nil || target.PipelineID == uuid.Nil {
			return TransitionConfig{}, NewValidationError("target_pipeline_id", "required when mode is "+mode.String())
		}
		return TransitionConfig{mode: mode, target: *target}, nil
	default:
		return TransitionConfig{}, NewValidationError("mode", fmt.Sprintf("unknown transition mode %q", mode))
	}
}

// Mode returns the variant tag.
func (c TransitionConfig) Mode() TransitionMode {
	if c.mode == "" {
		return TransitionModeNone
	}
	return c.mode
}

// Target returns the configured target. ok is false for None.
func (c TransitionConfig) Target() (TransitionTarget, bool) {
	if c.Mode() == TransitionModeNone {
		return TransitionTarget{}, false
	}
	return c.target, true
}

// Validate checks the invariants that do not need storage access: a
// transition may not point back to the stage's own pipeline.
func (c TransitionConfig) Validate(owningPipelineID uuid.UUID) error {
	target, ok := c.Target()
	if !ok {
		return nil
	}
	if target.PipelineID == owningPipelineID {
		return NewValidationError("target_pipeline_id", "must differ from the stage's own pipeline")
	}
	if target.StageID != nil && *target.StageID == uuid.Nil {
		return NewValidationError("target_stage_id", "invalid id")
	}
	return nil
}

// FirstStage returns the stage with the lowest position, or false if the
// slice is empty. Ties are broken by id for a deterministic choice.
func FirstStage(stages []Stage) (Stage, bool) {
	if len(stages) == 0 {
		return Stage{}, false
	}
	first := stages[0]
	for _, s := range stages[1:] {
		if s.Position < first.Position ||
			(s.Position == first.Position && s.ID.String() < first.ID.String()) {
			first = s
		}
	}
	return first, true
}

// FindStage returns the stage with id from stages.
func FindStage(stages []Stage, id uuid.UUID) (Stage, bool) {
	for _, s := range stages {
		if s.ID == id {
			return s, true
		}
	}
	return Stage{}, false
}
