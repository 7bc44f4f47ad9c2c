package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a contact tracked through exactly one pipeline stage at a time.
// StageID always belongs to PipelineID.
type Lead struct {
	ID          uuid.UUID
	PipelineID  uuid.UUID
	StageID     uuid.UUID
	Name        string
	Email       *string
	Phone       *string
	Company     *string
	ValueCents  int64
	OwnerID     *uuid.UUID
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	WorkspaceID uuid.UUID // resolved through the pipeline, not stored on the lead
}

// Contact holds the inbound contact fields of a lead.
type Contact struct {
	Name       string
	Email      *string
	Phone      *string
	Company    *string
	ValueCents *int64
}

// Apply overwrites the lead's contact fields with c. Absent optional
// fields leave the current value untouched.
func (l *Lead) Apply(c Contact) {
	l.Name = c.Name
	if c.Email != nil {
		l.Email = c.Email
	}
	if c.Phone != nil {
		l.Phone = c.Phone
	}
	if c.Company != nil {
		l.Company = c.Company
	}
	if c.ValueCents != nil {
		l.ValueCents = *c.ValueCents
	}
}

// Activity is a timestamped event or task attached to a lead.
type Activity struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	LeadID      uuid.UUID
	Type        ActivityType
	Title       string
	Content     *string
	Status      ActivityStatus
	Priority    ActivityPriority
	DueAt       *time.Time
	AssigneeID  *uuid.UUID
	CreatedByID *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LeadMigration records that a lead was sent from a source stage to a
// target pipeline. (LeadID, SourceStageID, TargetPipelineID) is unique.
type LeadMigration struct {
	ID               uuid.UUID
	LeadID           uuid.UUID
	SourceStageID    uuid.UUID
	TargetPipelineID uuid.UUID
	NewLeadID        uuid.UUID
	CreatedByID      *uuid.UUID
	CreatedAt        time.Time
}

// AuditRecord logs a mutation event on a domain entity. ActorID is nil for
// writes made by webhook callers.
type AuditRecord struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	ActorID     *uuid.UUID
	EntityType  EntityType
	EntityID    uuid.UUID
	Action      AuditAction
	Changes     map[string]any
	CreatedAt   time.Time
}
