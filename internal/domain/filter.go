package domain

import "github.com/google/uuid"

const (
	DefaultLeadLimit = 50
	MaxLeadLimit     = 200
)

// LeadFilter contains filtering/pagination parameters for active lead listings.
type LeadFilter struct {
	PipelineID uuid.UUID
	StageID    *uuid.UUID
	Limit      int
	Offset     int
}

// Normalize clamps Limit and Offset into their accepted ranges.
func (f LeadFilter) Normalize() LeadFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultLeadLimit
	}
	if f.Limit > MaxLeadLimit {
		f.Limit = MaxLeadLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
