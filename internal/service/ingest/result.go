package ingest

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/domain"
)

// Request is one inbound webhook call.
type Request struct {
	Ref   domain.PipelineRef
	Token string // bearer token, empty when the header was missing
	Body  []byte
}

// Result is the normalized outcome of an accepted submission.
type Result struct {
	LeadID     uuid.UUID
	PipelineID uuid.UUID
	StageID    uuid.UUID
	Status     domain.IngestStatus
}

// forwardEnvelope is what a pipeline's forward URL receives.
type forwardEnvelope struct {
	Event      string              `json:"event"`
	LeadID     uuid.UUID           `json:"leadId"`
	PipelineID uuid.UUID           `json:"pipelineId"`
	StageID    uuid.UUID           `json:"stageId"`
	Status     domain.IngestStatus `json:"status"`
	Payload    json.RawMessage     `json:"payload"`
}
