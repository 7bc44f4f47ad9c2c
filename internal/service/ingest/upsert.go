package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/domain"
)

// upsert writes the lead and its synthetic note. It must run inside a
// transaction: the caller owns atomicity.
func (s *Service) upsert(
	ctx context.Context,
	pipeline domain.Pipeline,
	stage domain.Stage,
	p Payload,
	match *domain.Lead,
	now time.Time,
) (domain.Lead, domain.IngestStatus, error) {
	if match != nil {
		lead, err := s.updateExisting(ctx, *match, stage, p, now)
		if err != nil {
			return domain.Lead{}, "", err
		}
		return lead, domain.IngestStatusUpdated, nil
	}

	lead, err := s.createNew(ctx, pipeline, stage, p, now)
	if err != nil {
		return domain.Lead{}, "", err
	}
	return lead, domain.IngestStatusCreated, nil
}

func (s *Service) updateExisting(ctx context.Context, existing domain.Lead, stage domain.Stage, p Payload, now time.Time) (domain.Lead, error) {
	fromStage := existing.StageID

	existing.Apply(p.Contact())
	existing.UpdatedAt = now

	lead, err := s.leads.Update(ctx, existing)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("update lead: %w", err)
	}

	if lead.StageID != stage.ID {
		if err := s.leads.UpdateStage(ctx, lead.ID, stage.ID, now); err != nil {
			return domain.Lead{}, fmt.Errorf("update lead stage: %w", err)
		}
		lead.StageID = stage.ID
	}

	if err := s.writeNote(ctx, lead, p, now); err != nil {
		return domain.Lead{}, err
	}

	changes := map[string]any{"source": noteSource, "name": lead.Name}
	if fromStage != stage.ID {
		changes["stage_id"] = map[string]any{"old": fromStage.String(), "new": stage.ID.String()}
	}
	if err := s.logAudit(ctx, lead, domain.AuditActionUpdate, changes, now); err != nil {
		return domain.Lead{}, err
	}

	return lead, nil
}

func (s *Service) createNew(ctx context.Context, pipeline domain.Pipeline, stage domain.Stage, p Payload, now time.Time) (domain.Lead, error) {
	lead := domain.Lead{
		ID:          uuid.New(),
		PipelineID:  pipeline.ID,
		StageID:     stage.ID,
		WorkspaceID: pipeline.WorkspaceID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	lead.Apply(p.Contact())

	created, err := s.leads.Create(ctx, lead)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("create lead: %w", err)
	}

	if hasNoteContext(p) {
		if err := s.writeNote(ctx, created, p, now); err != nil {
			return domain.Lead{}, err
		}
	}

	changes := map[string]any{
		"source":   noteSource,
		"name":     created.Name,
		"stage_id": created.StageID.String(),
	}
	if err := s.logAudit(ctx, created, domain.AuditActionCreate, changes, now); err != nil {
		return domain.Lead{}, err
	}

	return created, nil
}

func (s *Service) writeNote(ctx context.Context, lead domain.Lead, p Payload, now time.Time) error {
	content := composeNote(p)
	_, err := s.activities.Create(ctx, domain.Activity{
		ID:          uuid.New(),
		WorkspaceID: lead.WorkspaceID,
		LeadID:      lead.ID,
		Type:        domain.ActivityTypeNote,
		Title:       noteTitle,
		Content:     &content,
		Status:      domain.ActivityStatusCompleted,
		Priority:    domain.ActivityPriorityMedium,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (s *Service) logAudit(ctx context.Context, lead domain.Lead, action domain.AuditAction, changes map[string]any, now time.Time) error {
	err := s.audit.Log(ctx, domain.AuditRecord{
		ID:          uuid.New(),
		WorkspaceID: lead.WorkspaceID,
		EntityType:  domain.EntityTypeLead,
		EntityID:    lead.ID,
		Action:      action,
		Changes:     changes,
		CreatedAt:   now,
	})
	if err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	return nil
}
