package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/victorazesc/appseed-sub000/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeededPipeline is a pipeline together with its stages in position order.
type SeededPipeline struct {
	Pipeline domain.Pipeline
	Stages   []domain.Stage
}

// SeedPipeline creates a pipeline in workspaceID with one stage per name,
// positioned in argument order. The webhook slug and token are unique per call.
func SeedPipeline(t *testing.T, pool *pgxpool.Pool, workspaceID uuid.UUID, stageNames ...string) SeededPipeline {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.Pipeline{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        "Pipeline " + suffix,
		Color:       "#6366f1",
		Webhook: domain.Webhook{
			ID:    uuid.New(),
			Slug:  "wh-" + suffix,
			Token: "tok-" + suffix,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO pipelines (id, workspace_id, name, color, webhook_id, webhook_slug, webhook_token, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.WorkspaceID, p.Name, p.Color, p.Webhook.ID, p.Webhook.Slug, p.Webhook.Token, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPipeline insert pipeline: %v", err)
	}

	stages := make([]domain.Stage, 0, len(stageNames))
	for i, name := range stageNames {
		s := domain.Stage{
			ID:         uuid.New(),
			PipelineID: p.ID,
			Name:       name,
			Position:   i,
			Transition: domain.NoTransition(),
			CreatedAt:  now,
		}
		_, err := pool.Exec(ctx,
			`INSERT INTO stages (id, pipeline_id, name, position, created_at) VALUES ($1, $2, $3, $4, $5)`,
			s.ID, s.PipelineID, s.Name, s.Position, s.CreatedAt,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedPipeline insert stage %q: %v", name, err)
		}
		stages = append(stages, s)
	}

	return SeededPipeline{Pipeline: p, Stages: stages}
}

// SetDefaultStage points the pipeline's default stage at stageID.
func SetDefaultStage(t *testing.T, pool *pgxpool.Pool, pipelineID, stageID uuid.UUID) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`UPDATE pipelines SET default_stage_id = $2 WHERE id = $1`, pipelineID, stageID)
	if err != nil {
		t.Fatalf("testhelper: SetDefaultStage: %v", err)
	}
}

// SetForwardURL configures the pipeline's outbound forward destination.
func SetForwardURL(t *testing.T, pool *pgxpool.Pool, pipelineID uuid.UUID, url string) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`UPDATE pipelines SET forward_url = $2 WHERE id = $1`, pipelineID, url)
	if err != nil {
		t.Fatalf("testhelper: SetForwardURL: %v", err)
	}
}

// ArchivePipeline marks the pipeline archived.
func ArchivePipeline(t *testing.T, pool *pgxpool.Pool, pipelineID uuid.UUID) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`UPDATE pipelines SET archived = true WHERE id = $1`, pipelineID)
	if err != nil {
		t.Fatalf("testhelper: ArchivePipeline: %v", err)
	}
}

// SetTransition writes a transition configuration directly onto a stage.
func SetTransition(t *testing.T, pool *pgxpool.Pool, stageID uuid.UUID, cfg domain.TransitionConfig) {
	t.Helper()

	var (
		targetPipeline *uuid.UUID
		targetStage    *uuid.UUID
		copyActs       = true
		archive        bool
	)
	if target, ok := cfg.Target(); ok {
		targetPipeline = &target.PipelineID
		targetStage = target.StageID
		copyActs = target.CopyActivities
		archive = target.ArchiveSource
	}

	_, err := pool.Exec(context.Background(),
		`UPDATE stages
		    SET transition_mode = $2,
		        transition_target_pipeline_id = $3,
		        transition_target_stage_id = $4,
		        transition_copy_activities = $5,
		        transition_archive_source = $6
		  WHERE id = $1`,
		stageID, string(cfg.Mode()), targetPipeline, targetStage, copyActs, archive,
	)
	if err != nil {
		t.Fatalf("testhelper: SetTransition: %v", err)
	}
}

// LeadOption customizes a lead before SeedLead inserts it.
type LeadOption func(*domain.Lead)

// WithContact sets the dedup-relevant contact fields.
func WithContact(email, company string) LeadOption {
	return func(l *domain.Lead) {
		l.Email = &email
		l.Company = &company
	}
}

// WithCreatedAt backdates the lead.
func WithCreatedAt(ts time.Time) LeadOption {
	return func(l *domain.Lead) {
		l.CreatedAt = ts.UTC().Truncate(time.Microsecond)
		l.UpdatedAt = l.CreatedAt
	}
}

// SeedLead creates a lead in the given pipeline stage.
func SeedLead(t *testing.T, pool *pgxpool.Pool, p domain.Pipeline, stageID uuid.UUID, opts ...LeadOption) domain.Lead {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	lead := domain.Lead{
		ID:          uuid.New(),
		PipelineID:  p.ID,
		StageID:     stageID,
		WorkspaceID: p.WorkspaceID,
		Name:        "Lead " + uniqueSuffix(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(&lead)
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO leads (id, pipeline_id, stage_id, name, email, phone, company, value_cents, owner_id, archived, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		lead.ID, lead.PipelineID, lead.StageID, lead.Name, lead.Email, lead.Phone, lead.Company,
		lead.ValueCents, lead.OwnerID, lead.Archived, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLead: %v", err)
	}
	return lead
}

// SeedActivity creates an open note on the lead at createdAt.
func SeedActivity(t *testing.T, pool *pgxpool.Pool, lead domain.Lead, title string, createdAt time.Time) domain.Activity {
	t.Helper()

	ts := createdAt.UTC().Truncate(time.Microsecond)
	a := domain.Activity{
		ID:          uuid.New(),
		WorkspaceID: lead.WorkspaceID,
		LeadID:      lead.ID,
		Type:        domain.ActivityTypeNote,
		Title:       title,
		Status:      domain.ActivityStatusOpen,
		Priority:    domain.ActivityPriorityMedium,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO activities (id, workspace_id, lead_id, type, title, status, priority, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.WorkspaceID, a.LeadID, string(a.Type), a.Title, string(a.Status), string(a.Priority), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedActivity: %v", err)
	}
	return a
}

// SeedMember grants userID the role in workspaceID.
func SeedMember(t *testing.T, pool *pgxpool.Pool, workspaceID, userID uuid.UUID, role domain.Role) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO workspace_members (workspace_id, user_id, role) VALUES ($1, $2, $3)`,
		workspaceID, userID, string(role),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMember: %v", err)
	}
}
