// Package migration implements the lead migration ledger using PostgreSQL.
package migration

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/victorazesc/appseed-sub000/internal/adapter/postgres"
	"github.com/victorazesc/appseed-sub000/internal/domain"
)

const (
	findMigrationSQL = `SELECT id, lead_id, source_stage_id, target_pipeline_id, new_lead_id, created_by_id, created_at
FROM lead_migrations
WHERE lead_id = $1 AND source_stage_id = $2 AND target_pipeline_id = $3`

	createMigrationSQL = `INSERT INTO lead_migrations
    (id, lead_id, source_stage_id, target_pipeline_id, new_lead_id, created_by_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
)

// Repo provides lead migration records backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new migration repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Find returns the migration recorded for the (lead, source stage, target
// pipeline) triple, or ErrNotFound.
func (r *Repo) Find(ctx context.Context, leadID, sourceStageID, targetPipelineID uuid.UUID) (domain.LeadMigration, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var m domain.LeadMigration
	err := q.QueryRow(ctx, findMigrationSQL, leadID, sourceStageID, targetPipelineID).Scan(
		&m.ID, &m.LeadID, &m.SourceStageID, &m.TargetPipelineID, &m.NewLeadID, &m.CreatedByID, &m.CreatedAt,
	)
	if err != nil {
		return domain.LeadMigration{}, postgres.MapError(err, "lead_migration", fmt.Sprintf("%s/%s/%s", leadID, sourceStageID, targetPipelineID))
	}
	return m, nil
}

// Create records a migration. A second record for the same triple fails
// with ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, m domain.LeadMigration) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, createMigrationSQL,
		m.ID, m.LeadID, m.SourceStageID, m.TargetPipelineID, m.NewLeadID, m.CreatedByID, m.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "lead_migration", m.ID)
	}
	return nil
}
