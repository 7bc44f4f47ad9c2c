// Package lead implements the Lead repository using PostgreSQL.
package lead

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/victorazesc/appseed-sub000/internal/adapter/postgres"
	"github.com/victorazesc/appseed-sub000/internal/domain"
)

// leadColumns is qualified so it can be used on the joined pipelines row.
var leadColumns = []string{
	"l.id", "l.pipeline_id", "l.stage_id", "l.name", "l.email", "l.phone", "l.company",
	"l.value_cents", "l.owner_id", "l.archived", "l.created_at", "l.updated_at",
	"p.workspace_id",
}

const returningLead = `SELECT l.id, l.pipeline_id, l.stage_id, l.name, l.email, l.phone, l.company,
       l.value_cents, l.owner_id, l.archived, l.created_at, l.updated_at, p.workspace_id
FROM l JOIN pipelines p ON p.id = l.pipeline_id`

const (
	createLeadSQL = `WITH l AS (
    INSERT INTO leads (id, pipeline_id, stage_id, name, email, phone, company, value_cents, owner_id, archived, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    RETURNING *
)
` + returningLead

	updateLeadSQL = `WITH l AS (
    UPDATE leads
    SET name = $2, email = $3, phone = $4, company = $5, value_cents = $6, updated_at = $7
    WHERE id = $1
    RETURNING *
)
` + returningLead

	updateStageSQL = `UPDATE leads SET stage_id = $2, updated_at = $3 WHERE id = $1`

	archiveLeadSQL = `UPDATE leads SET archived = true, updated_at = $2 WHERE id = $1`
)

// Repo provides lead persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new lead repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func selectLeads() sq.SelectBuilder {
	return postgres.Builder().
		Select(leadColumns...).
		From("leads l").
		Join("pipelines p ON p.id = l.pipeline_id")
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a lead with its workspace resolved through the pipeline.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	return r.getOne(ctx, selectLeads().Where(sq.Eq{"l.id": id}), id)
}

// GetForUpdate is GetByID with a row lock held until the surrounding
// transaction ends. Outside a transaction the lock is released immediately.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	return r.getOne(ctx, selectLeads().Where(sq.Eq{"l.id": id}).Suffix("FOR UPDATE OF l"), id)
}

// FindRecentMatch returns the most recent active lead of the pipeline whose
// email and company equal the given values case-insensitively and which was
// created at or after since. It returns nil, nil when nothing matches.
func (r *Repo) FindRecentMatch(ctx context.Context, pipelineID uuid.UUID, email, company string, since time.Time) (*domain.Lead, error) {
	b := selectLeads().
		Where(sq.Eq{"l.pipeline_id": pipelineID, "l.archived": false}).
		Where("lower(l.email) = lower(?)", email).
		Where("lower(l.company) = lower(?)", company).
		Where(sq.GtOrEq{"l.created_at": since}).
		OrderBy("l.created_at DESC", "l.id").
		Limit(1)

	lead, err := r.getOne(ctx, b, pipelineID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find recent lead match: %w", err)
	}
	return &lead, nil
}

// ListActive returns non-archived leads of a pipeline, newest first,
// optionally restricted to one stage.
func (r *Repo) ListActive(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	b := selectLeads().
		Where(sq.Eq{"l.pipeline_id": filter.PipelineID, "l.archived": false}).
		OrderBy("l.created_at DESC", "l.id").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	if filter.StageID != nil {
		b = b.Where(sq.Eq{"l.stage_id": *filter.StageID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list leads query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads of pipeline %s: %w", filter.PipelineID, err)
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0, filter.Limit)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list leads of pipeline %s: %w", filter.PipelineID, err)
	}

	return leads, nil
}

func (r *Repo) getOne(ctx context.Context, b sq.SelectBuilder, id any) (domain.Lead, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return domain.Lead{}, fmt.Errorf("build lead query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	l, err := scanLead(q.QueryRow(ctx, query, args...))
	if err != nil {
		return domain.Lead{}, postgres.MapError(err, "lead", id)
	}
	return l, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new lead and returns the persisted row.
func (r *Repo) Create(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, createLeadSQL,
		lead.ID, lead.PipelineID, lead.StageID, lead.Name, lead.Email, lead.Phone, lead.Company,
		lead.ValueCents, lead.OwnerID, lead.Archived, lead.CreatedAt, lead.UpdatedAt,
	)
	created, err := scanLead(row)
	if err != nil {
		return domain.Lead{}, postgres.MapError(err, "lead", lead.ID)
	}
	return created, nil
}

// Update overwrites the contact fields of a lead. Pipeline, stage and
// ownership are changed through their own operations.
func (r *Repo) Update(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, updateLeadSQL,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Company, lead.ValueCents, lead.UpdatedAt,
	)
	updated, err := scanLead(row)
	if err != nil {
		return domain.Lead{}, postgres.MapError(err, "lead", lead.ID)
	}
	return updated, nil
}

// UpdateStage moves a lead to another stage of its pipeline. A stage of a
// different pipeline violates fk_leads_stage_pipeline and maps to ErrNotFound.
func (r *Repo) UpdateStage(ctx context.Context, id, stageID uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updateStageSQL, id, stageID, at)
	if err != nil {
		return postgres.MapError(err, "lead", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "lead", id)
	}
	return nil
}

// Archive marks a lead archived.
func (r *Repo) Archive(ctx context.Context, id uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, archiveLeadSQL, id, at)
	if err != nil {
		return postgres.MapError(err, "lead", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "lead", id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanLead(row pgx.Row) (domain.Lead, error) {
	var l domain.Lead
	err := row.Scan(
		&l.ID, &l.PipelineID, &l.StageID, &l.Name, &l.Email, &l.Phone, &l.Company,
		&l.ValueCents, &l.OwnerID, &l.Archived, &l.CreatedAt, &l.UpdatedAt,
		&l.WorkspaceID,
	)
	return l, err
}
