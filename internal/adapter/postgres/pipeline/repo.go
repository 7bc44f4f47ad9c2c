// Package pipeline implements the pipeline and stage directory using PostgreSQL.
package pipeline

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/victorazesc/appseed-sub000/internal/adapter/postgres"
	"github.com/victorazesc/appseed-sub000/internal/domain"
)

var pipelineColumns = []string{
	"id", "workspace_id", "name", "color", "archived",
	"webhook_id", "webhook_slug", "webhook_token",
	"default_stage_id", "forward_url", "created_at", "updated_at",
}

const stageColumns = `id, pipeline_id, name, position,
	transition_mode, transition_target_pipeline_id, transition_target_stage_id,
	transition_copy_activities, transition_archive_source, created_at`

const (
	listStagesSQL = `SELECT ` + stageColumns + `
FROM stages
WHERE pipeline_id = $1
ORDER BY position, id`

	getStageSQL = `SELECT ` + stageColumns + `
FROM stages
WHERE id = $1`

	updateTransitionSQL = `UPDATE stages
SET transition_mode = $2,
    transition_target_pipeline_id = $3,
    transition_target_stage_id = $4,
    transition_copy_activities = $5,
    transition_archive_source = $6
WHERE id = $1
RETURNING ` + stageColumns
)

// Repo provides pipeline and stage lookups backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new pipeline repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Pipelines
// ---------------------------------------------------------------------------

// GetByWebhookRef resolves an active pipeline from an inbound webhook
// reference. An id matches either the pipeline id or its webhook id; a slug
// matches the webhook slug. Archived pipelines are never returned.
func (r *Repo) GetByWebhookRef(ctx context.Context, ref domain.PipelineRef) (domain.Pipeline, error) {
	b := postgres.Builder().
		Select(pipelineColumns...).
		From("pipelines").
		Where(sq.Eq{"archived": false}).
		Limit(1)

	if ref.ID != uuid.Nil {
		b = b.Where(sq.Or{sq.Eq{"id": ref.ID}, sq.Eq{"webhook_id": ref.ID}}).
			// a pipeline id match wins over a colliding webhook id
			OrderByClause("(id = ?) DESC", ref.ID)
	} else {
		b = b.Where(sq.Eq{"webhook_slug": ref.Slug})
	}

	return r.getOne(ctx, b, ref.String())
}

// GetByID returns a pipeline by id, archived or not. Callers decide what an
// archived pipeline means for them.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Pipeline, error) {
	b := postgres.Builder().
		Select(pipelineColumns...).
		From("pipelines").
		Where(sq.Eq{"id": id})

	return r.getOne(ctx, b, id)
}

func (r *Repo) getOne(ctx context.Context, b sq.SelectBuilder, id any) (domain.Pipeline, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return domain.Pipeline{}, fmt.Errorf("build pipeline query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	p, err := scanPipeline(q.QueryRow(ctx, query, args...))
	if err != nil {
		return domain.Pipeline{}, postgres.MapError(err, "pipeline", id)
	}
	return p, nil
}

// ---------------------------------------------------------------------------
// Stages
// ---------------------------------------------------------------------------

// ListStages returns the stages of a pipeline ordered by position.
func (r *Repo) ListStages(ctx context.Context, pipelineID uuid.UUID) ([]domain.Stage, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listStagesSQL, pipelineID)
	if err != nil {
		return nil, fmt.Errorf("list stages of pipeline %s: %w", pipelineID, err)
	}
	defer rows.Close()

	var stages []domain.Stage
	for rows.Next() {
		s, err := scanStage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		stages = append(stages, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stages of pipeline %s: %w", pipelineID, err)
	}

	return stages, nil
}

// GetStage returns a stage by id.
func (r *Repo) GetStage(ctx context.Context, id uuid.UUID) (domain.Stage, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanStage(q.QueryRow(ctx, getStageSQL, id))
	if err != nil {
		return domain.Stage{}, postgres.MapError(err, "stage", id)
	}
	return s, nil
}

// UpdateStageTransition replaces the transition configuration of a stage.
func (r *Repo) UpdateStageTransition(ctx context.Context, stageID uuid.UUID, cfg domain.TransitionConfig) (domain.Stage, error) {
	var (
		targetPipeline *uuid.UUID
		targetStage    *uuid.UUID
		copyActivities = true
		archiveSource  bool
	)
	if target, ok := cfg.Target(); ok {
		targetPipeline = &target.PipelineID
		targetStage = target.StageID
		copyActivities = target.CopyActivities
		archiveSource = target.ArchiveSource
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	s, err := scanStage(q.QueryRow(ctx, updateTransitionSQL,
		stageID, string(cfg.Mode()), targetPipeline, targetStage, copyActivities, archiveSource,
	))
	if err != nil {
		return domain.Stage{}, postgres.MapError(err, "stage", stageID)
	}
	return s, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanPipeline(row pgx.Row) (domain.Pipeline, error) {
	var p domain.Pipeline
	err := row.Scan(
		&p.ID, &p.WorkspaceID, &p.Name, &p.Color, &p.Archived,
		&p.Webhook.ID, &p.Webhook.Slug, &p.Webhook.Token,
		&p.DefaultStageID, &p.ForwardURL, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func scanStage(row pgx.Row) (domain.Stage, error) {
	var (
		s              domain.Stage
		mode           string
		targetPipeline *uuid.UUID
		target         domain.TransitionTarget
	)
	err := row.Scan(
		&s.ID, &s.PipelineID, &s.Name, &s.Position,
		&mode, &targetPipeline, &target.StageID,
		&target.CopyActivities, &target.ArchiveSource, &s.CreatedAt,
	)
	if err != nil {
		return domain.Stage{}, err
	}

	if targetPipeline != nil {
		target.PipelineID = *targetPipeline
	}

	var tp *domain.TransitionTarget
	if targetPipeline != nil {
		tp = &target
	}
	cfg, err := domain.NewTransitionConfig(domain.TransitionMode(mode), tp)
	if err != nil {
		// the row check constraint keeps this unreachable
		return domain.Stage{}, fmt.Errorf("stage %s transition: %w", s.ID, err)
	}
	s.Transition = cfg

	return s, nil
}
