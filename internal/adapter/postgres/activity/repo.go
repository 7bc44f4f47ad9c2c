// Package activity implements the Activity repository using PostgreSQL.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/victorazesc/appseed-sub000/internal/adapter/postgres"
	"github.com/victorazesc/appseed-sub000/internal/domain"
)

const activityColumns = `id, workspace_id, lead_id, type, title, content, status, priority,
	due_at, assignee_id, created_by_id, created_at, updated_at`

const (
	createActivitySQL = `INSERT INTO activities (` + activityColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING ` + activityColumns

	// The copy keeps every attribute, including the original timestamps,
	// so the history of the new lead reads the same as the old one.
	copyRecentSQL = `INSERT INTO activities (` + activityColumns + `)
SELECT gen_random_uuid(), $3, $2, type, title, content, status, priority,
       due_at, assignee_id, created_by_id, created_at, updated_at
FROM activities
WHERE lead_id = $1 AND created_at >= $4`

	listByLeadSQL = `SELECT ` + activityColumns + `
FROM activities
WHERE lead_id = $1
ORDER BY created_at, id`
)

// Repo provides activity persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new activity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new activity and returns the persisted row.
func (r *Repo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, createActivitySQL,
		a.ID, a.WorkspaceID, a.LeadID, string(a.Type), a.Title, a.Content,
		string(a.Status), string(a.Priority), a.DueAt, a.AssigneeID, a.CreatedByID,
		a.CreatedAt, a.UpdatedAt,
	)
	created, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, postgres.MapError(err, "activity", a.ID)
	}
	return created, nil
}

// CopyRecent duplicates onto toLeadID every activity of fromLeadID created at
// or after since, and returns how many rows were copied.
func (r *Repo) CopyRecent(ctx context.Context, fromLeadID, toLeadID, workspaceID uuid.UUID, since time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, copyRecentSQL, fromLeadID, toLeadID, workspaceID, since)
	if err != nil {
		return 0, postgres.MapError(err, "activities of lead", fromLeadID)
	}
	return tag.RowsAffected(), nil
}

// ListByLead returns the activities of a lead, oldest first.
func (r *Repo) ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.Activity, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByLeadSQL, leadID)
	if err != nil {
		return nil, fmt.Errorf("list activities of lead %s: %w", leadID, err)
	}
	defer rows.Close()

	var out []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activities of lead %s: %w", leadID, err)
	}
	return out, nil
}

func scanActivity(row pgx.Row) (domain.Activity, error) {
	var a domain.Activity
	var typ, status, priority string
	err := row.Scan(
		&a.ID, &a.WorkspaceID, &a.LeadID, &typ, &a.Title, &a.Content, &status, &priority,
		&a.DueAt, &a.AssigneeID, &a.CreatedByID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Activity{}, err
	}
	a.Type = domain.ActivityType(typ)
	a.Status = domain.ActivityStatus(status)
	a.Priority = domain.ActivityPriority(priority)
	return a, nil
}
