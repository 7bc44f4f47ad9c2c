// Package membership reads workspace roles from PostgreSQL.
package membership

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/victorazesc/appseed-sub000/internal/adapter/postgres"
	"github.com/victorazesc/appseed-sub000/internal/domain"
)

const getRoleSQL = `SELECT role FROM workspace_members WHERE workspace_id = $1 AND user_id = $2`

// Repo provides workspace membership lookups backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new membership repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Role returns the caller's role in the workspace. A caller without a
// membership row gets ErrNotFound.
func (r *Repo) Role(ctx context.Context, workspaceID, userID uuid.UUID) (domain.Role, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var role string
	if err := q.QueryRow(ctx, getRoleSQL, workspaceID, userID).Scan(&role); err != nil {
		return "", postgres.MapError(err, "workspace_member", fmt.Sprintf("%s/%s", workspaceID, userID))
	}
	return domain.Role(role), nil
}
