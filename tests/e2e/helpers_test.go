//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/victorazesc/appseed-sub000/internal/adapter/postgres/testhelper"
	"github.com/victorazesc/appseed-sub000/internal/app"
	authpkg "github.com/victorazesc/appseed-sub000/internal/auth"
	"github.com/victorazesc/appseed-sub000/internal/config"
	"github.com/victorazesc/appseed-sub000/internal/domain"
)

const (
	jwtSecret = "test-secret-at-least-32-chars-long!!"
	jwtIssuer = "test-issuer"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the application handler backed by a real
// PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: jwtSecret, JWTIssuer: jwtIssuer, AccessTokenTTL: 15 * time.Minute},
		CORS: config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,PUT,OPTIONS", AllowedHeaders: "Authorization,Content-Type"},
		Ingest: config.IngestConfig{
			DedupWindow:    24 * time.Hour,
			Serializable:   true,
			MaxRetries:     10,
			MaxBodyBytes:   1 << 20,
			ForwardTimeout: time.Second,
		},
		Transfer: config.TransferConfig{ActivityCopyWindow: 30 * 24 * time.Hour},
	}

	handler, closeStack := app.NewHTTPHandler(cfg, logger, pool)
	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		closeStack(context.Background()) //nolint:errcheck
	})

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    authpkg.NewJWTManager(jwtSecret, jwtIssuer, 15*time.Minute),
	}
}

// do sends a JSON request and returns status + decoded body.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	status, result, err := ts.send(method, path, token, body)
	require.NoError(t, err)
	return status, result
}

// send is do without assertions, for use from goroutines.
func (ts *testServer) send(method, path, token string, body any) (int, map[string]any, error) {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, result, nil
}

// memberToken grants a fresh user the role in workspaceID and returns a
// valid access token for them.
func (ts *testServer) memberToken(t *testing.T, workspaceID uuid.UUID, role domain.Role) string {
	t.Helper()

	userID := uuid.New()
	testhelper.SeedMember(t, ts.Pool, workspaceID, userID, role)

	tok, err := ts.jwt.GenerateAccessToken(userID)
	require.NoError(t, err)
	return tok
}

func (ts *testServer) countLeads(t *testing.T, pipelineID uuid.UUID) int {
	t.Helper()
	var n int
	err := ts.Pool.QueryRow(context.Background(),
		`SELECT count(*) FROM leads WHERE pipeline_id = $1`, pipelineID).Scan(&n)
	require.NoError(t, err)
	return n
}
