package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lol-overlay/internal/repository"
	"lol-overlay/internal/scheduler"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCleanupTestServer(t *testing.T, jobs []scheduler.Job, closeDB bool) *Server {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	_, err = db.Exec(`CREATE TABLE overlays (
		id TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		expires_at TIMESTAMP NOT NULL
	)`)
	require.NoError(t, err)

	if closeDB {
		require.NoError(t, db.Close())
	} else {
		t.Cleanup(func() { db.Close() })
	}

	repo := repository.NewOverlayRepository(db, zerolog.Nop())
	sched := scheduler.New("", jobs, zerolog.Nop())

	return New(nil, nil, nil, repo, sched, zerolog.Nop())
}

func decodeCleanupResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAdminCleanupReportsStats(t *testing.T) {
	jobs := []scheduler.Job{{
		Name: "overlays",
		Run:  func(context.Context) (int, error) { return 2, nil },
	}}
	srv := newCleanupTestServer(t, jobs, false)

	rec := httptest.NewRecorder()
	srv.handleAdminCleanup(rec, httptest.NewRequest(http.MethodPost, "/api/overlay/admin", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeCleanupResponse(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["cleanedCount"])
	require.Contains(t, body, "stats")
	assert.Equal(t, map[string]any{"active": float64(0)}, body["stats"])
}

// A stats read failing after the jobs already ran must not turn the whole
// request into an error; the cleaned count is still reported.
func TestAdminCleanupReportsCountWhenStatsUnavailable(t *testing.T) {
	jobs := []scheduler.Job{{
		Name: "overlays",
		Run:  func(context.Context) (int, error) { return 3, nil },
	}}
	srv := newCleanupTestServer(t, jobs, true)

	rec := httptest.NewRecorder()
	srv.handleAdminCleanup(rec, httptest.NewRequest(http.MethodPost, "/api/overlay/admin", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeCleanupResponse(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["cleanedCount"])
	assert.NotContains(t, body, "stats")
}
