// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	dcsession "github.com/sumanthd032/DataCanvas/internal/session"
	"github.com/sumanthd032/DataCanvas/internal/ui/features/common"
	"github.com/sumanthd032/DataCanvas/internal/ui/notifier"

	// sqlite driver for building fixture databases.
	_ "modernc.org/sqlite"
)

// TestSessionID is the server-side session ID used by AuthedRequest.
const TestSessionID = "test-session-id"

// Fixture holds all dependencies needed for UI handler tests.
type Fixture struct {
	Sessions     *dcsession.Manager
	SessionStore *sessions.CookieStore
	Notifier     *notifier.Notifier
}

// SetupFixture creates a session manager, cookie store and notifier backed
// by a temp directory. Everything is cleaned up when the test ends.
func SetupFixture(t *testing.T) *Fixture {
	t.Helper()

	mgr := dcsession.NewManager(t.TempDir())
	t.Cleanup(func() { _ = mgr.Close() })

	return &Fixture{
		Sessions:     mgr,
		SessionStore: sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!")),
		Notifier:     notifier.New(),
	}
}

// DBBytes builds a small SQLite database on disk and returns its raw bytes.
// The people table mixes numeric, categorical and missing values.
func DBBytes(t *testing.T) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)

	_, err = db.ExecContext(context.Background(), `
		CREATE TABLE people (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			age INTEGER,
			score REAL,
			city TEXT
		);
		INSERT INTO people (id, name, age, score, city) VALUES
			(1, 'Alice', 30, 90.5, 'NY'),
			(2, 'Bob', 25, 81.0, 'LA'),
			(3, 'Cara', 35, 99.5, 'NY'),
			(4, 'Dan', NULL, 72.0, NULL);
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

// AuthedRequest builds a request carrying a cookie for TestSessionID, so
// handlers resolve the same server-side session across calls.
func AuthedRequest(t *testing.T, fx *Fixture, method, target string, body io.Reader) *http.Request {
	t.Helper()

	seed := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	gs, _ := fx.SessionStore.Get(seed, common.SessionCookie)
	gs.Values["sid"] = TestSessionID
	require.NoError(t, gs.Save(seed, rec))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(method, target, body)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// OpenTestDB installs the fixture database into the TestSessionID session.
func OpenTestDB(t *testing.T, fx *Fixture) *dcsession.Session {
	t.Helper()

	sess := fx.Sessions.Get(TestSessionID)
	require.NoError(t, sess.ReplaceUpload(DBBytes(t), "fixture.db"))
	return sess
}
