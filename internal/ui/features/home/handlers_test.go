package home

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumanthd032/DataCanvas/internal/ui/features"
)

func setupTestHandlers(t *testing.T, dataDir string) (*Handlers, *features.Fixture) {
	t.Helper()

	fx := features.SetupFixture(t)
	return NewHandlers(fx.Sessions, fx.SessionStore, fx.Notifier, dataDir), fx
}

func TestHomePageNoDatabase(t *testing.T) {
	h, fx := setupTestHandlers(t, "")

	req := features.AuthedRequest(t, fx, http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.HomePage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "DataCanvas")
	assert.Contains(t, body, "no database open")
}

func TestHomePageShowsOpenDatabase(t *testing.T) {
	h, fx := setupTestHandlers(t, "")
	features.OpenTestDB(t, fx)

	req := features.AuthedRequest(t, fx, http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.HomePage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fixture.db")
}

func TestHomePageShowsError(t *testing.T) {
	h, fx := setupTestHandlers(t, "")

	req := features.AuthedRequest(t, fx, http.MethodGet, "/?error=something+broke", nil)
	rec := httptest.NewRecorder()
	h.HomePage(rec, req)

	assert.Contains(t, rec.Body.String(), "something broke")
}

func TestHomePageListsLocalDatabases(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "sales.db"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "notes.txt"), []byte("x"), 0o600))

	h, fx := setupTestHandlers(t, dataDir)

	req := features.AuthedRequest(t, fx, http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.HomePage(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "sales.db")
	assert.NotContains(t, body, "notes.txt")
}

func TestOpenLocal(t *testing.T) {
	dataDir := t.TempDir()
	path := filepath.Join(dataDir, "local.db")
	require.NoError(t, os.WriteFile(path, features.DBBytes(t), 0o600))

	h, fx := setupTestHandlers(t, dataDir)

	req := features.AuthedRequest(t, fx, http.MethodPost, "/open/local.db", nil)
	req = features.RequestWithPathParam(req, "name", "local.db")

	rec := httptest.NewRecorder()
	h.OpenLocal(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	sess := fx.Sessions.Get(features.TestSessionID)
	assert.True(t, sess.Open())
	assert.Equal(t, "local.db", sess.Name())
}

func TestOpenLocalRejectsPathTraversal(t *testing.T) {
	h, fx := setupTestHandlers(t, t.TempDir())

	req := features.AuthedRequest(t, fx, http.MethodPost, "/open/x", nil)
	req = features.RequestWithPathParam(req, "name", "../secret.db")

	rec := httptest.NewRecorder()
	h.OpenLocal(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "error=")
}

func TestOpenLocalMissingFile(t *testing.T) {
	h, fx := setupTestHandlers(t, t.TempDir())

	req := features.AuthedRequest(t, fx, http.MethodPost, "/open/nope.db", nil)
	req = features.RequestWithPathParam(req, "name", "nope.db")

	rec := httptest.NewRecorder()
	h.OpenLocal(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "not+found")
}
