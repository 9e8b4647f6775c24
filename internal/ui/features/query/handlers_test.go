package query

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sumanthd032/DataCanvas/internal/ui/features"
)

func setupTestHandlers(t *testing.T) (*Handlers, *features.Fixture) {
	t.Helper()

	fx := features.SetupFixture(t)
	return NewHandlers(fx.Sessions, fx.SessionStore, 5), fx
}

func TestTablesSSEListsTables(t *testing.T) {
	h, fx := setupTestHandlers(t)
	features.OpenTestDB(t, fx)

	req := features.AuthedRequest(t, fx, http.MethodGet, "/api/tables", nil)
	rec := httptest.NewRecorder()
	h.TablesSSE(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")

	body := rec.Body.String()
	assert.Contains(t, body, "people")
	assert.Contains(t, body, "datastar-patch-elements")
}

func TestTablesSSENoDatabase(t *testing.T) {
	h, fx := setupTestHandlers(t)

	req := features.AuthedRequest(t, fx, http.MethodGet, "/api/tables", nil)
	rec := httptest.NewRecorder()
	h.TablesSSE(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "people")
}

func TestPreviewSSELoadsTableIntoSession(t *testing.T) {
	h, fx := setupTestHandlers(t)
	features.OpenTestDB(t, fx)

	req := features.AuthedRequest(t, fx, http.MethodGet, "/api/preview/people", nil)
	req = features.RequestWithPathParam(req, "table", "people")
	rec := httptest.NewRecorder()
	h.PreviewSSE(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "Alice")

	table, f, ok := fx.Sessions.Get(features.TestSessionID).Loaded()
	assert.True(t, ok)
	assert.Equal(t, "people", table)
	assert.Equal(t, 4, f.Rows())
}

func TestPreviewSSEUnknownTable(t *testing.T) {
	h, fx := setupTestHandlers(t)
	features.OpenTestDB(t, fx)

	req := features.AuthedRequest(t, fx, http.MethodGet, "/api/preview/nope", nil)
	req = features.RequestWithPathParam(req, "table", "nope")
	rec := httptest.NewRecorder()
	h.PreviewSSE(rec, req)

	assert.Contains(t, rec.Body.String(), "nope")
	_, _, ok := fx.Sessions.Get(features.TestSessionID).Loaded()
	assert.False(t, ok)
}

func executeQuery(t *testing.T, h *Handlers, fx *features.Fixture, sql string) *httptest.ResponseRecorder {
	t.Helper()

	body := strings.NewReader(`{"sql": ` + jsonString(sql) + `}`)
	req := features.AuthedRequest(t, fx, http.MethodPost, "/api/query/execute", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ExecuteQuerySSE(rec, req)
	return rec
}

func jsonString(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func TestExecuteQuerySelect(t *testing.T) {
	h, fx := setupTestHandlers(t)
	features.OpenTestDB(t, fx)

	rec := executeQuery(t, h, fx, "SELECT name FROM people ORDER BY name")

	body := rec.Body.String()
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "Dan")
	assert.Contains(t, body, "4 rows")
}

func TestExecuteQueryWrite(t *testing.T) {
	h, fx := setupTestHandlers(t)
	features.OpenTestDB(t, fx)

	rec := executeQuery(t, h, fx, "DELETE FROM people WHERE id = 1")
	assert.Contains(t, rec.Body.String(), "1 row(s) affected")
}

func TestExecuteQuerySyntaxError(t *testing.T) {
	h, fx := setupTestHandlers(t)
	features.OpenTestDB(t, fx)

	rec := executeQuery(t, h, fx, "SELEKT nothing")
	assert.Contains(t, rec.Body.String(), "query failed")
}

func TestExecuteQueryEmptyStatement(t *testing.T) {
	h, fx := setupTestHandlers(t)
	features.OpenTestDB(t, fx)

	rec := executeQuery(t, h, fx, "   ")
	assert.Contains(t, rec.Body.String(), "query cannot be empty")
}

func TestExecuteQueryNoDatabase(t *testing.T) {
	h, fx := setupTestHandlers(t)

	rec := executeQuery(t, h, fx, "SELECT 1")
	assert.Contains(t, rec.Body.String(), "no database open")
}
