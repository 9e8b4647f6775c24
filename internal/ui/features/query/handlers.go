// Package query provides the schema browser, table preview and ad hoc SQL
// runner of the web UI.
package query

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"
	"github.com/sumanthd032/DataCanvas/internal/session"
	"github.com/sumanthd032/DataCanvas/internal/sqlitedb"
	"github.com/sumanthd032/DataCanvas/internal/ui/features/common"
	"github.com/sumanthd032/DataCanvas/internal/ui/views"
)

const (
	maxRows      = 1000
	queryTimeout = 30 * time.Second
)

// QuerySignals represents the signals sent from the frontend.
type QuerySignals struct {
	SQL string `json:"sql"`
}

// Handlers provides HTTP handlers for the query feature.
type Handlers struct {
	sessions     *session.Manager
	sessionStore sessions.Store
	previewRows  int
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(mgr *session.Manager, sessionStore sessions.Store, previewRows int) *Handlers {
	return &Handlers{
		sessions:     mgr,
		sessionStore: sessionStore,
		previewRows:  previewRows,
	}
}

// TablesSSE patches the schema panel with the session's table listing.
func (h *Handlers) TablesSSE(w http.ResponseWriter, r *http.Request) {
	sess := common.Resolve(w, r, h.sessionStore, h.sessions)
	sse := datastar.NewSSE(w, r)

	db := sess.DB()
	if db == nil {
		h.patchTables(sse, views.TablesData{})
		return
	}

	names, err := sqlitedb.Tables(r.Context(), db)
	if err != nil {
		h.patchTables(sse, views.TablesData{Error: err.Error()})
		return
	}
	if len(names) == 0 {
		h.patchTables(sse, views.TablesData{Error: (&sqlitedb.EmptySchemaError{}).Error()})
		return
	}

	var data views.TablesData
	for _, name := range names {
		cols, err := sqlitedb.Columns(r.Context(), db, name)
		if err != nil {
			h.patchTables(sse, views.TablesData{Error: err.Error()})
			return
		}
		var rows int64
		if err := db.QueryRowContext(r.Context(), "SELECT count(*) FROM "+sqlitedb.QuoteIdent(name)).Scan(&rows); err != nil {
			h.patchTables(sse, views.TablesData{Error: err.Error()})
			return
		}
		data.Tables = append(data.Tables, views.TableInfo{Name: name, Columns: len(cols), Rows: rows})
	}

	h.patchTables(sse, data)
}

// PreviewSSE patches the preview panel with the head of a table and loads
// the full table into the session for profiling and charting.
func (h *Handlers) PreviewSSE(w http.ResponseWriter, r *http.Request) {
	sess := common.Resolve(w, r, h.sessionStore, h.sessions)
	sse := datastar.NewSSE(w, r)

	name := chi.URLParam(r, "table")

	db := sess.DB()
	if db == nil {
		h.patchPreview(sse, views.PreviewData{Error: "no database open"})
		return
	}

	f, err := sqlitedb.LoadTable(r.Context(), db, name)
	if err != nil {
		h.patchPreview(sse, views.PreviewData{Error: err.Error()})
		return
	}
	sess.SetLoaded(name, f)

	h.patchPreview(sse, views.PreviewData{
		Table:  name,
		Total:  f.Rows(),
		Result: common.ResultTable(f, h.previewRows),
	})
}

// ExecuteQuerySSE executes a SQL statement and patches the results panel.
func (h *Handlers) ExecuteQuerySSE(w http.ResponseWriter, r *http.Request) {
	sess := common.Resolve(w, r, h.sessionStore, h.sessions)

	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals QuerySignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		h.patchQuery(sse, views.QueryData{Ran: true, Error: "failed to read signals: " + err.Error()})
		return
	}

	sse := datastar.NewSSE(w, r)

	stmt := strings.TrimSpace(signals.SQL)
	if stmt == "" {
		h.patchQuery(sse, views.QueryData{Ran: true, Error: "query cannot be empty"})
		return
	}

	db := sess.DB()
	if db == nil {
		h.patchQuery(sse, views.QueryData{Ran: true, Error: "no database open"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	res, err := sqlitedb.Run(ctx, db, stmt)
	if err != nil {
		h.patchQuery(sse, views.QueryData{Ran: true, Error: err.Error()})
		return
	}

	data := views.QueryData{
		Ran:          true,
		HasRows:      res.HasRows,
		RowsAffected: res.RowsAffected,
		ElapsedMS:    res.Elapsed.Milliseconds(),
	}
	if res.HasRows {
		data.Result = common.ResultTable(res.Frame, maxRows)
		data.RowCount = res.Frame.Rows()
	}
	h.patchQuery(sse, data)
}

func (h *Handlers) patchTables(sse *datastar.ServerSentEventGenerator, data views.TablesData) {
	html, err := views.Fragment("tables_list.gohtml", data)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	_ = sse.PatchElements(html)
}

func (h *Handlers) patchPreview(sse *datastar.ServerSentEventGenerator, data views.PreviewData) {
	html, err := views.Fragment("preview.gohtml", data)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	_ = sse.PatchElements(html)
}

func (h *Handlers) patchQuery(sse *datastar.ServerSentEventGenerator, data views.QueryData) {
	html, err := views.Fragment("query_results.gohtml", data)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	_ = sse.PatchElements(html)
}
