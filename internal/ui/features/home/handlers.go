package home

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"
	"github.com/sumanthd032/DataCanvas/internal/session"
	"github.com/sumanthd032/DataCanvas/internal/ui/features/common"
	"github.com/sumanthd032/DataCanvas/internal/ui/notifier"
	"github.com/sumanthd032/DataCanvas/internal/ui/views"
)

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	sessions     *session.Manager
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	dataDir      string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(mgr *session.Manager, sessionStore sessions.Store, notify *notifier.Notifier, dataDir string) *Handlers {
	return &Handlers{
		sessions:     mgr,
		sessionStore: sessionStore,
		notifier:     notify,
		dataDir:      dataDir,
	}
}

// HomePage renders the full page shell.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	sess := common.Resolve(w, r, h.sessionStore, h.sessions)

	data := views.PageData{
		Title:    "Explorer",
		Database: sess.Name(),
		HasDB:    sess.Open(),
		Error:    r.URL.Query().Get("error"),
		HasLocal: h.dataDir != "",
		LocalDBs: h.listLocalDBs(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Page(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// UpdatesSSE streams local database list refreshes until the client leaves.
func (h *Handlers) UpdatesSSE(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	patch := func() {
		html, err := views.Fragment("localdb_list.gohtml", views.PageData{LocalDBs: h.listLocalDBs()})
		if err != nil {
			_ = sse.ConsoleError(err)
			return
		}
		_ = sse.PatchElements(html)
	}

	patch()

	ch := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(ch)

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ch:
			patch()
		}
	}
}

// OpenLocal opens a database file from the data directory read-only.
func (h *Handlers) OpenLocal(w http.ResponseWriter, r *http.Request) {
	sess := common.Resolve(w, r, h.sessionStore, h.sessions)

	name := chi.URLParam(r, "name")
	if name == "" || name != filepath.Base(name) {
		redirectError(w, r, "invalid database name")
		return
	}

	path := filepath.Join(h.dataDir, name)
	if _, err := os.Stat(path); err != nil {
		redirectError(w, r, fmt.Sprintf("database %s not found", name))
		return
	}

	if err := sess.OpenLocal(path); err != nil {
		redirectError(w, r, err.Error())
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func redirectError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

// listLocalDBs returns the openable database files in the data directory.
func (h *Handlers) listLocalDBs() []views.LocalDB {
	if h.dataDir == "" {
		return nil
	}

	entries, err := os.ReadDir(h.dataDir)
	if err != nil {
		return nil
	}

	var dbs []views.LocalDB
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".db", ".sqlite", ".sqlite3":
		default:
			continue
		}
		size := "?"
		if info, err := e.Info(); err == nil {
			size = formatSize(info.Size())
		}
		dbs = append(dbs, views.LocalDB{Name: e.Name(), Size: size})
	}

	sort.Slice(dbs, func(i, j int) bool { return dbs[i].Name < dbs[j].Name })
	return dbs
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
