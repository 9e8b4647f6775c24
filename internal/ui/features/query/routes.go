package query

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/sumanthd032/DataCanvas/internal/session"
)

// SetupRoutes registers the query feature routes.
func SetupRoutes(router chi.Router, mgr *session.Manager, sessionStore sessions.Store, previewRows int) error {
	handlers := NewHandlers(mgr, sessionStore, previewRows)

	router.Get("/api/tables", handlers.TablesSSE)
	router.Get("/api/preview/{table}", handlers.PreviewSSE)
	router.Post("/api/query/execute", handlers.ExecuteQuerySSE)

	return nil
}
