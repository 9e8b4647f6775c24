package upload

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/sumanthd032/DataCanvas/internal/session"
)

// SetupRoutes registers the upload feature routes.
func SetupRoutes(router chi.Router, mgr *session.Manager, sessionStore sessions.Store) error {
	handlers := NewHandlers(mgr, sessionStore)

	router.Post("/upload", handlers.Upload)

	return nil
}
