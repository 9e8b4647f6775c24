// Package home provides the page shell and local database browsing.
package home

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/sumanthd032/DataCanvas/internal/session"
	"github.com/sumanthd032/DataCanvas/internal/ui/notifier"
)

// SetupRoutes registers the home feature routes.
func SetupRoutes(
	router chi.Router,
	mgr *session.Manager,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	dataDir string,
) error {
	handlers := NewHandlers(mgr, sessionStore, notify, dataDir)

	router.Get("/", handlers.HomePage)
	router.Get("/updates", handlers.UpdatesSSE)
	router.Post("/open/{name}", handlers.OpenLocal)

	return nil
}
