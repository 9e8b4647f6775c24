package analysis

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/sumanthd032/DataCanvas/internal/chart"
	"github.com/sumanthd032/DataCanvas/internal/insight"
	"github.com/sumanthd032/DataCanvas/internal/session"
)

// SetupRoutes registers the analysis feature routes.
func SetupRoutes(
	router chi.Router,
	mgr *session.Manager,
	sessionStore sessions.Store,
	chartOpts chart.Options,
	th insight.Thresholds,
) error {
	handlers := NewHandlers(mgr, sessionStore, chartOpts, th)

	router.Get("/api/profile", handlers.ProfileSSE)
	router.Get("/api/insights", handlers.InsightsSSE)
	router.Post("/api/chart", handlers.ChartSSE)
	router.Get("/chart.png", handlers.ChartPNG)

	return nil
}
