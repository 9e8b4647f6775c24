// Package router sets up HTTP routes for the web UI server.
package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/sumanthd032/DataCanvas/internal/chart"
	"github.com/sumanthd032/DataCanvas/internal/insight"
	"github.com/sumanthd032/DataCanvas/internal/session"
	analysisFeature "github.com/sumanthd032/DataCanvas/internal/ui/features/analysis"
	homeFeature "github.com/sumanthd032/DataCanvas/internal/ui/features/home"
	queryFeature "github.com/sumanthd032/DataCanvas/internal/ui/features/query"
	uploadFeature "github.com/sumanthd032/DataCanvas/internal/ui/features/upload"
	"github.com/sumanthd032/DataCanvas/internal/ui/notifier"
	"github.com/sumanthd032/DataCanvas/internal/ui/resources"
)

// Options carries the feature configuration down into the route setup.
type Options struct {
	DataDir     string
	PreviewRows int
	ChartOpts   chart.Options
	Thresholds  insight.Thresholds
}

// SetupRoutes configures all routes for the web UI server.
func SetupRoutes(
	router chi.Router,
	mgr *session.Manager,
	sessionStore *sessions.CookieStore,
	notify *notifier.Notifier,
	opts Options,
) error {
	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	if err := homeFeature.SetupRoutes(router, mgr, sessionStore, notify, opts.DataDir); err != nil {
		return err
	}

	if err := uploadFeature.SetupRoutes(router, mgr, sessionStore); err != nil {
		return err
	}

	if err := queryFeature.SetupRoutes(router, mgr, sessionStore, opts.PreviewRows); err != nil {
		return err
	}

	if err := analysisFeature.SetupRoutes(router, mgr, sessionStore, opts.ChartOpts, opts.Thresholds); err != nil {
		return err
	}

	return nil
}
