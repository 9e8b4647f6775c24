// Package analysis provides the profiling, insight and chart panels of the
// web UI. All three operate on the table most recently loaded via preview.
package analysis

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"
	"github.com/sumanthd032/DataCanvas/internal/chart"
	"github.com/sumanthd032/DataCanvas/internal/insight"
	"github.com/sumanthd032/DataCanvas/internal/profile"
	"github.com/sumanthd032/DataCanvas/internal/session"
	"github.com/sumanthd032/DataCanvas/internal/ui/features/common"
	"github.com/sumanthd032/DataCanvas/internal/ui/views"
)

// ChartSignals represents the chart form signals sent from the frontend.
type ChartSignals struct {
	Type string `json:"chartType"`
	Col  string `json:"chartCol"`
	By   string `json:"chartBy"`
}

// Handlers provides HTTP handlers for the analysis feature.
type Handlers struct {
	sessions     *session.Manager
	sessionStore sessions.Store
	chartOpts    chart.Options
	thresholds   insight.Thresholds
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(mgr *session.Manager, sessionStore sessions.Store, chartOpts chart.Options, th insight.Thresholds) *Handlers {
	return &Handlers{
		sessions:     mgr,
		sessionStore: sessionStore,
		chartOpts:    chartOpts,
		thresholds:   th,
	}
}

// ProfileSSE patches the profile panel for the loaded table.
func (h *Handlers) ProfileSSE(w http.ResponseWriter, r *http.Request) {
	sess := common.Resolve(w, r, h.sessionStore, h.sessions)
	sse := datastar.NewSSE(w, r)

	table, f, ok := sess.Loaded()
	if !ok {
		h.patchProfile(sse, views.ProfileData{Error: "preview a table first"})
		return
	}

	tp := profile.Table(table, f)

	data := views.ProfileData{
		Table:        tp.Table,
		Rows:         tp.Rows,
		MissingCells: tp.MissingCells,
	}
	for _, p := range tp.Profiles {
		data.Profiles = append(data.Profiles, views.ProfileRow{
			Name:     p.Name,
			Kind:     p.KindName,
			Missing:  fmt.Sprintf("%d", p.Missing),
			Distinct: fmt.Sprintf("%d", p.Distinct),
			Min:      common.FormatStat(p.Min),
			Max:      common.FormatStat(p.Max),
			Mean:     common.FormatStat(p.Mean),
			StdDev:   common.FormatStat(p.StdDev),
		})
	}
	for _, p := range profile.Correlations(f) {
		data.Correlations = append(data.Correlations, views.CorrelationRow{
			A: p.A, B: p.B, R: fmt.Sprintf("%.4f", p.R),
		})
	}

	h.patchProfile(sse, data)
}

// InsightsSSE patches the insights panel for the loaded table.
func (h *Handlers) InsightsSSE(w http.ResponseWriter, r *http.Request) {
	sess := common.Resolve(w, r, h.sessionStore, h.sessions)
	sse := datastar.NewSSE(w, r)

	table, f, ok := sess.Loaded()
	if !ok {
		h.patchInsights(sse, views.InsightsData{Error: "preview a table first"})
		return
	}

	tp := profile.Table(table, f)
	pairs := profile.Correlations(f)

	data := views.InsightsData{Table: table}
	for _, in := range insight.Generate(tp, pairs, h.thresholds) {
		data.Insights = append(data.Insights, views.InsightRow{
			Kind:     in.Kind.String(),
			Severity: in.Severity,
			Text:     in.Text,
		})
	}

	h.patchInsights(sse, data)
}

// ChartSSE renders a chart of the loaded table and patches the chart panel
// with an image tag pointing at the freshly rendered PNG.
func (h *Handlers) ChartSSE(w http.ResponseWriter, r *http.Request) {
	sess := common.Resolve(w, r, h.sessionStore, h.sessions)

	var signals ChartSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		h.patchChart(sse, views.ChartData{Error: "failed to read signals: " + err.Error()})
		return
	}

	sse := datastar.NewSSE(w, r)

	_, f, ok := sess.Loaded()
	if !ok {
		h.patchChart(sse, views.ChartData{Error: "preview a table first"})
		return
	}

	png, err := chart.Render(f, signals.Type, signals.Col, signals.By, h.chartOpts)
	if err != nil {
		h.patchChart(sse, views.ChartData{Error: err.Error()})
		return
	}

	sess.SetChart(png)
	h.patchChart(sse, views.ChartData{Stamp: time.Now().UnixMilli()})
}

// ChartPNG serves the session's latest rendered chart.
func (h *Handlers) ChartPNG(w http.ResponseWriter, r *http.Request) {
	sess := common.Resolve(w, r, h.sessionStore, h.sessions)

	png := sess.Chart()
	if len(png) == 0 {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

func (h *Handlers) patchProfile(sse *datastar.ServerSentEventGenerator, data views.ProfileData) {
	html, err := views.Fragment("profile.gohtml", data)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	_ = sse.PatchElements(html)
}

func (h *Handlers) patchInsights(sse *datastar.ServerSentEventGenerator, data views.InsightsData) {
	html, err := views.Fragment("insights.gohtml", data)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	_ = sse.PatchElements(html)
}

func (h *Handlers) patchChart(sse *datastar.ServerSentEventGenerator, data views.ChartData) {
	html, err := views.Fragment("chart.gohtml", data)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	_ = sse.PatchElements(html)
}
