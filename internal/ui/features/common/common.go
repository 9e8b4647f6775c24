// Package common provides helpers shared by the web UI features.
package common

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/sumanthd032/DataCanvas/internal/frame"
	"github.com/sumanthd032/DataCanvas/internal/session"
	"github.com/sumanthd032/DataCanvas/internal/ui/views"
)

// SessionCookie is the cookie name carrying the visitor's session ID.
const SessionCookie = "datacanvas"

// Resolve returns the visitor's server-side session, minting a session ID
// cookie on first contact.
func Resolve(w http.ResponseWriter, r *http.Request, store sessions.Store, mgr *session.Manager) *session.Session {
	gs, _ := store.Get(r, SessionCookie)
	id, ok := gs.Values["sid"].(string)
	if !ok || id == "" {
		id = uuid.NewString()
		gs.Values["sid"] = id
		_ = gs.Save(r, w)
	}
	return mgr.Get(id)
}

// ResultTable converts up to limit rows of a frame into displayable strings.
// A limit of 0 or less means all rows.
func ResultTable(f *frame.Frame, limit int) views.ResultTable {
	cols := f.Columns()
	rt := views.ResultTable{Columns: f.Names()}

	n := f.Rows()
	if limit > 0 && limit < n {
		n = limit
	}
	for r := 0; r < n; r++ {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = frame.Display(c.Values[r])
		}
		rt.Rows = append(rt.Rows, row)
	}
	return rt
}

// FormatStat renders an optional statistic, with "-" standing in for
// undefined.
func FormatStat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'g', 6, 64)
}
