// Package views renders the HTML page shell and the fragments patched into
// it over SSE.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"pct": func(f float64) string { return fmt.Sprintf("%.0f%%", f*100) },
}).ParseFS(templateFS, "templates/*.gohtml"))

// PageData is the data for the full page shell.
type PageData struct {
	Title    string
	Database string
	HasDB    bool
	Error    string
	LocalDBs []LocalDB
	HasLocal bool
}

// LocalDB is one openable database file from the data directory.
type LocalDB struct {
	Name string
	Size string
}

// TableInfo is one table in the schema listing.
type TableInfo struct {
	Name    string
	Columns int
	Rows    int64
}

// TablesData is the schema panel fragment.
type TablesData struct {
	Tables []TableInfo
	Error  string
}

// ResultTable is a rendered grid of rows.
type ResultTable struct {
	Columns []string
	Rows    [][]string
}

// PreviewData is the table preview fragment.
type PreviewData struct {
	Table  string
	Total  int
	Result ResultTable
	Error  string
}

// QueryData is the query results fragment.
type QueryData struct {
	Result       ResultTable
	RowCount     int
	RowsAffected int64
	HasRows      bool
	ElapsedMS    int64
	Error        string
	Ran          bool
}

// ProfileRow is one column's statistics in the profile fragment.
type ProfileRow struct {
	Name     string
	Kind     string
	Missing  string
	Distinct string
	Min      string
	Max      string
	Mean     string
	StdDev   string
}

// CorrelationRow is one numeric column pair in the profile fragment.
type CorrelationRow struct {
	A string
	B string
	R string
}

// ProfileData is the profile fragment.
type ProfileData struct {
	Table        string
	Rows         int
	MissingCells int
	Profiles     []ProfileRow
	Correlations []CorrelationRow
	Error        string
}

// InsightRow is one rendered insight.
type InsightRow struct {
	Kind     string
	Severity float64
	Text     string
}

// InsightsData is the insights fragment.
type InsightsData struct {
	Table    string
	Insights []InsightRow
	Error    string
}

// ChartData is the chart fragment. Stamp busts the browser image cache.
type ChartData struct {
	Stamp int64
	Error string
}

// Page writes the full page shell.
func Page(w io.Writer, data PageData) error {
	return templates.ExecuteTemplate(w, "layout.gohtml", data)
}

// Fragment renders a named fragment template to a string for SSE patching.
func Fragment(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
