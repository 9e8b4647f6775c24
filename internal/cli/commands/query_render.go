package commands

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sumanthd032/DataCanvas/internal/frame"
	"github.com/sumanthd032/DataCanvas/internal/sqlitedb"
)

// renderResult renders a statement result in the given format.
func renderResult(w io.Writer, res *sqlitedb.Result, format string) error {
	if !res.HasRows {
		_, _ = fmt.Fprintf(w, "OK, %d row(s) affected (%s)\n", res.RowsAffected, res.Elapsed.Round(time.Millisecond))
		return nil
	}
	return renderFrame(w, res.Frame, format)
}

// renderFrame renders a frame of rows in the given format.
func renderFrame(w io.Writer, f *frame.Frame, format string) error {
	switch format {
	case "json":
		return renderJSON(w, f)
	case "csv":
		return renderCSV(w, f)
	case "md", "markdown":
		return renderMarkdownRows(w, f)
	default:
		return renderTableRows(w, f)
	}
}

func renderTableRows(w io.Writer, f *frame.Frame) error {
	if f.Rows() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	cols := f.Columns()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(cols))
	for i, c := range cols {
		headerRow[i] = c.Name
	}
	t.AppendHeader(headerRow)

	for r := 0; r < f.Rows(); r++ {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[i] = frame.Display(c.Values[r])
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%s rows)\n", formatCount(int64(f.Rows())))
	return nil
}

func renderJSON(w io.Writer, f *frame.Frame) error {
	cols := f.Columns()
	results := make([]map[string]any, 0, f.Rows())
	for r := 0; r < f.Rows(); r++ {
		row := make(map[string]any, len(cols))
		for _, c := range cols {
			row[c.Name] = c.Values[r]
		}
		results = append(results, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func renderCSV(w io.Writer, f *frame.Frame) error {
	names := f.Names()
	_, _ = fmt.Fprintln(w, strings.Join(names, ","))

	cols := f.Columns()
	for r := 0; r < f.Rows(); r++ {
		values := make([]string, len(cols))
		for i, c := range cols {
			values[i] = escapeCSV(frame.Display(c.Values[r]))
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderMarkdownRows(w io.Writer, f *frame.Frame) error {
	if f.Rows() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	names := f.Names()
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(names, " | "))
	seps := make([]string, len(names))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	cols := f.Columns()
	for r := 0; r < f.Rows(); r++ {
		values := make([]string, len(cols))
		for i, c := range cols {
			values[i] = frame.Display(c.Values[r])
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// Helper functions shared with the REPL dot-commands

func listTablesTo(ctx context.Context, w io.Writer, db *sql.DB, format string) error {
	tables, err := sqlitedb.Tables(ctx, db)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		_, _ = fmt.Fprintln(w, "(no tables)")
		return nil
	}

	cols := make([][]any, 1)
	for _, name := range tables {
		cols[0] = append(cols[0], name)
	}
	f, err := frame.New([]string{"name"}, cols)
	if err != nil {
		return err
	}
	return renderFrame(w, f, format)
}

func showSchemaTo(ctx context.Context, w io.Writer, db *sql.DB, tableName, format string) error {
	columns, err := sqlitedb.Columns(ctx, db, tableName)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		return fmt.Errorf("table '%s' not found", tableName)
	}

	names := []string{"column", "type", "nullable", "pk"}
	cols := make([][]any, len(names))
	for _, c := range columns {
		cols[0] = append(cols[0], c.Name)
		cols[1] = append(cols[1], c.Type)
		cols[2] = append(cols[2], fmt.Sprintf("%t", c.Nullable))
		cols[3] = append(cols[3], fmt.Sprintf("%t", c.PrimaryKey))
	}
	f, err := frame.New(names, cols)
	if err != nil {
		return err
	}
	return renderFrame(w, f, format)
}
