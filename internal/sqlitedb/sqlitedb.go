// Package sqlitedb wraps the SQLite driver with the small surface the rest
// of the tool needs: open-and-validate, schema inspection, previews, table
// loads and ad-hoc statement execution.
package sqlitedb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sumanthd032/DataCanvas/internal/frame"

	// sqlite driver for uploaded database files.
	_ "modernc.org/sqlite"
)

// ColumnInfo describes one column of a table, from PRAGMA table_info.
type ColumnInfo struct {
	Name       string
	Type       string
	Nullable   bool
	PrimaryKey bool
}

// Result is the outcome of running one statement: a frame for row-returning
// statements, or an affected-row count for everything else.
type Result struct {
	Frame        *frame.Frame
	RowsAffected int64
	HasRows      bool
	Elapsed      time.Duration
}

// Open opens path as a SQLite database and validates that the file really
// is one by touching the schema. Invalid files yield a *FileFormatError and
// no open handle.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &FileFormatError{Path: path, Err: err}
	}

	// sql.Open is lazy; a schema read forces the header check.
	var n int
	if err := db.QueryRow(`SELECT count(*) FROM sqlite_master`).Scan(&n); err != nil {
		_ = db.Close()
		return nil, &FileFormatError{Path: path, Err: err}
	}
	return db, nil
}

// OpenReadOnly opens path without allowing writes. Used when side-loading a
// local file the tool does not own a scratch copy of.
func OpenReadOnly(path string) (*sql.DB, error) {
	return Open(path + "?mode=ro")
}

// Tables returns the ordered table names. Views and SQLite internals are
// excluded. An empty database returns an empty list, not an error.
func Tables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// Columns returns the declared columns of a table in declaration order.
func Columns(ctx context.Context, db *sql.DB, table string) ([]ColumnInfo, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s)`, QuoteIdent(table)))
	if err != nil {
		return nil, &QueryError{Query: "PRAGMA table_info", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var cols []ColumnInfo
	for rows.Next() {
		var (
			cid, notnull, pk int
			name, ctype      string
			dflt             any
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, ColumnInfo{
			Name:       name,
			Type:       ctype,
			Nullable:   notnull == 0,
			PrimaryKey: pk > 0,
		})
	}
	return cols, rows.Err()
}

// Preview loads the first n rows of a table.
func Preview(ctx context.Context, db *sql.DB, table string, n int) (*frame.Frame, error) {
	return load(ctx, db, fmt.Sprintf(`SELECT * FROM %s LIMIT %d`, QuoteIdent(table), n))
}

// LoadTable materializes a full table as a frame. This is the snapshot every
// analysis component reads from.
func LoadTable(ctx context.Context, db *sql.DB, table string) (*frame.Frame, error) {
	return load(ctx, db, `SELECT * FROM `+QuoteIdent(table))
}

func load(ctx context.Context, db *sql.DB, query string) (*frame.Frame, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}
	defer func() { _ = rows.Close() }()
	return frame.FromRows(rows)
}

// Run executes an arbitrary statement. Row-returning statements come back as
// a frame; others report affected rows. Driver errors are wrapped as
// *QueryError and are never fatal.
func Run(ctx context.Context, db *sql.DB, stmt string) (*Result, error) {
	stmt = strings.TrimSpace(stmt)
	if stmt == "" {
		return nil, &QueryError{Query: stmt, Err: fmt.Errorf("statement is empty")}
	}

	start := time.Now()
	if returnsRows(stmt) {
		rows, err := db.QueryContext(ctx, stmt)
		if err != nil {
			return nil, &QueryError{Query: stmt, Err: err}
		}
		defer func() { _ = rows.Close() }()

		f, err := frame.FromRows(rows)
		if err != nil {
			return nil, &QueryError{Query: stmt, Err: err}
		}
		return &Result{Frame: f, HasRows: true, Elapsed: time.Since(start)}, nil
	}

	res, err := db.ExecContext(ctx, stmt)
	if err != nil {
		return nil, &QueryError{Query: stmt, Err: err}
	}
	affected, _ := res.RowsAffected()
	return &Result{RowsAffected: affected, Elapsed: time.Since(start)}, nil
}

// returnsRows reports whether the statement head indicates a row-returning
// statement.
func returnsRows(stmt string) bool {
	head := strings.ToLower(stmt)
	for _, prefix := range []string{"select", "with", "values", "pragma", "explain"} {
		if strings.HasPrefix(head, prefix) {
			return true
		}
	}
	return false
}

// QuoteIdent quotes an identifier for direct interpolation into SQL.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
