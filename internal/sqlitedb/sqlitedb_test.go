package sqlitedb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB creates a populated database file and returns its path.
func newTestDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.ExecContext(context.Background(), `
		CREATE TABLE people (age INTEGER, city TEXT);
		CREATE TABLE orders (id INTEGER PRIMARY KEY, total REAL);
		CREATE VIEW v_people AS SELECT * FROM people;
		INSERT INTO people VALUES (25, 'NY'), (30, 'NY'), (35, 'LA');
	`)
	require.NoError(t, err)
	return path
}

func TestOpenRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.db")
	require.NoError(t, os.WriteFile(path, []byte("this is not a database, truncated"), 0o644))

	db, err := Open(path)
	require.Error(t, err)
	assert.Nil(t, db, "no handle may be left open")

	var ffe *FileFormatError
	require.ErrorAs(t, err, &ffe)
}

func TestOpenThenListTablesTerminates(t *testing.T) {
	ctx := context.Background()

	// Populated database.
	db, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	tables, err := Tables(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"orders", "people"}, tables, "views are excluded")

	// Brand-new empty database: empty list, not an error.
	empty, err := Open(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	defer func() { _ = empty.Close() }()

	tables, err = Tables(ctx, empty)
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestColumns(t *testing.T) {
	db, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	cols, err := Columns(context.Background(), db, "orders")
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "id", cols[0].Name)
	assert.True(t, cols[0].PrimaryKey)
	assert.Equal(t, "total", cols[1].Name)
	assert.True(t, cols[1].Nullable)
}

func TestPreviewAndLoad(t *testing.T) {
	ctx := context.Background()
	db, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	preview, err := Preview(ctx, db, "people", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, preview.Rows())
	assert.Equal(t, []string{"age", "city"}, preview.Names())

	full, err := LoadTable(ctx, db, "people")
	require.NoError(t, err)
	assert.Equal(t, 3, full.Rows())
}

func TestRunSelect(t *testing.T) {
	db, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	res, err := Run(context.Background(), db, `SELECT city, count(*) AS n FROM people GROUP BY city ORDER BY n DESC`)
	require.NoError(t, err)
	require.True(t, res.HasRows)
	assert.Equal(t, 2, res.Frame.Rows())
	assert.Equal(t, []string{"city", "n"}, res.Frame.Names())
}

func TestRunNonRowStatement(t *testing.T) {
	db, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	res, err := Run(context.Background(), db, `UPDATE people SET city = 'SF' WHERE city = 'LA'`)
	require.NoError(t, err)
	assert.False(t, res.HasRows)
	assert.Equal(t, int64(1), res.RowsAffected)
}

func TestRunErrorKeepsSessionUsable(t *testing.T) {
	ctx := context.Background()
	db, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = Run(ctx, db, `SELECT * FROM nonexistent_table`)
	require.Error(t, err)

	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Contains(t, qe.Error(), "nonexistent_table", "driver message names the missing object")

	// The handle stays usable after a failed statement.
	res, err := Run(ctx, db, `SELECT count(*) FROM people`)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Frame.Rows())
}

func TestRunEmptyStatement(t *testing.T) {
	db, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = Run(context.Background(), db, "   ")
	var qe *QueryError
	require.ErrorAs(t, err, &qe)
}

func TestOpenReadOnly(t *testing.T) {
	path := newTestDB(t)

	db, err := OpenReadOnly(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = Run(context.Background(), db, `INSERT INTO people VALUES (1, 'X')`)
	require.Error(t, err)

	res, err := Run(context.Background(), db, `SELECT count(*) FROM people`)
	require.NoError(t, err)
	require.True(t, res.HasRows)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"people"`, QuoteIdent("people"))
	assert.Equal(t, `"we""ird"`, QuoteIdent(`we"ird`))
}

func TestEmptySchemaError(t *testing.T) {
	err := error(&EmptySchemaError{})
	var ese *EmptySchemaError
	assert.True(t, errors.As(err, &ese))
	assert.Contains(t, err.Error(), "no tables")
}
