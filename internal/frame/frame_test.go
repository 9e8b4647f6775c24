package frame

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// sqlite driver for test fixtures.
	_ "modernc.org/sqlite"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   Kind
	}{
		{"integers", []any{int64(1), int64(2)}, Numeric},
		{"floats", []any{1.5, 2.5}, Numeric},
		{"numeric strings", []any{"1", "2.5"}, Numeric},
		{"mixed text", []any{"1", "two"}, Categorical},
		{"text", []any{"NY", "LA"}, Categorical},
		{"empty string is a value", []any{"1", ""}, Categorical},
		{"nulls ignored", []any{int64(1), nil, int64(3)}, Numeric},
		{"all missing is vacuously numeric", []any{nil, nil}, Numeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.values))
		})
	}
}

func TestColumnFloats(t *testing.T) {
	c := Column{Name: "x", Values: []any{int64(1), nil, "2.5", "oops"}}

	vals, present := c.Floats()
	require.Len(t, vals, 4)
	assert.Equal(t, []bool{true, false, true, false}, present)
	assert.Equal(t, 1.0, vals[0])
	assert.Equal(t, 2.5, vals[2])
}

func TestColumnCounts(t *testing.T) {
	c := Column{Name: "city", Values: []any{"NY", "NY", "LA", nil, ""}}

	assert.Equal(t, 1, c.MissingCount())
	assert.Equal(t, 4, c.NonMissing())
	// Empty string counts as a distinct categorical value.
	assert.Equal(t, 3, c.DistinctCount())
}

func TestFromRows(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "frame.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	_, err = db.ExecContext(ctx, `
		CREATE TABLE people (age INTEGER, city TEXT, note TEXT);
		INSERT INTO people VALUES
			(25, 'NY', NULL),
			(30, 'NY', 'x'),
			(35, 'LA', NULL);
	`)
	require.NoError(t, err)

	rows, err := db.QueryContext(ctx, `SELECT * FROM people`)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	f, err := FromRows(rows)
	require.NoError(t, err)

	assert.Equal(t, 3, f.Rows())
	assert.Equal(t, 3, f.Cols())
	assert.Equal(t, []string{"age", "city", "note"}, f.Names())

	age, ok := f.Column("age")
	require.True(t, ok)
	assert.Equal(t, Numeric, age.Kind)

	city, ok := f.Column("city")
	require.True(t, ok)
	assert.Equal(t, Categorical, city.Kind)
	assert.Equal(t, 2, city.DistinctCount())

	note, ok := f.Column("note")
	require.True(t, ok)
	assert.Equal(t, 2, note.MissingCount())

	_, ok = f.Column("nope")
	assert.False(t, ok)
}

func TestNewMismatchedLengths(t *testing.T) {
	_, err := New([]string{"a", "b"}, [][]any{{int64(1)}, {int64(1), int64(2)}})
	require.Error(t, err)
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "NULL", Display(nil))
	assert.Equal(t, "3", Display(int64(3)))
	assert.Equal(t, "2.5", Display(2.5))
	assert.Equal(t, "NY", Display("NY"))
}
