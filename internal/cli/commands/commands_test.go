// Package commands_test provides tests for CLI command creation.
package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sumanthd032/DataCanvas/internal/cli/testutil"
)

// runCommand executes a command with args and returns captured stdout.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, NewVersionCommand("1.2.3", "unknown", "unknown"))
	require.NoError(t, err)
	assert.Contains(t, out, "DataCanvas v1.2.3")
}

func TestTablesCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	testutil.SetupTestDB(t, dbPath)

	out, err := runCommand(t, NewTablesCommand(), dbPath)
	require.NoError(t, err)

	assert.Contains(t, out, "people")
	assert.Contains(t, out, "empty_table")
}

func TestTablesCommandMissingFile(t *testing.T) {
	_, err := runCommand(t, NewTablesCommand(), filepath.Join(t.TempDir(), "nope.db"))
	assert.Error(t, err)
}

func TestQueryCommandSelect(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	testutil.SetupTestDB(t, dbPath)

	out, err := runCommand(t, NewQueryCommand(), dbPath, "SELECT name FROM people ORDER BY id")
	require.NoError(t, err)

	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Eve")
	assert.Contains(t, out, "(5 rows)")
}

func TestQueryCommandJSONFormat(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	testutil.SetupTestDB(t, dbPath)

	out, err := runCommand(t, NewQueryCommand(), dbPath, "SELECT id, name FROM people WHERE id = 1", "--format", "json")
	require.NoError(t, err)

	assert.Contains(t, out, `"name": "Alice"`)
}

func TestQueryCommandWriteRequiresFlag(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	testutil.SetupTestDB(t, dbPath)

	// Read-only by default: mutation fails.
	_, err := runCommand(t, NewQueryCommand(), dbPath, "DELETE FROM people")
	assert.Error(t, err)

	// With --write the same statement succeeds.
	out, err := runCommand(t, NewQueryCommand(), dbPath, "DELETE FROM people WHERE id = 5", "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "1 row(s) affected")
}

func TestProfileCommandTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	testutil.SetupTestDB(t, dbPath)

	out, err := runCommand(t, NewProfileCommand(), dbPath, "people")
	require.NoError(t, err)

	assert.Contains(t, out, "Table: people (5 rows, 5 columns")
	assert.Contains(t, out, "age")
	assert.Contains(t, out, "Numeric")
	assert.Contains(t, out, "Categorical")
}

func TestProfileCommandYAML(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	testutil.SetupTestDB(t, dbPath)

	out, err := runCommand(t, NewProfileCommand(), dbPath, "people", "--format", "yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "table: people")
	assert.Contains(t, out, "kind: Numeric")
}

func TestProfileCommandDefaultsToFirstTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	testutil.SetupTestDB(t, dbPath)

	// Tables sort alphabetically, so empty_table comes first.
	out, err := runCommand(t, NewProfileCommand(), dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Table: empty_table")
}

func TestInsightsCommandQuietTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	testutil.SetupTestDB(t, dbPath)

	// Five rows trip no default threshold.
	out, err := runCommand(t, NewInsightsCommand(), dbPath, "people")
	require.NoError(t, err)
	assert.Contains(t, out, "No insights for people.")
}

func TestChartCommandWritesPNG(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	testutil.SetupTestDB(t, dbPath)
	outPath := filepath.Join(t.TempDir(), "age.png")

	out, err := runCommand(t, NewChartCommand(), dbPath, "people",
		"--type", "histogram", "--col", "age", "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote histogram chart")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.True(t, len(data) > 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), data[:8])
}

func TestChartCommandRejectsUnknownType(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	testutil.SetupTestDB(t, dbPath)

	_, err := runCommand(t, NewChartCommand(), dbPath, "people", "--type", "pie", "--col", "age")
	assert.Error(t, err)
}
