package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sumanthd032/DataCanvas/internal/sqlitedb"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Format string
	Input  string
	Write  bool
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query <database> [SQL]",
		Short: "Run SQL against a SQLite database",
		Long: `Execute SQL statements against a SQLite database file.

Statements that return rows are rendered in the selected format.
Other statements report the number of affected rows. The database
is opened read-only unless --write is given.

When invoked without SQL on a terminal, enters interactive REPL mode.`,
		Example: `  # Execute SQL directly
  datacanvas query data.db "SELECT * FROM users LIMIT 10"

  # Output as JSON
  datacanvas query data.db "SELECT * FROM users" --format json

  # Read SQL from a file
  datacanvas query data.db --input report.sql

  # Allow statements that modify the database
  datacanvas query data.db "DELETE FROM staging" --write

  # Interactive mode
  datacanvas query data.db`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json, csv, md")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")
	cmd.Flags().BoolVar(&opts.Write, "write", false, "Open the database read-write")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	dbPath := args[0]

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("database not found: %s", dbPath)
	}

	// Determine SQL source
	var sqlQuery string

	switch {
	case len(args) > 1:
		sqlQuery = strings.Join(args[1:], " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
	case !isTerminal(os.Stdin):
		// Read from stdin (piped input)
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	default:
		// No input, TTY detected - enter REPL mode
		return runQueryREPL(cmd, dbPath, opts)
	}

	return executeAndRender(cmd.Context(), cmd, dbPath, sqlQuery, opts)
}

func executeAndRender(ctx context.Context, cmd *cobra.Command, dbPath, sqlQuery string, opts *QueryOptions) error {
	db, err := openQueryDB(dbPath, opts.Write)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	res, err := sqlitedb.Run(ctx, db, sqlQuery)
	if err != nil {
		return err
	}

	return renderResult(cmd.OutOrStdout(), res, opts.Format)
}

func openQueryDB(path string, write bool) (*sql.DB, error) {
	if write {
		return sqlitedb.Open(path)
	}
	return sqlitedb.OpenReadOnly(path)
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
