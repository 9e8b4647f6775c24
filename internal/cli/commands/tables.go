package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/sumanthd032/DataCanvas/internal/sqlitedb"
)

// TablesOptions holds options for the tables command.
type TablesOptions struct {
	Preview bool
}

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	opts := &TablesOptions{}

	cmd := &cobra.Command{
		Use:   "tables <database>",
		Short: "List tables in a SQLite database",
		Long: `List the tables of a SQLite database with row and column counts.

With --preview, the first rows of each table are shown as well.`,
		Example: `  datacanvas tables data.db
  datacanvas tables data.db --preview
  datacanvas tables data.db -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Preview, "preview", "p", false, "Show the first rows of each table")

	return cmd
}

func runTables(cmd *cobra.Command, dbPath string, opts *TablesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	ctx := cmd.Context()

	db, cleanup, err := openReadOnly(dbPath)
	if err != nil {
		return err
	}
	defer cleanup()

	tables, err := sqlitedb.Tables(ctx, db)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		return &sqlitedb.EmptySchemaError{}
	}

	type tableInfo struct {
		Name    string `json:"name"`
		Columns int    `json:"columns"`
		Rows    int64  `json:"rows"`
	}

	infos := make([]tableInfo, 0, len(tables))
	for _, name := range tables {
		cols, err := sqlitedb.Columns(ctx, db, name)
		if err != nil {
			return err
		}
		var rows int64
		if err := db.QueryRowContext(ctx, "SELECT count(*) FROM "+sqlitedb.QuoteIdent(name)).Scan(&rows); err != nil {
			return err
		}
		infos = append(infos, tableInfo{Name: name, Columns: len(cols), Rows: rows})
	}

	if cmdCtx.Renderer.IsJSON() {
		return cmdCtx.Renderer.JSON(infos)
	}

	header := []string{"table", "columns", "rows"}
	rows := make([][]string, 0, len(infos))
	for _, ti := range infos {
		rows = append(rows, []string{ti.Name, strconv.Itoa(ti.Columns), formatCount(ti.Rows)})
	}
	cmdCtx.Renderer.Table(header, rows)

	if !opts.Preview {
		return nil
	}

	for _, ti := range infos {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", ti.Name)
		f, err := sqlitedb.Preview(ctx, db, ti.Name, cmdCtx.Cfg.PreviewRows)
		if err != nil {
			return err
		}
		if err := renderFrame(cmd.OutOrStdout(), f, "table"); err != nil {
			return err
		}
	}

	return nil
}
