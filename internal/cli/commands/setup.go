package commands

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/sumanthd032/DataCanvas/internal/cli/config"
	"github.com/sumanthd032/DataCanvas/internal/cli/output"
	"github.com/sumanthd032/DataCanvas/internal/frame"
	"github.com/sumanthd032/DataCanvas/internal/sqlitedb"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the cobra command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	return &config.Config{
		TempDir:      getEnvOrDefault("DATACANVAS_TEMP_DIR", os.TempDir()),
		DataDir:      os.Getenv("DATACANVAS_DATA_DIR"),
		PreviewRows:  config.DefaultPreviewRows,
		Verbose:      os.Getenv("DATACANVAS_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("DATACANVAS_OUTPUT", config.DefaultOutput),
		Serve:        config.ServeConfig{Port: config.DefaultPort},
		Charts:       config.ChartsConfig{Bins: 20, TopK: 20},
		Insights:     config.InsightsConfig{Correlation: 0.7, Missing: 0.2, Cardinality: 0.9, MinRows: 20},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// openReadOnly opens a database file for inspection. The returned cleanup
// closes the handle and must be called (typically via defer).
func openReadOnly(path string) (*sql.DB, func(), error) {
	db, err := sqlitedb.OpenReadOnly(path)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}

// resolveTable returns the table to operate on. An empty arg selects the
// first table in the schema; a schema with no tables is an error.
func resolveTable(ctx context.Context, db *sql.DB, arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	tables, err := sqlitedb.Tables(ctx, db)
	if err != nil {
		return "", err
	}
	if len(tables) == 0 {
		return "", &sqlitedb.EmptySchemaError{}
	}
	return tables[0], nil
}

// loadFrame loads a full table into memory for profiling and charting.
func loadFrame(ctx context.Context, db *sql.DB, table string) (*frame.Frame, error) {
	return sqlitedb.LoadTable(ctx, db, table)
}

// countPrinter formats row counts with thousands separators for human
// readable output.
var countPrinter = message.NewPrinter(language.English)

func formatCount(n int64) string {
	return countPrinter.Sprintf("%d", n)
}
