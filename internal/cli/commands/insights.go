package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sumanthd032/DataCanvas/internal/cli/output"
	"github.com/sumanthd032/DataCanvas/internal/insight"
	"github.com/sumanthd032/DataCanvas/internal/profile"
)

// NewInsightsCommand creates the insights command.
func NewInsightsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights <database> [table]",
		Short: "Surface automatic insights for a table",
		Long: `Scan a table for noteworthy patterns: strongly correlated column
pairs, columns with many missing values, and categorical columns with
unusually high cardinality.

Thresholds can be tuned in the insights section of the config file.
When no table is given the first table in the schema is used.`,
		Example: `  datacanvas insights data.db users
  datacanvas insights data.db users -o json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tableArg := ""
			if len(args) > 1 {
				tableArg = args[1]
			}
			return runInsights(cmd, args[0], tableArg)
		},
	}

	return cmd
}

func runInsights(cmd *cobra.Command, dbPath, tableArg string) error {
	cmdCtx := NewCommandContext(cmd)
	ctx := cmd.Context()

	db, cleanup, err := openReadOnly(dbPath)
	if err != nil {
		return err
	}
	defer cleanup()

	tableName, err := resolveTable(ctx, db, tableArg)
	if err != nil {
		return err
	}

	f, err := loadFrame(ctx, db, tableName)
	if err != nil {
		return err
	}

	tp := profile.Table(tableName, f)
	pairs := profile.Correlations(f)

	th := insight.Thresholds{
		Correlation: cmdCtx.Cfg.Insights.Correlation,
		Missing:     cmdCtx.Cfg.Insights.Missing,
		Cardinality: cmdCtx.Cfg.Insights.Cardinality,
		MinRows:     cmdCtx.Cfg.Insights.MinRows,
	}
	insights := insight.Generate(tp, pairs, th)

	if cmdCtx.Renderer.IsJSON() {
		type jsonInsight struct {
			Kind     string  `json:"kind"`
			Severity float64 `json:"severity"`
			Text     string  `json:"text"`
		}
		out := make([]jsonInsight, 0, len(insights))
		for _, in := range insights {
			out = append(out, jsonInsight{Kind: in.Kind.String(), Severity: in.Severity, Text: in.Text})
		}
		return cmdCtx.Renderer.JSON(out)
	}

	w := cmd.OutOrStdout()
	if len(insights) == 0 {
		_, _ = fmt.Fprintf(w, "No insights for %s.\n", tableName)
		return nil
	}

	styles := output.NewStyles()
	_, _ = fmt.Fprintln(w, styles.Title.Render(fmt.Sprintf("Insights for %s", tableName)))
	for _, in := range insights {
		marker := styles.SeverityStyle(in.Severity).Render("*")
		_, _ = fmt.Fprintf(w, "  %s %s\n", marker, in.Text)
	}
	return nil
}
