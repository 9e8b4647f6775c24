package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sumanthd032/DataCanvas/internal/chart"
)

// ChartOptions holds options for the chart command.
type ChartOptions struct {
	Type   string
	Column string
	By     string
	Out    string
}

// NewChartCommand creates the chart command.
func NewChartCommand() *cobra.Command {
	opts := &ChartOptions{}

	cmd := &cobra.Command{
		Use:   "chart <database> [table]",
		Short: "Render a chart of a table as PNG",
		Long: `Render a chart of a table to a PNG file.

Chart types:
  histogram  distribution of a numeric column (--col)
  bar        value counts of a categorical column (--col)
  heatmap    correlation matrix of all numeric columns
  box        numeric column grouped by a categorical one (--col, --by)

When no table is given the first table in the schema is used.`,
		Example: `  datacanvas chart data.db users --type histogram --col age
  datacanvas chart data.db users --type bar --col city -O cities.png
  datacanvas chart data.db users --type heatmap
  datacanvas chart data.db users --type box --col age --by city`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tableArg := ""
			if len(args) > 1 {
				tableArg = args[1]
			}
			return runChart(cmd, args[0], tableArg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", "", "Chart type: "+strings.Join(chart.Types, ", "))
	cmd.Flags().StringVar(&opts.Column, "col", "", "Column to chart")
	cmd.Flags().StringVar(&opts.By, "by", "", "Categorical column to group by (box plots)")
	cmd.Flags().StringVarP(&opts.Out, "out", "O", "chart.png", "Output PNG path")
	_ = cmd.MarkFlagRequired("type")

	_ = cmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return chart.Types, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runChart(cmd *cobra.Command, dbPath, tableArg string, opts *ChartOptions) error {
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

	png, err := chart.Render(f, opts.Type, opts.Column, opts.By, chart.Options{
		Bins: cmdCtx.Cfg.Charts.Bins,
		TopK: cmdCtx.Cfg.Charts.TopK,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(opts.Out, png, 0o644); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}

	cmdCtx.Renderer.Successf("Wrote %s chart of %s to %s (%d bytes)", opts.Type, tableName, opts.Out, len(png))
	return nil
}
