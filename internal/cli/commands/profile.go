package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/sumanthd032/DataCanvas/internal/profile"
	"gopkg.in/yaml.v3"
)

// ProfileOptions holds options for the profile command.
type ProfileOptions struct {
	Format       string
	Correlations bool
}

// NewProfileCommand creates the profile command.
func NewProfileCommand() *cobra.Command {
	opts := &ProfileOptions{}

	cmd := &cobra.Command{
		Use:   "profile <database> [table]",
		Short: "Profile the columns of a table",
		Long: `Compute per-column statistics for a table: inferred kind, missing
and distinct counts, and min/max/mean/stddev for numeric columns.

When no table is given the first table in the schema is profiled.`,
		Example: `  datacanvas profile data.db users
  datacanvas profile data.db users --format yaml
  datacanvas profile data.db users --correlations`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tableArg := ""
			if len(args) > 1 {
				tableArg = args[1]
			}
			return runProfile(cmd, args[0], tableArg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json, yaml")
	cmd.Flags().BoolVarP(&opts.Correlations, "correlations", "c", false, "Include pairwise correlations of numeric columns")

	return cmd
}

func runProfile(cmd *cobra.Command, dbPath, tableArg string, opts *ProfileOptions) error {
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

	var pairs []profile.CorrelationPair
	if opts.Correlations {
		pairs = profile.Correlations(f)
	}

	switch opts.Format {
	case "json":
		out := struct {
			*profile.TableProfile
			Correlations []profile.CorrelationPair `json:"correlations,omitempty"`
		}{tp, pairs}
		return cmdCtx.Renderer.JSON(out)
	case "yaml", "yml":
		out := struct {
			profile.TableProfile `yaml:",inline"`
			Correlations         []profile.CorrelationPair `yaml:"correlations,omitempty"`
		}{*tp, pairs}
		data, err := yaml.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = cmdCtx.Renderer.Out().Write(data)
		return nil
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "Table: %s (%d rows, %d columns, %d missing cells)\n",
		tp.Table, tp.Rows, tp.Columns, tp.MissingCells)

	header := []string{"column", "kind", "missing", "distinct", "min", "max", "mean", "stddev"}
	rows := make([][]string, 0, len(tp.Profiles))
	for _, p := range tp.Profiles {
		rows = append(rows, []string{
			p.Name,
			p.KindName,
			strconv.Itoa(p.Missing),
			strconv.Itoa(p.Distinct),
			formatStat(p.Min),
			formatStat(p.Max),
			formatStat(p.Mean),
			formatStat(p.StdDev),
		})
	}
	cmdCtx.Renderer.Table(header, rows)

	if opts.Correlations {
		_, _ = fmt.Fprintln(w)
		if len(pairs) == 0 {
			_, _ = fmt.Fprintln(w, "(no correlations)")
			return nil
		}
		corrRows := make([][]string, 0, len(pairs))
		for _, p := range pairs {
			corrRows = append(corrRows, []string{p.A, p.B, fmt.Sprintf("%.4f", p.R)})
		}
		cmdCtx.Renderer.Table([]string{"a", "b", "r"}, corrRows)
	}

	return nil
}

func formatStat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'g', 6, 64)
}
