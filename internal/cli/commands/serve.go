package commands

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/sumanthd032/DataCanvas/internal/chart"
	"github.com/sumanthd032/DataCanvas/internal/insight"
	"github.com/sumanthd032/DataCanvas/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	OpenAfter bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the DataCanvas web interface",
		Long: `Start a local web server providing the interactive explorer.

The web interface provides:
- Database upload and schema browsing
- Table previews and an ad hoc query runner
- Per-column profiles and automatic insights
- Histogram, bar, heatmap and box plot charts

With --data-dir, databases in that directory can be opened directly
and the list refreshes live as files appear or disappear.`,
		Example: `  # Start on the default port
  datacanvas serve

  # Start on a custom port and open the browser
  datacanvas serve --port 3000 --open

  # Offer local databases from a directory
  datacanvas serve --data-dir ./databases`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, fmt.Sprintf("Port to serve on (default: %d)", 8765))
	cmd.Flags().BoolVar(&opts.OpenAfter, "open", false, "Open the browser after starting")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	if err := cfg.ValidateDataDir(); err != nil {
		return err
	}

	port := cfg.Serve.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	server := ui.NewServer(ui.Config{
		Port:          port,
		SessionSecret: cfg.Serve.SessionSecret,
		TempDir:       cfg.TempDir,
		DataDir:       cfg.DataDir,
		PreviewRows:   cfg.PreviewRows,
		ChartOptions: chart.Options{
			Bins: cfg.Charts.Bins,
			TopK: cfg.Charts.TopK,
		},
		Thresholds: insight.Thresholds{
			Correlation: cfg.Insights.Correlation,
			Missing:     cfg.Insights.Missing,
			Cardinality: cfg.Insights.Cardinality,
			MinRows:     cfg.Insights.MinRows,
		},
		Logger: cmdCtx.Logger,
	})

	if opts.OpenAfter {
		go openBrowser(fmt.Sprintf("http://localhost:%d", port))
	}

	fmt.Printf("Starting DataCanvas on http://localhost:%d\n", port)
	fmt.Println("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
