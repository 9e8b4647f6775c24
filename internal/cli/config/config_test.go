package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Serve.Port)
	assert.Equal(t, DefaultPreviewRows, cfg.PreviewRows)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, 20, cfg.Charts.Bins)
	assert.Equal(t, 20, cfg.Charts.TopK)
	assert.InDelta(t, 0.7, cfg.Insights.Correlation, 1e-9)
	assert.InDelta(t, 0.2, cfg.Insights.Missing, 1e-9)
	assert.InDelta(t, 0.9, cfg.Insights.Cardinality, 1e-9)
	assert.Equal(t, 20, cfg.Insights.MinRows)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigFromFile(t *testing.T) {
	ResetConfig()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "datacanvas.yaml")
	content := `
preview_rows: 10
serve:
  port: 9000
charts:
  bins: 30
insights:
  correlation: 0.8
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.PreviewRows)
	assert.Equal(t, 9000, cfg.Serve.Port)
	assert.Equal(t, 30, cfg.Charts.Bins)
	assert.InDelta(t, 0.8, cfg.Insights.Correlation, 1e-9)
	// Untouched keys keep their defaults.
	assert.Equal(t, 20, cfg.Charts.TopK)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	ResetConfig()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "datacanvas.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("preview_rows: 10\n"), 0o644))

	t.Setenv("DATACANVAS_PREVIEW_ROWS", "15")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.PreviewRows)
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	ResetConfig()

	t.Setenv("DATACANVAS_PREVIEW_ROWS", "15")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("preview-rows", DefaultPreviewRows, "")
	flags.Int("port", DefaultPort, "")
	require.NoError(t, flags.Parse([]string{"--preview-rows", "25", "--port", "9100"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.PreviewRows)
	assert.Equal(t, 9100, cfg.Serve.Port)
}

func TestLoadConfigUnchangedFlagsIgnored(t *testing.T) {
	ResetConfig()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("preview-rows", 99, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, DefaultPreviewRows, cfg.PreviewRows)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Serve.Port = 0 }},
		{"bad preview rows", func(c *Config) { c.PreviewRows = 0 }},
		{"bad bins", func(c *Config) { c.Charts.Bins = 0 }},
		{"bad correlation", func(c *Config) { c.Insights.Correlation = 1.5 }},
		{"negative min rows", func(c *Config) { c.Insights.MinRows = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ResetConfig()
			cfg, err := LoadConfig("", nil)
			require.NoError(t, err)

			tc.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}

func TestValidateDataDir(t *testing.T) {
	cfg := &Config{DataDir: ""}
	assert.NoError(t, cfg.ValidateDataDir())

	cfg.DataDir = filepath.Join(t.TempDir(), "nope")
	assert.Error(t, cfg.ValidateDataDir())

	cfg.DataDir = t.TempDir()
	assert.NoError(t, cfg.ValidateDataDir())
}
