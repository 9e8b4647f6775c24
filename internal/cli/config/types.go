// Package config provides configuration management for the DataCanvas CLI.
package config

// Default configuration values.
const (
	DefaultPort        = 8765
	DefaultPreviewRows = 5
	DefaultOutput      = "auto"
)

// ChartsConfig holds chart rendering parameters.
type ChartsConfig struct {
	Bins int `koanf:"bins"`
	TopK int `koanf:"top_k"`
}

// InsightsConfig holds insight generation thresholds.
type InsightsConfig struct {
	Correlation float64 `koanf:"correlation"`
	Missing     float64 `koanf:"missing"`
	Cardinality float64 `koanf:"cardinality"`
	MinRows     int     `koanf:"min_rows"`
}

// ServeConfig holds configuration for the web server.
type ServeConfig struct {
	Port          int    `koanf:"port"`
	SessionSecret string `koanf:"session_secret"`
}

// Config holds all CLI configuration options.
type Config struct {
	TempDir      string         `koanf:"temp_dir"`
	DataDir      string         `koanf:"data_dir"`
	PreviewRows  int            `koanf:"preview_rows"`
	Verbose      bool           `koanf:"verbose"`
	OutputFormat string         `koanf:"output"`
	Serve        ServeConfig    `koanf:"serve"`
	Charts       ChartsConfig   `koanf:"charts"`
	Insights     InsightsConfig `koanf:"insights"`
}
