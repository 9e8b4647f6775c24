package config

import (
	"fmt"
	"os"
)

// Validate checks if the configuration is valid.
func Validate(c *Config) error {
	if c.Serve.Port < 1 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port must be between 1 and 65535, got %d", c.Serve.Port)
	}
	if c.PreviewRows < 1 {
		return fmt.Errorf("preview_rows must be at least 1, got %d", c.PreviewRows)
	}
	if c.Charts.Bins < 1 {
		return fmt.Errorf("charts.bins must be at least 1, got %d", c.Charts.Bins)
	}
	if c.Charts.TopK < 1 {
		return fmt.Errorf("charts.top_k must be at least 1, got %d", c.Charts.TopK)
	}
	for name, v := range map[string]float64{
		"insights.correlation": c.Insights.Correlation,
		"insights.missing":     c.Insights.Missing,
		"insights.cardinality": c.Insights.Cardinality,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %g", name, v)
		}
	}
	if c.Insights.MinRows < 0 {
		return fmt.Errorf("insights.min_rows must not be negative, got %d", c.Insights.MinRows)
	}
	return nil
}

// ValidateDataDir checks that the configured data directory exists.
func (c *Config) ValidateDataDir() error {
	if c.DataDir == "" {
		return nil
	}
	if _, err := os.Stat(c.DataDir); os.IsNotExist(err) {
		return fmt.Errorf("data directory does not exist: %s\nHint: create the directory or use --data-dir to specify a different path", c.DataDir)
	}
	return nil
}
