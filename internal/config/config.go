// Package config assembles runtime settings for the storefront CLI from
// four layers, later ones overriding earlier ones: built-in defaults, an
// optional JSON file (-c/-config), environment variables, and command-line
// flags.
package config

import "time"

// Config holds runtime settings for the storefront CLI.
type Config struct {
	// APIBaseURL is the root of the backend REST API, including the /api
	// prefix.
	APIBaseURL string

	// RequestTimeout bounds each individual backend request.
	RequestTimeout time.Duration

	// DatabasePath is the local sqlite file holding the persisted session.
	DatabasePath string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "storefront.db"
	c.LogLevel = "info"
}

// Load constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment, and command-line flags.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
