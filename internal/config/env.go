package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig maps environment variables onto config fields. Unset variables
// leave the current values alone.
type envConfig struct {
	APIBaseURL     *string        `env:"STOREFRONT_API_URL"`
	RequestTimeout *time.Duration `env:"STOREFRONT_REQUEST_TIMEOUT"`
	DatabasePath   *string        `env:"STOREFRONT_DB_PATH"`
	LogLevel       *string        `env:"STOREFRONT_LOG_LEVEL"`
}

func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != nil {
		cfg.APIBaseURL = *ec.APIBaseURL
	}
	if ec.RequestTimeout != nil {
		cfg.RequestTimeout = *ec.RequestTimeout
	}
	if ec.DatabasePath != nil {
		cfg.DatabasePath = *ec.DatabasePath
	}
	if ec.LogLevel != nil {
		cfg.LogLevel = *ec.LogLevel
	}
}
