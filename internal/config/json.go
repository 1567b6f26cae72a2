package config

import (
	"encoding/json"
	"os"

	"github.com/apotekhub/storefront/internal/flagx"
	"github.com/apotekhub/storefront/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the file can write the timeout either as a string like
// "15s" or as integer nanoseconds.
type jsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	DatabasePath   *string         `json:"database_path"`
	LogLevel       *string         `json:"log_level"`
}

// parseJSON overlays cfg with values from the JSON file named by -c or
// -config. Absent file path means no JSON layer. Fields omitted from the
// file keep their current values. Read or parse errors panic; config is
// loaded before any state exists, failing loudly is the right move.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
