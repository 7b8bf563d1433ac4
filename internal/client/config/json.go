package config

import (
	"encoding/json"
	"os"

	"hacksnooze/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s"
// or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	MaxAttempts    int            `json:"max_attempts"`
	InitialBackoff timex.Duration `json:"initial_backoff"`
	MaxBackoff     timex.Duration `json:"max_backoff"`
	SessionDBPath  string         `json:"session_db_path"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays cfg with values from the JSON file at path. An empty
// path means no JSON layer. Only fields present in the file override the
// current values. Panics on read or unmarshal errors, matching the other
// config stages: a named-but-broken config file is a startup defect.
func parseJson(cfg *Config, path string) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.MaxAttempts != 0 {
		cfg.MaxAttempts = jc.MaxAttempts
	}
	if jc.InitialBackoff.Duration != 0 {
		cfg.InitialBackoff = jc.InitialBackoff.Duration
	}
	if jc.MaxBackoff.Duration != 0 {
		cfg.MaxBackoff = jc.MaxBackoff.Duration
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
