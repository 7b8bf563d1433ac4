// Package config assembles runtime settings for the story client from
// defaults, an optional JSON file, environment variables, and flags —
// later sources take precedence over earlier ones.
package config

import (
	"time"

	"hacksnooze/internal/flagx"
)

// Config holds runtime settings for the story client.
//
// Fields:
//   - APIBaseURL: base URL of the remote story service.
//   - RequestTimeout: per-request HTTP timeout; a timeout surfaces as a
//     network error to the caller.
//   - MaxAttempts/InitialBackoff/MaxBackoff: retry policy for the feed
//     fetch (the only retried call).
//   - SessionDBPath: path of the SQLite file storing the saved session.
//   - LogLevel: debug|info|warn|error.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	SessionDBPath  string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://hack-or-snooze-v3.herokuapp.com"
	c.RequestTimeout = 10 * time.Second
	c.MaxAttempts = 3
	c.InitialBackoff = 1 * time.Second
	c.MaxBackoff = 10 * time.Second
	c.SessionDBPath = "session.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was named), the environment, and
// command-line flags, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, flagx.JsonConfigFlags())
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
