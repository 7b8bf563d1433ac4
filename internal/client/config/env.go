package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envConfig is a DTO for the environment layer. A .env file in the working
// directory is honored; real environment variables win over it.
type envConfig struct {
	APIBaseURL     string `env:"HACKSNOOZE_API_URL"`
	RequestTimeout int    `env:"HACKSNOOZE_TIMEOUT_SECONDS"`
	MaxAttempts    int    `env:"HACKSNOOZE_MAX_ATTEMPTS"`
	SessionDBPath  string `env:"HACKSNOOZE_SESSION_DB"`
	LogLevel       string `env:"HACKSNOOZE_LOG_LEVEL"`
}

func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = secondsToDuration(ec.RequestTimeout)
	}
	if ec.MaxAttempts != 0 {
		cfg.MaxAttempts = ec.MaxAttempts
	}
	if ec.SessionDBPath != "" {
		cfg.SessionDBPath = ec.SessionDBPath
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
}
