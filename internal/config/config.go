package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config carries all environment-driven settings.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	// RedisURL is optional: empty means single-instance mode with the
	// in-process broadcast broker.
	RedisURL              string `env:"REDIS_URL"`
	LogLevel              string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat             string `env:"LOG_FORMAT" envDefault:"text"`
	BiblesDir             string `env:"BIBLES_DIR" envDefault:"lib/open-bibles"`
	MaxClientsPerSchedule int    `env:"MAX_CLIENTS_PER_SCHEDULE" envDefault:"50"`
}

// Load reads and validates configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.MaxClientsPerSchedule < 1 {
		return nil, fmt.Errorf("MAX_CLIENTS_PER_SCHEDULE must be at least 1, got %d", cfg.MaxClientsPerSchedule)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	return cfg, nil
}
