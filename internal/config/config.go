// Package config loads the startup configuration.
//
// All process configuration is collected into one explicit struct,
// constructed once at entry and passed to the server — nothing else in the
// codebase reads environment variables. In development a .env file is
// loaded first if present.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds every recognized option. Middleware toggles default to on;
// set the corresponding variable to false to disable one.
type Config struct {
	Port   int    `env:"PORT"`
	DBPath string `env:"DB_PATH" envDefault:"data/userstore.db"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Enabled middleware.
	RequestID bool `env:"MW_REQUEST_ID" envDefault:"true"`
	RealIP    bool `env:"MW_REAL_IP" envDefault:"true"`
	Logging   bool `env:"MW_LOGGING" envDefault:"true"`
	Recovery  bool `env:"MW_RECOVERY" envDefault:"true"`
}

// Load reads .env (when present) and the environment into a Config.
// A missing PORT is not an error — the caller logs it and falls back to
// the default.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("config: loading .env: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}

	return cfg, nil
}
