// Package config resolves harness settings from the environment and an
// optional .env file in the working directory.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config holds every tunable of a test run. Command line flags may override
// individual fields after loading.
type Config struct {
	ScraperPort int           `env:"STACKOVERFLOW_API_PORT" env-default:"5000"`
	APIBaseURL  string        `env:"STACKEXCHANGE_API_URL" env-default:"https://api.stackexchange.com/2.3"`
	Site        string        `env:"STACKEXCHANGE_SITE" env-default:"stackoverflow"`
	CacheDir    string        `env:"API_CACHE_DIR" env-default:"tests/api_cache"`
	CacheTTL    time.Duration `env:"API_CACHE_TTL" env-default:"10m"`
	ResultsDir  string        `env:"RESULTS_DIR" env-default:"results"`
	LogDir      string        `env:"LOG_DIR" env-default:"tests/logs"`
}

// Load reads the .env file if one exists, then the environment. Values already
// set in the environment take precedence over the .env file.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, errors.Wrap(err, "loading .env")
		}
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, errors.Wrap(err, "reading environment")
	}
	if cfg.ScraperPort <= 0 || cfg.ScraperPort > 65535 {
		return nil, errors.Errorf("invalid scraper port %d", cfg.ScraperPort)
	}

	return cfg, nil
}

// ExportPort publishes the resolved port as STACKOVERFLOW_API_PORT so that a
// scraper launched as a child process binds where the harness expects.
func (c *Config) ExportPort() error {
	return os.Setenv("STACKOVERFLOW_API_PORT", strconv.Itoa(c.ScraperPort))
}
