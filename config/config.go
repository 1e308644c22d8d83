// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full startup configuration. MONGODB_URI is the only
// required value: it supplies the default connection string for
// requests that don't name one, and the process must not start
// without it.
type Config struct {
	MongoURI     string   `env:"MONGODB_URI,required,notEmpty"`
	Addr         string   `env:"ADDR" envDefault:":8080"`
	PoolCapacity int      `env:"POOL_CAPACITY" envDefault:"50"`
	CORSOrigins  []string `env:"CORS_ORIGINS" envSeparator:","`
	LogLevel     string   `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.PoolCapacity <= 0 {
		return Config{}, fmt.Errorf("config: POOL_CAPACITY must be > 0, got %d", cfg.PoolCapacity)
	}
	return cfg, nil
}
