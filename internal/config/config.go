package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings. Values come from an optional YAML
// file (with ${VAR} expansion) and environment variables; environment
// wins so deployments can override a checked-in file.
type Config struct {
	Env             string        `yaml:"env"`
	Addr            string        `yaml:"addr"`
	DatabaseURL     string        `yaml:"database_url"`
	EnableMetrics   bool          `yaml:"enable_metrics"`
	ShutdownTimeout time.Duration `yaml:"-"` // env-only: SHUTDOWN_TIMEOUT
}

// Load reads configuration. configPath may be empty, in which case only
// the environment is consulted.
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		Env:             "development",
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// Expand ${VAR} references before parsing, so secrets stay out
		// of the file itself.
		expanded := []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(expanded, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Env = getEnv("APP_ENV", cfg.Env)
	cfg.Addr = getEnv("HTTP_ADDR", cfg.Addr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)

	if v := os.Getenv("ENABLE_METRICS"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parse ENABLE_METRICS: %w", err)
		}
		cfg.EnableMetrics = enabled
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("database url is required")
	}
	if c.Addr == "" {
		return errors.New("listen address is required")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
