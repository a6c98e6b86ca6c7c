// Package config provides configuration management for venuestore.
//
// Values come from, in increasing priority:
//  1. built-in defaults
//  2. the YAML config file
//  3. VENUESTORE_* environment variables
//  4. command-line flags (applied by cmd/server)
//
// Config file locations (priority order):
//  1. $VENUESTORE_CONFIG
//  2. ./venuestore.yaml
//  3. ~/.config/venuestore/config.yaml
//  4. /etc/venuestore/config.yaml
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"venuestore/internal/logger"
)

const (
	DefaultAddr        = ":3000"
	DefaultPageSize    = 20
	DefaultMaxPageSize = 100
)

// Load finds and loads the config file, or returns defaults if none found.
// Environment overrides are applied either way.
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		cfg := DefaultConfig()
		if err := cfg.applyEnv(); err != nil {
			return nil, "", err
		}
		return cfg, "", cfg.Validate()
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Parse decodes YAML config data, applies defaults and environment overrides,
// and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = Duration(10 * time.Second)
	}
	// SSE streams stay open, so the write timeout defaults to none.
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = Duration(60 * time.Second)
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = Duration(10 * time.Second)
	}
	if c.Log.Mode == "" {
		c.Log.Mode = "dev"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Pagination.DefaultSize <= 0 {
		c.Pagination.DefaultSize = DefaultPageSize
	}
	if c.Pagination.MaxSize <= 0 {
		c.Pagination.MaxSize = DefaultMaxPageSize
	}
}

func (c *Config) applyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports settings that cannot work together
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Mode) {
	case "dev", "development", "prod", "production":
	default:
		return fmt.Errorf("log.mode %q: want dev or prod", c.Log.Mode)
	}
	if c.Pagination.DefaultSize > c.Pagination.MaxSize {
		return fmt.Errorf("pagination.default_size %d exceeds max_size %d",
			c.Pagination.DefaultSize, c.Pagination.MaxSize)
	}
	if h := c.Admin.TokenHash; h != "" && !strings.HasPrefix(h, "$2") {
		return fmt.Errorf("admin.token_hash: not a bcrypt hash")
	}
	return nil
}

// Reloadable is the subset of settings applied while the server runs
type Reloadable struct {
	LogLevel       string
	AdminTokenHash string
	PageDefault    int
	PageMax        int
}

// Reloadable returns the hot-reloadable settings
func (c *Config) Reloadable() Reloadable {
	return Reloadable{
		LogLevel:       c.Log.Level,
		AdminTokenHash: c.Admin.TokenHash,
		PageDefault:    c.Pagination.DefaultSize,
		PageMax:        c.Pagination.MaxSize,
	}
}
