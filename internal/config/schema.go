package config

import (
	"time"
)

// Config is the root configuration structure. Environment variables override
// the file after defaults are applied.
type Config struct {
	Version    int              `yaml:"version"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Pagination PaginationConfig `yaml:"pagination"`
	Audit      AuditConfig      `yaml:"audit"`
	Admin      AdminConfig      `yaml:"admin"`
	Seed       SeedConfig       `yaml:"seed"`
	Watch      bool             `yaml:"watch" env:"VENUESTORE_WATCH"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr            string   `yaml:"addr" env:"VENUESTORE_ADDR"`
	ReadTimeout     Duration `yaml:"read_timeout" env:"VENUESTORE_READ_TIMEOUT"`
	WriteTimeout    Duration `yaml:"write_timeout" env:"VENUESTORE_WRITE_TIMEOUT"`
	IdleTimeout     Duration `yaml:"idle_timeout" env:"VENUESTORE_IDLE_TIMEOUT"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" env:"VENUESTORE_SHUTDOWN_TIMEOUT"`
}

// LogConfig selects the zap encoder and level
type LogConfig struct {
	Mode  string `yaml:"mode" env:"VENUESTORE_LOG_MODE"` // dev or prod
	Level string `yaml:"level" env:"VENUESTORE_LOG_LEVEL"`
}

// PaginationConfig bounds event and venue query pages
type PaginationConfig struct {
	DefaultSize int `yaml:"default_size" env:"VENUESTORE_PAGE_DEFAULT"`
	MaxSize     int `yaml:"max_size" env:"VENUESTORE_PAGE_MAX"`
}

// AuditConfig holds the audit trail database; an empty path disables it
type AuditConfig struct {
	Path string `yaml:"path" env:"VENUESTORE_AUDIT_DB"`
}

// AdminConfig guards mutating routes. TokenHash is a bcrypt hash of the
// bearer token; empty leaves the API open.
type AdminConfig struct {
	TokenHash string `yaml:"token_hash" env:"VENUESTORE_ADMIN_TOKEN_HASH"`
}

// SeedConfig points at a YAML fixture loaded on startup
type SeedConfig struct {
	Path    string `yaml:"path" env:"VENUESTORE_SEED"`
	Replace bool   `yaml:"replace" env:"VENUESTORE_SEED_REPLACE"`
}

// Duration wraps time.Duration for YAML and environment parsing
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// UnmarshalText implements encoding.TextUnmarshaler, used for env values
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
