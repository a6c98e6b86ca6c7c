package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %s, want %s", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Pagination.DefaultSize != DefaultPageSize || cfg.Pagination.MaxSize != DefaultMaxPageSize {
		t.Errorf("Pagination = %+v, want %d/%d", cfg.Pagination, DefaultPageSize, DefaultMaxPageSize)
	}
	if cfg.Server.WriteTimeout != 0 {
		t.Errorf("Server.WriteTimeout = %s, want none", cfg.Server.WriteTimeout.Duration())
	}
	if cfg.Audit.Path != "" {
		t.Error("Audit should be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
server:
  addr: ":8080"
  read_timeout: 5s
log:
  mode: prod
  level: debug
pagination:
  default_size: 10
  max_size: 50
audit:
  path: ./audit.db
seed:
  path: ./seed.yaml
watch: true
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %s, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout.Duration() != 5*time.Second {
		t.Errorf("ReadTimeout = %s, want 5s", cfg.Server.ReadTimeout.Duration())
	}
	if cfg.Server.ShutdownTimeout.Duration() != 10*time.Second {
		t.Errorf("ShutdownTimeout = %s, want default 10s", cfg.Server.ShutdownTimeout.Duration())
	}
	if cfg.Log.Level != "debug" || cfg.Log.Mode != "prod" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Pagination.DefaultSize != 10 || cfg.Pagination.MaxSize != 50 {
		t.Errorf("Pagination = %+v", cfg.Pagination)
	}
	if !cfg.Watch || cfg.Seed.Path != "./seed.yaml" || cfg.Audit.Path != "./audit.db" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "server: [unterminated"},
		{"bad duration", "server:\n  read_timeout: soon\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"bad mode", "log:\n  mode: verbose\n"},
		{"default above max", "pagination:\n  default_size: 200\n  max_size: 50\n"},
		{"plain token", "admin:\n  token_hash: letmein\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("VENUESTORE_ADDR", ":9999")
	t.Setenv("VENUESTORE_LOG_LEVEL", "warn")
	t.Setenv("VENUESTORE_PAGE_MAX", "75")
	t.Setenv("VENUESTORE_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Parse([]byte("server:\n  addr: \":8080\"\nlog:\n  level: debug\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %s, want :9999", cfg.Server.Addr)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %s, want warn", cfg.Log.Level)
	}
	if cfg.Pagination.MaxSize != 75 {
		t.Errorf("Pagination.MaxSize = %d, want 75", cfg.Pagination.MaxSize)
	}
	if cfg.Server.ShutdownTimeout.Duration() != 3*time.Second {
		t.Errorf("ShutdownTimeout = %s, want 3s", cfg.Server.ShutdownTimeout.Duration())
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Server.Addr = ":4000"
	cfg.Log.Level = "debug"
	cfg.Seed.Path = "fixtures/seed.yaml"

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}
	if loaded.Server.Addr != ":4000" || loaded.Log.Level != "debug" || loaded.Seed.Path != "fixtures/seed.yaml" {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.Server.ReadTimeout != cfg.Server.ReadTimeout {
		t.Errorf("ReadTimeout = %s, want %s", loaded.Server.ReadTimeout.Duration(), cfg.Server.ReadTimeout.Duration())
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := DefaultConfig().Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Chdir(tmpDir)

	if found := FindConfigPath(); found == "" {
		t.Error("FindConfigPath() should find config in working directory")
	}

	// Missing explicit path falls back to the working directory
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	if found := FindConfigPath(); found == "" {
		t.Error("FindConfigPath() should fall back when env path doesn't exist")
	}

	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	if err := os.WriteFile(explicit, []byte("version: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, explicit)
	if found := FindConfigPath(); found != explicit {
		t.Errorf("FindConfigPath() = %s, want %s", found, explicit)
	}
}

func TestReloadable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = "debug"
	cfg.Admin.TokenHash = "$2a$10$abcdefghijklmnopqrstuv"

	r := cfg.Reloadable()
	if r.LogLevel != "debug" || r.AdminTokenHash != cfg.Admin.TokenHash {
		t.Errorf("Reloadable() = %+v", r)
	}
	if r.PageDefault != DefaultPageSize || r.PageMax != DefaultMaxPageSize {
		t.Errorf("Reloadable() page sizes = %d/%d", r.PageDefault, r.PageMax)
	}
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}

	var parsed Duration
	if err := parsed.UnmarshalText([]byte("90s")); err != nil {
		t.Fatalf("UnmarshalText() error: %v", err)
	}
	if parsed.Duration() != 90*time.Second {
		t.Errorf("UnmarshalText() = %s, want 1m30s", parsed.Duration())
	}
}
