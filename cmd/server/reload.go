package main

import (
	"context"
	"path/filepath"
	"strings"

	"venuestore/internal/config"
	"venuestore/internal/handler"
	"venuestore/internal/logger"
	"venuestore/internal/service"
)

// reloader applies config and seed file changes while the server runs.
// Only the settings in config.Reloadable take effect; the rest need a
// restart.
type reloader struct {
	log        *logger.Logger
	catalog    *service.CatalogService
	verifier   *handler.TokenVerifier
	configPath string
	seedPath   string
}

func (r *reloader) paths() []string {
	var paths []string
	for _, p := range []string{r.configPath, r.seedPath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func (r *reloader) apply(ctx context.Context, path string) {
	switch {
	case samePath(path, r.configPath):
		r.reloadConfig()
	case samePath(path, r.seedPath):
		// merge so ids already handed out stay valid
		if err := importSeed(ctx, r.log, r.catalog, r.seedPath, service.StrategyMerge); err != nil {
			r.log.Warn("seed reload failed", "path", path, "error", err)
		}
	}
}

func (r *reloader) reloadConfig() {
	cfg, _, err := config.LoadFromPath(r.configPath)
	if err != nil {
		r.log.Warn("config reload failed, keeping current settings", "path", r.configPath, "error", err)
		return
	}

	next := cfg.Reloadable()
	if err := r.log.SetLevel(next.LogLevel); err != nil {
		r.log.Warn("invalid log level", "level", next.LogLevel, "error", err)
	}
	r.verifier.SetHash(next.AdminTokenHash)
	r.catalog.SetPageSizes(next.PageDefault, next.PageMax)
	r.log.Info("config reloaded", "path", r.configPath, "log_level", next.LogLevel, "admin_auth", r.verifier.Enabled())
}

func samePath(a, b string) bool {
	if b == "" {
		return false
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false
	}
	return a == absB
}

// formatOf picks the fixture codec from the file extension
func formatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return "json"
	}
	return "yaml"
}
