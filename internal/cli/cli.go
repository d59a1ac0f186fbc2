// Package cli implements the classdraw command-line interface.
//
// This package provides commands for validating UML class diagram
// documents, rendering them to PNG/SVG/JSON, normalizing them to the
// canonical notation, browsing them interactively, serving the HTTP
// API, and managing the artifact cache. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context.
package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"classdraw/pkg/cache"
	"classdraw/pkg/pipeline"
	"classdraw/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "classdraw"

// newRunner creates a pipeline runner backed by the configured cache.
func newRunner(cfg Config, noCache bool, logger *log.Logger) (*pipeline.Runner, error) {
	c, err := newCache(cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(c, nil, logger), nil
}

// newCache selects the cache backend: disabled, redis when configured,
// otherwise a file cache under the cache directory.
func newCache(cfg Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.RedisAddr != "" {
		return cache.NewRedisCache(context.Background(), cfg.Cache.RedisAddr)
	}
	dir, err := cacheDir(cfg)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore selects the store backend for the serve command.
func newStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "mongo":
		return store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.MongoDatabase, cfg.Store.MongoCollection)
	case "sqlite":
		return store.NewSQLiteStore(ctx, cfg.Store.Path)
	default:
		return store.NewMemoryStore(), nil
	}
}

// cacheDir returns the cache directory, preferring the configured path,
// then XDG standard (~/.cache/classdraw/).
func cacheDir(cfg Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatPNG}
	}
	return strings.Split(s, ",")
}
