// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists research results keyed by the literal query text.
// Every backend loads and saves the whole mapping; entries never expire.
package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/research-agent/pkg/types"
)

// DefaultPath is where the JSON backend keeps the cache.
const DefaultPath = "data/cache.json"

// DefaultSQLitePath is where the SQLite backend keeps the cache.
const DefaultSQLitePath = "data/cache.db"

// ErrCorrupt reports persisted cache data that exists but cannot be parsed.
// It is the one failure that aborts a run.
var ErrCorrupt = errors.New("cache corrupt")

// Store loads and saves the full query to result mapping.
type Store interface {
	// Load returns the persisted mapping, or an empty one when nothing has
	// been persisted yet.
	Load(ctx context.Context) (types.CacheStore, error)

	// Save replaces the persisted mapping with store.
	Save(ctx context.Context, store types.CacheStore) error

	// Close releases any resources held by the backend.
	Close() error
}

// Open returns the backend selected by cfg. An empty backend means json and
// an empty path means the backend's default location.
func Open(cfg types.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case types.CacheJSON, "":
		path := cfg.Path
		if path == "" {
			path = DefaultPath
		}
		return NewFileStore(path), nil
	case types.CacheSQLite:
		path := cfg.Path
		if path == "" {
			path = DefaultSQLitePath
		}
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unsupported cache backend %q: use json or sqlite", cfg.Backend)
	}
}
