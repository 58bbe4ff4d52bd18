// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/research-agent/pkg/types"
)

// FileStore keeps the cache as one indented JSON document.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the JSON file at path. The file and
// its directory are created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the JSON document. A missing file yields an empty store.
func (s *FileStore) Load(_ context.Context) (types.CacheStore, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.CacheStore{}, nil
		}
		return nil, fmt.Errorf("reading cache %s: %w", s.path, err)
	}

	store := types.CacheStore{}
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrCorrupt, s.path, err)
	}
	if store == nil {
		// The document was a literal null.
		store = types.CacheStore{}
	}
	return store, nil
}

// Save writes the whole store to a temporary file and renames it over the
// cache so readers only ever see a complete document.
func (s *FileStore) Save(_ context.Context, store types.CacheStore) error {
	if store == nil {
		store = types.CacheStore{}
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating cache directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replacing cache %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error { return nil }
