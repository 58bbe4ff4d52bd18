// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-agent/pkg/types"
)

// SQLiteStore keeps the cache in an embedded SQLite database, one row per
// query. Save still replaces the full mapping, inside one transaction.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens or creates the database at path and ensures the
// schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS research_cache (
		query TEXT PRIMARY KEY,
		items TEXT NOT NULL
	)`)
	return err
}

// Path returns the database location.
func (s *SQLiteStore) Path() string { return s.path }

// Load reads every row. A row whose items column is not valid JSON makes the
// whole cache corrupt.
func (s *SQLiteStore) Load(ctx context.Context) (types.CacheStore, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT query, items FROM research_cache`)
	if err != nil {
		return nil, fmt.Errorf("querying cache: %w", err)
	}
	defer rows.Close()

	store := types.CacheStore{}
	for rows.Next() {
		var query, items string
		if err := rows.Scan(&query, &items); err != nil {
			return nil, fmt.Errorf("scanning cache row: %w", err)
		}
		var result types.Result
		if err := json.Unmarshal([]byte(items), &result); err != nil {
			return nil, fmt.Errorf("%w: parsing entry %q: %v", ErrCorrupt, query, err)
		}
		store[query] = result
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading cache rows: %w", err)
	}
	return store, nil
}

// Save replaces every row with the contents of store.
func (s *SQLiteStore) Save(ctx context.Context, store types.CacheStore) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM research_cache`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO research_cache (query, items) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, query := range store.Queries() {
		items, err := json.Marshal(store[query])
		if err != nil {
			return fmt.Errorf("marshaling entry %q: %w", query, err)
		}
		if _, err := stmt.ExecContext(ctx, query, string(items)); err != nil {
			return fmt.Errorf("inserting entry %q: %w", query, err)
		}
	}

	return tx.Commit()
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
