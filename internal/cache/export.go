// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-agent/pkg/types"
)

// ExportEntry is one cached query with its research result, in export order.
type ExportEntry struct {
	Query  string       `json:"query" yaml:"query"`
	Result types.Result `json:"result" yaml:"result"`
}

// Entries flattens store into entries sorted by query.
func Entries(store types.CacheStore) []ExportEntry {
	queries := store.Queries()
	entries := make([]ExportEntry, len(queries))
	for i, q := range queries {
		entries[i] = ExportEntry{Query: q, Result: store[q]}
	}
	return entries
}

// Export writes store to w as "yaml" or "json".
func Export(w io.Writer, store types.CacheStore, format string) error {
	entries := Entries(store)

	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}
