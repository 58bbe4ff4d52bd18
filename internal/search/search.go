// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search retrieves web results for a query. Each backend (Tavily,
// Semantic Scholar, arXiv) implements Provider; when no credential is
// configured the Unavailable provider stands in so the missing capability
// surfaces as an ordinary error at call time.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnavailable reports a provider that could not be initialized, for
// example because its API key is missing.
var ErrUnavailable = errors.New("search provider unavailable")

// Hit is one result returned by a provider. Any field may be empty.
type Hit struct {
	Title   string `json:"title" yaml:"title"`
	URL     string `json:"url" yaml:"url"`
	Content string `json:"content" yaml:"content"`
}

// Provider searches the web for query and returns at most maxResults hits.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]Hit, error)
}

// Unavailable is the provider used when no real backend could be built.
// Every call fails with ErrUnavailable and the recorded reason.
type Unavailable struct {
	Reason string
}

// Name returns the backend identifier.
func (u Unavailable) Name() string { return "unavailable" }

// Search always fails.
func (u Unavailable) Search(_ context.Context, _ string, _ int) ([]Hit, error) {
	if u.Reason == "" {
		return nil, ErrUnavailable
	}
	return nil, fmt.Errorf("%w: %s", ErrUnavailable, u.Reason)
}

// limit trims hits to maxResults when maxResults is positive.
func limit(hits []Hit, maxResults int) []Hit {
	if maxResults > 0 && len(hits) > maxResults {
		return hits[:maxResults]
	}
	return hits
}

// FormatTable writes hits as a human-readable table to w.
func FormatTable(hits []Hit, w io.Writer) {
	if len(hits) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %s\n", "Rank", "Title", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, h := range hits {
		fmt.Fprintf(w, "%-4d  %-50s  %s\n", i+1, truncate(h.Title, 50), h.URL)
	}

	fmt.Fprintf(w, "\n%d results\n", len(hits))
}

// FormatJSON writes hits as indented JSON to w.
func FormatJSON(hits []Hit, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(hits)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
