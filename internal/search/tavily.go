// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/research-agent/internal/httputil"
)

// tavilyAPIBase is the Tavily search endpoint. Declared as a var so tests
// can substitute an httptest server.
var tavilyAPIBase = "https://api.tavily.com/search"

// Tavily queries the Tavily web search API.
type Tavily struct {
	Client *http.Client
	APIKey string
	// Depth is Tavily's search_depth: basic (default) or advanced.
	Depth string
	// BaseURL overrides tavilyAPIBase when set.
	BaseURL string
	// UserAgent is sent with every request when set.
	UserAgent string
}

// Name returns the backend identifier.
func (t *Tavily) Name() string { return "tavily" }

// Search posts query to Tavily and returns up to maxResults hits in the
// order Tavily ranked them.
func (t *Tavily) Search(ctx context.Context, query string, maxResults int) ([]Hit, error) {
	if strings.TrimSpace(t.APIKey) == "" {
		return nil, fmt.Errorf("%w: tavily API key is missing", ErrUnavailable)
	}

	depth := t.Depth
	if depth == "" {
		depth = "basic"
	}
	body := tavilyRequest{
		Query:       query,
		MaxResults:  maxResults,
		SearchDepth: depth,
	}

	headers := map[string]string{"Authorization": "Bearer " + t.APIKey}
	if t.UserAgent != "" {
		headers["User-Agent"] = t.UserAgent
	}

	endpoint := tavilyAPIBase
	if t.BaseURL != "" {
		endpoint = t.BaseURL
	}

	var resp tavilyResponse
	if err := httputil.PostJSON(ctx, t.Client, endpoint, headers, body, &resp); err != nil {
		return nil, fmt.Errorf("tavily search: %w", err)
	}

	hits := make([]Hit, 0, len(resp.Results))
	for _, r := range resp.Results {
		hits = append(hits, Hit{Title: r.Title, URL: r.URL, Content: r.Content})
	}
	return limit(hits, maxResults), nil
}

// Tavily API JSON structures.
type tavilyRequest struct {
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results,omitempty"`
	SearchDepth string `json:"search_depth"`
}

type tavilyResponse struct {
	Query   string         `json:"query"`
	Results []tavilyResult `json:"results"`
}

type tavilyResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}
