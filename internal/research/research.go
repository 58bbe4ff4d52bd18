// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research gathers web results for a query, summarizes them with the
// model, and caches the outcome under the literal query text.
package research

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/research-agent/internal/cache"
	"github.com/pdiddy/research-agent/internal/llm"
	"github.com/pdiddy/research-agent/internal/prompt"
	"github.com/pdiddy/research-agent/internal/search"
	"github.com/pdiddy/research-agent/internal/textnorm"
	"github.com/pdiddy/research-agent/pkg/types"
)

const (
	// MaxResults caps the hits requested from the search provider.
	MaxResults = 5

	// NoSummary replaces an empty model response.
	NoSummary = "No summary generated."
)

// Stage runs research for one query at a time. Load, update and save of
// the cache happen under mu so concurrent callers never drop an entry.
type Stage struct {
	cache  cache.Store
	search search.Provider
	model  llm.Generator
	log    *zap.Logger
	mu     sync.Mutex
}

// New returns a research stage. log may be nil.
func New(store cache.Store, provider search.Provider, model llm.Generator, log *zap.Logger) *Stage {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stage{
		cache:  store,
		search: provider,
		model:  model,
		log:    log.Named("research"),
	}
}

// Research returns the cached result for query or builds a fresh one.
// Provider and cache write failures come back as a single error item
// ("Research failed: ...") and are not cached. The returned error is non-nil
// only when the cache cannot be loaded.
func (s *Stage) Research(ctx context.Context, query string) (types.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.With(zap.String("query", query))

	store, err := s.cache.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading cache: %w", err)
	}
	if store == nil {
		store = types.CacheStore{}
	}
	if cached, ok := store[query]; ok {
		log.Info("cache hit", zap.Int("items", len(cached)))
		return cached, nil
	}

	result, err := s.fresh(ctx, query)
	if err != nil {
		log.Warn("research failed", zap.Error(err))
		return types.ErrorResult("Research failed: %v", err), nil
	}

	store[query] = result
	if err := s.cache.Save(ctx, store); err != nil {
		log.Warn("saving cache failed", zap.Error(err))
		return types.ErrorResult("Research failed: saving cache: %v", err), nil
	}

	log.Info("research complete", zap.Int("sources", len(result)-1))
	return result, nil
}

// fresh searches, normalizes and summarizes without touching the cache.
func (s *Stage) fresh(ctx context.Context, query string) (types.Result, error) {
	hits, err := s.search.Search(ctx, query, MaxResults)
	if err != nil {
		return nil, err
	}
	if len(hits) > MaxResults {
		hits = hits[:MaxResults]
	}
	s.log.Debug("search returned", zap.String("provider", s.search.Name()), zap.Int("hits", len(hits)))

	result := make(types.Result, 0, len(hits)+1)
	for _, h := range hits {
		result = append(result, types.SourceItem(h.Title, h.URL, textnorm.Normalize(h.Content)))
	}

	p, err := prompt.Summary(query, result)
	if err != nil {
		return nil, err
	}
	summary, err := s.model.Generate(ctx, p)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(summary) == "" {
		summary = NoSummary
	}

	return append(result, types.SummaryItem(textnorm.Normalize(summary))), nil
}
