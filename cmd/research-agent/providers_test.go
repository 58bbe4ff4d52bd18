// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/research-agent/internal/llm"
	"github.com/pdiddy/research-agent/internal/search"
	"github.com/pdiddy/research-agent/pkg/types"
)

func TestNewSearchProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      types.SearchConfig
		wantName string
	}{
		{"tavily with key", types.SearchConfig{Provider: "tavily", APIKey: "k"}, "tavily"},
		{"tavily without key", types.SearchConfig{Provider: "tavily"}, "unavailable"},
		{"semantic scholar", types.SearchConfig{Provider: "semantic_scholar"}, "semantic_scholar"},
		{"arxiv", types.SearchConfig{Provider: "arxiv"}, "arxiv"},
		{"none", types.SearchConfig{Provider: "none"}, "unavailable"},
		{"unknown", types.SearchConfig{Provider: "bing"}, "unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newSearchProvider(types.AgentConfig{Search: tt.cfg}, zap.NewNop())
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestNewSearchProviderMissingKeyIsUnavailable(t *testing.T) {
	p := newSearchProvider(types.AgentConfig{Search: types.SearchConfig{Provider: "tavily"}}, zap.NewNop())
	_, err := p.Search(context.Background(), "q", 5)
	assert.True(t, errors.Is(err, search.ErrUnavailable))
	assert.Contains(t, err.Error(), "TAVILY_API_KEY")
}

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		name     string
		cfg      types.ModelConfig
		wantName string
	}{
		{"gemini with key", types.ModelConfig{Provider: "gemini", APIKey: "k"}, "gemini"},
		{"gemini without key", types.ModelConfig{Provider: "gemini"}, "unavailable"},
		{"openai with key", types.ModelConfig{Provider: "openai", APIKey: "k"}, "openai"},
		{"openai local server", types.ModelConfig{Provider: "openai", BaseURL: "http://localhost:11434/v1"}, "openai"},
		{"openai without key", types.ModelConfig{Provider: "openai"}, "unavailable"},
		{"none", types.ModelConfig{Provider: "none"}, "unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGenerator(types.AgentConfig{Model: tt.cfg, Breaker: types.BreakerConfig{MaxFailures: 2}}, zap.NewNop())
			assert.Equal(t, tt.wantName, g.Name())
		})
	}
}

func TestNewGeneratorMissingKeyIsUnavailable(t *testing.T) {
	g := newGenerator(types.AgentConfig{Model: types.ModelConfig{Provider: "gemini"}}, zap.NewNop())
	_, err := g.Generate(context.Background(), "p")
	assert.True(t, errors.Is(err, llm.ErrUnavailable))
}

func TestNewPipelineWithoutCredentials(t *testing.T) {
	cfg := types.AgentConfig{
		Search: types.SearchConfig{Provider: "tavily"},
		Model:  types.ModelConfig{Provider: "gemini"},
		Cache:  types.CacheConfig{Path: filepath.Join(t.TempDir(), "cache.json")},
	}
	p, store, err := newPipeline(cfg, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	state, err := p.Run(context.Background(), "What is the status of quantum computing in 2025?")
	require.NoError(t, err)

	msg, failed := state.ResearchData.Failure()
	require.True(t, failed)
	assert.Contains(t, msg, "Research failed: search provider unavailable")
	assert.Contains(t, state.DraftedAnswer, "Drafting failed: model provider unavailable")
}

func TestNewPipelineBadCacheBackend(t *testing.T) {
	_, _, err := newPipeline(types.AgentConfig{Cache: types.CacheConfig{Backend: "redis"}}, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported cache backend")
}
