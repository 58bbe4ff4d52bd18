// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/research-agent/internal/cache"
	"github.com/pdiddy/research-agent/internal/draft"
	"github.com/pdiddy/research-agent/internal/llm"
	"github.com/pdiddy/research-agent/internal/pipeline"
	"github.com/pdiddy/research-agent/internal/research"
	"github.com/pdiddy/research-agent/internal/search"
	"github.com/pdiddy/research-agent/pkg/types"
)

// newSearchProvider builds the configured search backend behind a circuit
// breaker. A missing credential yields search.Unavailable instead of an
// error so the pipeline can still run and report it.
func newSearchProvider(cfg types.AgentConfig, log *zap.Logger) search.Provider {
	sc := cfg.Search
	client := &http.Client{Timeout: sc.Timeout}

	var p search.Provider
	switch sc.Provider {
	case providerTavily, "":
		if sc.APIKey == "" {
			p = search.Unavailable{Reason: "TAVILY_API_KEY is not set"}
			break
		}
		p = &search.Tavily{
			Client:    client,
			APIKey:    sc.APIKey,
			Depth:     sc.Depth,
			BaseURL:   sc.BaseURL,
			UserAgent: sc.UserAgent,
		}
	case providerSemanticScholar:
		p = &search.SemanticScholar{Client: client, APIKey: sc.APIKey, UserAgent: sc.UserAgent}
	case providerArxiv:
		p = &search.Arxiv{Client: client, UserAgent: sc.UserAgent}
	case providerNone:
		p = search.Unavailable{Reason: "search disabled by configuration"}
	default:
		p = search.Unavailable{Reason: fmt.Sprintf("unknown search provider %q", sc.Provider)}
	}

	log.Debug("search provider", zap.String("name", p.Name()))
	return search.Guard(p, cfg.Breaker, log)
}

// newGenerator builds the configured model backend behind a circuit breaker.
func newGenerator(cfg types.AgentConfig, log *zap.Logger) llm.Generator {
	mc := cfg.Model
	client := &http.Client{Timeout: mc.Timeout}

	var g llm.Generator
	switch mc.Provider {
	case providerGemini, "":
		if mc.APIKey == "" {
			g = llm.Unavailable{Reason: "GOOGLE_API_KEY is not set"}
			break
		}
		g = &llm.Gemini{APIKey: mc.APIKey, Model: mc.Name, BaseURL: mc.BaseURL, Client: client}
	case providerOpenAI:
		if mc.APIKey == "" && mc.BaseURL == "" {
			g = llm.Unavailable{Reason: "OPENAI_API_KEY is not set"}
			break
		}
		g = llm.NewOpenAI(mc.APIKey, mc.Name, mc.BaseURL, client)
	case providerNone:
		g = llm.Unavailable{Reason: "model disabled by configuration"}
	default:
		g = llm.Unavailable{Reason: fmt.Sprintf("unknown model provider %q", mc.Provider)}
	}

	log.Debug("model provider", zap.String("name", g.Name()), zap.String("model", mc.Name))
	return llm.Guard(g, cfg.Breaker, log)
}

// newPipeline opens the cache and assembles both stages. The caller closes
// the returned store.
func newPipeline(cfg types.AgentConfig, log *zap.Logger) (*pipeline.Pipeline, cache.Store, error) {
	store, err := cache.Open(cfg.Cache)
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache: %w", err)
	}

	model := newGenerator(cfg, log)
	p := pipeline.New(
		research.New(store, newSearchProvider(cfg, log), model, log),
		draft.New(model, log),
		log,
	)
	return p, store, nil
}
