// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/research-agent/internal/breaker"
	"github.com/pdiddy/research-agent/internal/llm"
	"github.com/pdiddy/research-agent/internal/secrets"
	"github.com/pdiddy/research-agent/pkg/types"
)

// Provider names accepted by search.provider and model.provider.
const (
	providerTavily          = "tavily"
	providerSemanticScholar = "semantic_scholar"
	providerArxiv           = "arxiv"
	providerGemini          = "gemini"
	providerOpenAI          = "openai"
	providerNone            = "none"
)

// bindEnv wires the RESEARCH_AGENT_* environment and the provider
// credential variables into v, and registers defaults.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("RESEARCH_AGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("credentials.tavily", "TAVILY_API_KEY")
	_ = v.BindEnv("credentials.google", "GOOGLE_API_KEY")
	_ = v.BindEnv("credentials.openai", "OPENAI_API_KEY")

	v.SetDefault("search.provider", providerTavily)
	v.SetDefault("search.depth", "basic")
	v.SetDefault("search.timeout", 30*time.Second)
	v.SetDefault("model.provider", providerGemini)
	v.SetDefault("model.timeout", 60*time.Second)
	v.SetDefault("cache.backend", string(types.CacheJSON))
	v.SetDefault("breaker.max_failures", 3)
	v.SetDefault("breaker.timeout", breaker.DefaultTimeout)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// configFromViper resolves the full agent configuration. API keys fall back
// from the explicit setting to the provider's environment variable and then
// to the matching file in .secrets/.
func configFromViper(v *viper.Viper, secretFiles map[string]string) types.AgentConfig {
	userAgent := "research-agent/" + version

	cfg := types.AgentConfig{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("search.timeout"),
				UserAgent: userAgent,
			},
			Provider: strings.ToLower(v.GetString("search.provider")),
			APIKey:   v.GetString("search.api_key"),
			BaseURL:  v.GetString("search.base_url"),
			Depth:    v.GetString("search.depth"),
		},
		Model: types.ModelConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("model.timeout"),
				UserAgent: userAgent,
			},
			Provider: strings.ToLower(v.GetString("model.provider")),
			Name:     v.GetString("model.name"),
			APIKey:   v.GetString("model.api_key"),
			BaseURL:  v.GetString("model.base_url"),
		},
		Cache: types.CacheConfig{
			Backend: types.CacheBackend(strings.ToLower(v.GetString("cache.backend"))),
			Path:    v.GetString("cache.path"),
		},
		Breaker: types.BreakerConfig{
			MaxFailures: v.GetUint32("breaker.max_failures"),
			Timeout:     v.GetDuration("breaker.timeout"),
		},
		Log: types.LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	switch cfg.Search.Provider {
	case providerTavily:
		cfg.Search.APIKey = firstNonEmpty(cfg.Search.APIKey, v.GetString("credentials.tavily"), secretFiles[secrets.TavilyAPIKey])
	case providerSemanticScholar:
		cfg.Search.APIKey = firstNonEmpty(cfg.Search.APIKey, secretFiles[secrets.SemanticScholarAPIKey])
	}

	switch cfg.Model.Provider {
	case providerGemini:
		cfg.Model.APIKey = firstNonEmpty(cfg.Model.APIKey, v.GetString("credentials.google"), secretFiles[secrets.GoogleAPIKey])
		if cfg.Model.Name == "" {
			cfg.Model.Name = llm.DefaultGeminiModel
		}
	case providerOpenAI:
		cfg.Model.APIKey = firstNonEmpty(cfg.Model.APIKey, v.GetString("credentials.openai"), secretFiles[secrets.OpenAIAPIKey])
		if cfg.Model.Name == "" {
			cfg.Model.Name = llm.DefaultOpenAIModel
		}
	}

	return cfg
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
