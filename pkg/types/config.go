package types

import "time"

// HTTPConfig holds shared HTTP settings used by providers that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-agent/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the web search provider.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the search backend: "tavily" or "none".
	Provider string `json:"provider" yaml:"provider"`

	// APIKey is the search provider credential (TAVILY_API_KEY).
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Depth is Tavily's search_depth parameter: basic or advanced.
	Depth string `json:"depth" yaml:"depth"`
}

// ModelConfig holds settings for the language model used to summarize and draft.
type ModelConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the model backend: "gemini", "openai", or "none".
	Provider string `json:"provider" yaml:"provider"`

	// Name is the model identifier (e.g. "gemini-1.5-pro").
	Name string `json:"name" yaml:"name"`

	// APIKey is the model provider credential (GOOGLE_API_KEY for Gemini).
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint. For the openai provider this
	// may point at any OpenAI-compatible server.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// CacheBackend identifies the persistence used for research results.
type CacheBackend string

const (
	CacheJSON   CacheBackend = "json"
	CacheSQLite CacheBackend = "sqlite"
)

// CacheConfig holds settings for the research result cache.
type CacheConfig struct {
	// Backend selects json (default, data/cache.json) or sqlite.
	Backend CacheBackend `json:"backend" yaml:"backend"`

	// Path is the cache file location.
	Path string `json:"path" yaml:"path"`
}

// BreakerConfig controls the circuit breaker placed in front of each
// provider. MaxFailures of zero disables the breaker.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures uint32 `json:"max_failures" yaml:"max_failures"`

	// Timeout is how long the circuit stays open before a probe call is allowed.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format"`
}

// AgentConfig groups every setting the CLI resolves at startup.
type AgentConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Model   ModelConfig   `json:"model" yaml:"model"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	Breaker BreakerConfig `json:"breaker" yaml:"breaker"`
	Log     LogConfig     `json:"log" yaml:"log"`
}
