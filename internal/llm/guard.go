// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/pdiddy/research-agent/internal/breaker"
	"github.com/pdiddy/research-agent/pkg/types"
)

// Guarded wraps a Generator with a circuit breaker.
type Guarded struct {
	inner Generator
	cb    *gobreaker.CircuitBreaker[string]
}

// Guard returns g behind a circuit breaker, or g itself when cfg disables it.
func Guard(g Generator, cfg types.BreakerConfig, log *zap.Logger) Generator {
	if !breaker.Enabled(cfg) {
		return g
	}
	return &Guarded{
		inner: g,
		cb:    breaker.New[string]("model:"+g.Name(), cfg, log),
	}
}

// Name returns the wrapped generator's name.
func (g *Guarded) Name() string { return g.inner.Name() }

// Generate forwards to the wrapped generator unless the circuit is open.
func (g *Guarded) Generate(ctx context.Context, prompt string) (string, error) {
	return g.cb.Execute(func() (string, error) {
		return g.inner.Generate(ctx, prompt)
	})
}
