// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/pdiddy/research-agent/internal/breaker"
	"github.com/pdiddy/research-agent/pkg/types"
)

// Guarded wraps a Provider with a circuit breaker.
type Guarded struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker[[]Hit]
}

// Guard returns p behind a circuit breaker configured by cfg, or p itself
// when the breaker is disabled.
func Guard(p Provider, cfg types.BreakerConfig, log *zap.Logger) Provider {
	if !breaker.Enabled(cfg) {
		return p
	}
	return &Guarded{
		inner: p,
		cb:    breaker.New[[]Hit]("search:"+p.Name(), cfg, log),
	}
}

// Name returns the wrapped provider's name.
func (g *Guarded) Name() string { return g.inner.Name() }

// Search forwards to the wrapped provider unless the circuit is open.
func (g *Guarded) Search(ctx context.Context, query string, maxResults int) ([]Hit, error) {
	return g.cb.Execute(func() ([]Hit, error) {
		return g.inner.Search(ctx, query, maxResults)
	})
}
