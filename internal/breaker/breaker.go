// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package breaker builds the circuit breakers that sit in front of the
// search and model providers. A batch run against a dead provider then
// fails fast after a few consecutive errors instead of paying a timeout per
// query. Breakers never retry.
package breaker

import (
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/pdiddy/research-agent/pkg/types"
)

// DefaultTimeout is how long an open circuit waits before letting one probe
// call through.
const DefaultTimeout = 30 * time.Second

// Enabled reports whether cfg asks for a breaker at all.
func Enabled(cfg types.BreakerConfig) bool {
	return cfg.MaxFailures > 0
}

// New returns a breaker named name that opens after cfg.MaxFailures
// consecutive failures. State changes are logged at warn level.
func New[T any](name string, cfg types.BreakerConfig, log *zap.Logger) *gobreaker.CircuitBreaker[T] {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxFailures := cfg.MaxFailures

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}
