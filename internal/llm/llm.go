// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm abstracts the language model that writes research summaries
// and final answers. Gemini is the default backend; any OpenAI-compatible
// server can be used instead. When no credential is configured the
// Unavailable generator stands in and every call fails with ErrUnavailable.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// DefaultGeminiModel is the model used when none is configured.
const DefaultGeminiModel = "gemini-1.5-pro"

// ErrUnavailable reports a model provider that could not be initialized.
var ErrUnavailable = errors.New("model provider unavailable")

// Generator turns a prompt into generated text. An empty string with a nil
// error means the model produced nothing.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Unavailable is the generator used when no real backend could be built.
type Unavailable struct {
	Reason string
}

// Name returns the backend identifier.
func (u Unavailable) Name() string { return "unavailable" }

// Generate always fails.
func (u Unavailable) Generate(_ context.Context, _ string) (string, error) {
	if u.Reason == "" {
		return "", ErrUnavailable
	}
	return "", fmt.Errorf("%w: %s", ErrUnavailable, u.Reason)
}
