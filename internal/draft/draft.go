// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package draft writes the final answer to a query from its research data.
package draft

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/research-agent/internal/llm"
	"github.com/pdiddy/research-agent/internal/prompt"
	"github.com/pdiddy/research-agent/internal/textnorm"
	"github.com/pdiddy/research-agent/pkg/types"
)

// NoAnswer replaces an empty model response.
const NoAnswer = "No answer generated."

// FailurePrefix starts every answer produced when drafting itself failed.
const FailurePrefix = "Drafting failed: "

// Drafter turns research data into an answer.
type Drafter struct {
	model llm.Generator
	log   *zap.Logger
}

// New returns a Drafter backed by model. log may be nil.
func New(model llm.Generator, log *zap.Logger) *Drafter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Drafter{model: model, log: log.Named("draft")}
}

// Draft asks the model for a 200-300 word answer grounded in research and
// returns it normalized. It never fails: any error becomes an answer that
// starts with FailurePrefix.
func (d *Drafter) Draft(ctx context.Context, query string, research types.Result) string {
	log := d.log.With(zap.String("query", query))

	if msg, ok := research.Failure(); ok {
		log.Info("drafting from failed research", zap.String("research_error", msg))
	}

	p, err := prompt.Draft(query, research)
	if err != nil {
		return failed(log, err)
	}

	answer, err := d.model.Generate(ctx, p)
	if err != nil {
		return failed(log, err)
	}
	if strings.TrimSpace(answer) == "" {
		answer = NoAnswer
	}
	return textnorm.Normalize(answer)
}

func failed(log *zap.Logger, err error) string {
	log.Warn("drafting failed", zap.Error(err))
	return fmt.Sprintf("%s%v", FailurePrefix, err)
}
