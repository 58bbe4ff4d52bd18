// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the fixed research then draft sequence for a query.
// There is no branching: drafting runs even when research returned an
// error marker, so every run ends with some answer text.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/research-agent/internal/draft"
	"github.com/pdiddy/research-agent/pkg/types"
)

// Researcher produces research data for a query. A non-nil error aborts
// the run.
type Researcher interface {
	Research(ctx context.Context, query string) (types.Result, error)
}

// Drafter writes the final answer. It never fails.
type Drafter interface {
	Draft(ctx context.Context, query string, research types.Result) string
}

// Pipeline wires the two stages together.
type Pipeline struct {
	research Researcher
	draft    Drafter
	log      *zap.Logger
}

// New returns a pipeline over the given stages. log may be nil.
func New(r Researcher, d Drafter, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{research: r, draft: d, log: log.Named("pipeline")}
}

// Run executes research then draft for query and returns the final state.
// The only error is one returned by the research stage (a corrupt cache).
func (p *Pipeline) Run(ctx context.Context, query string) (*types.PipelineState, error) {
	state := types.NewPipelineState(uuid.NewString(), query)
	log := p.log.With(zap.String("run_id", state.RunID), zap.String("query", query))
	start := time.Now()

	log.Debug("research started")
	data, err := p.research.Research(ctx, query)
	if err != nil {
		return state, fmt.Errorf("researching %q: %w", query, err)
	}
	state.ResearchData = data

	log.Debug("draft started", zap.Int("research_items", len(data)))
	state.DraftedAnswer = p.draft.Draft(ctx, query, state.ResearchData)

	log.Info("run finished",
		zap.Bool("degraded", Degraded(state)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return state, nil
}

// Degraded reports whether a finished run's answer is built on an error
// marker or is itself a drafting failure.
func Degraded(state *types.PipelineState) bool {
	if _, failed := state.ResearchData.Failure(); failed {
		return true
	}
	return strings.HasPrefix(state.DraftedAnswer, draft.FailurePrefix)
}

// BatchSummary holds counts from a batch run.
type BatchSummary struct {
	Answered int
	Degraded int
}

// Total returns the number of queries that produced an answer.
func (s BatchSummary) Total() int {
	return s.Answered + s.Degraded
}

// RunBatch runs queries one at a time in order, writing each answer to w.
// It stops at the first run-terminating error.
func (p *Pipeline) RunBatch(ctx context.Context, queries []string, w io.Writer) (BatchSummary, error) {
	var summary BatchSummary

	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		fmt.Fprintf(w, "\nRunning query: %s\n", q)
		state, err := p.Run(ctx, q)
		if err != nil {
			return summary, err
		}

		fmt.Fprintf(w, "Final Answer:\n%s\n", state.DraftedAnswer)
		if Degraded(state) {
			summary.Degraded++
		} else {
			summary.Answered++
		}
	}
	return summary, nil
}
