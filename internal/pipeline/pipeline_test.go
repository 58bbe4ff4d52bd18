// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-agent/internal/cache"
	"github.com/pdiddy/research-agent/internal/draft"
	"github.com/pdiddy/research-agent/internal/research"
	"github.com/pdiddy/research-agent/internal/search"
	"github.com/pdiddy/research-agent/internal/textnorm"
	"github.com/pdiddy/research-agent/pkg/types"
)

type stubResearcher struct {
	results map[string]types.Result
	err     error
	order   []string
}

func (s *stubResearcher) Research(_ context.Context, q string) (types.Result, error) {
	s.order = append(s.order, q)
	if s.err != nil {
		return nil, s.err
	}
	return s.results[q], nil
}

type stubDrafter struct {
	answer string
	seen   []types.Result
}

func (d *stubDrafter) Draft(_ context.Context, q string, r types.Result) string {
	d.seen = append(d.seen, r)
	if d.answer != "" {
		return d.answer
	}
	return "answer to " + q
}

type stubSearch struct {
	hits []search.Hit
	err  error
}

func (s stubSearch) Name() string { return "stub" }

func (s stubSearch) Search(context.Context, string, int) ([]search.Hit, error) {
	return s.hits, s.err
}

type stubModel struct{ out string }

func (m stubModel) Name() string { return "stub" }

func (m stubModel) Generate(context.Context, string) (string, error) { return m.out, nil }

func TestRunMergesStageOutputs(t *testing.T) {
	res := types.Result{types.SourceItem("A", "u", "c"), types.SummaryItem("s")}
	r := &stubResearcher{results: map[string]types.Result{"q": res}}
	d := &stubDrafter{}

	state, err := New(r, d, nil).Run(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, "q", state.Query)
	assert.Equal(t, res, state.ResearchData)
	assert.Equal(t, "answer to q", state.DraftedAnswer)
	_, err = uuid.Parse(state.RunID)
	assert.NoError(t, err)
	assert.False(t, Degraded(state))
}

func TestRunDraftsAfterFailedResearch(t *testing.T) {
	failed := types.ErrorResult("Research failed: offline")
	r := &stubResearcher{results: map[string]types.Result{"q": failed}}
	d := &stubDrafter{}

	state, err := New(r, d, nil).Run(context.Background(), "q")
	require.NoError(t, err)

	require.Len(t, d.seen, 1)
	assert.Equal(t, failed, d.seen[0])
	assert.NotEmpty(t, state.DraftedAnswer)
	assert.True(t, Degraded(state))
}

func TestRunResearchError(t *testing.T) {
	r := &stubResearcher{err: fmt.Errorf("loading cache: %w", cache.ErrCorrupt)}
	d := &stubDrafter{}

	state, err := New(r, d, nil).Run(context.Background(), "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, cache.ErrCorrupt)
	assert.Empty(t, d.seen)
	assert.Empty(t, state.DraftedAnswer)
}

func TestRunIDsAreUnique(t *testing.T) {
	p := New(&stubResearcher{}, &stubDrafter{}, nil)
	a, err := p.Run(context.Background(), "q")
	require.NoError(t, err)
	b, err := p.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRunBatch(t *testing.T) {
	r := &stubResearcher{results: map[string]types.Result{
		"one":   {types.SummaryItem("s1")},
		"two":   types.ErrorResult("Research failed: x"),
		"three": {types.SummaryItem("s3")},
	}}
	var buf bytes.Buffer

	summary, err := New(r, &stubDrafter{}, nil).RunBatch(context.Background(), []string{"one", "two", "three"}, &buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two", "three"}, r.order)
	assert.Equal(t, BatchSummary{Answered: 2, Degraded: 1}, summary)
	assert.Equal(t, 3, summary.Total())

	out := buf.String()
	assert.Contains(t, out, "Running query: one\nFinal Answer:\nanswer to one\n")
	assert.Less(t, strings.Index(out, "Running query: two"), strings.Index(out, "Running query: three"))
}

func TestRunBatchCountsDraftFailures(t *testing.T) {
	d := &stubDrafter{answer: draft.FailurePrefix + "quota"}
	summary, err := New(&stubResearcher{}, d, nil).RunBatch(context.Background(), []string{"q"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, BatchSummary{Degraded: 1}, summary)
}

func TestRunBatchStopsOnError(t *testing.T) {
	r := &stubResearcher{err: cache.ErrCorrupt}
	summary, err := New(r, &stubDrafter{}, nil).RunBatch(context.Background(), []string{"a", "b"}, &bytes.Buffer{})
	require.ErrorIs(t, err, cache.ErrCorrupt)
	assert.Equal(t, []string{"a"}, r.order)
	assert.Zero(t, summary.Total())
}

func TestRunBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &stubResearcher{}
	_, err := New(r, &stubDrafter{}, nil).RunBatch(ctx, []string{"a"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, r.order)
}

func TestEndToEndWithRealStages(t *testing.T) {
	const q = "What is the status of quantum computing in 2025?"
	store := cache.NewFileStore(filepath.Join(t.TempDir(), "cache.json"))
	hits := []search.Hit{
		{Title: "A", URL: "https://a.example", Content: "first"},
		{Title: "B", URL: "https://b.example", Content: "second"},
	}
	model := stubModel{out: "Quantum computing in 2025:\n\n* error rates fell."}

	p := New(
		research.New(store, stubSearch{hits: hits}, model, nil),
		draft.New(model, nil),
		nil,
	)
	state, err := p.Run(context.Background(), q)
	require.NoError(t, err)

	require.Len(t, state.ResearchData, 3)
	assert.Equal(t, "A", state.ResearchData[0].Title)
	assert.Equal(t, "B", state.ResearchData[1].Title)
	assert.Equal(t, types.KindSummary, state.ResearchData[2].Kind)

	assert.NotEmpty(t, state.DraftedAnswer)
	assert.Equal(t, textnorm.Normalize(state.DraftedAnswer), state.DraftedAnswer)
}

func TestEndToEndSearchFailure(t *testing.T) {
	store := cache.NewFileStore(filepath.Join(t.TempDir(), "cache.json"))
	model := stubModel{out: "The research was insufficient."}
	p := New(
		research.New(store, stubSearch{err: errors.New("dns failure")}, model, nil),
		draft.New(model, nil),
		nil,
	)

	state, err := p.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, types.ErrorResult("Research failed: dns failure"), state.ResearchData)
	assert.Equal(t, "The research was insufficient.", state.DraftedAnswer)
}
