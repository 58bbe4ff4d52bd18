// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the research-agent
// pipeline: research items, research results, the cache mapping, the
// pipeline state, and configuration.
package types

import (
	"encoding/json"
	"fmt"
	"sort"

	"go.yaml.in/yaml/v3"
)

// ItemKind distinguishes the three shapes a research item can take.
type ItemKind string

const (
	// KindSource is a retrieved web result: title, url, content.
	KindSource ItemKind = "source"
	// KindSummary is the trailing summary of a successful result.
	KindSummary ItemKind = "summary"
	// KindError marks a failed research run.
	KindError ItemKind = "error"
)

// Item is one element of a research result. Only the fields belonging to
// its Kind are meaningful and only those are encoded.
type Item struct {
	Kind ItemKind

	// Source fields.
	Title   string
	URL     string
	Content string

	// Summary holds the summary text for KindSummary.
	Summary string

	// Error holds the failure message for KindError.
	Error string
}

// SourceItem builds a retrieved-result item.
func SourceItem(title, url, content string) Item {
	return Item{Kind: KindSource, Title: title, URL: url, Content: content}
}

// SummaryItem builds the trailing summary item.
func SummaryItem(summary string) Item {
	return Item{Kind: KindSummary, Summary: summary}
}

// ErrorItem builds an error-marker item.
func ErrorItem(msg string) Item {
	return Item{Kind: KindError, Error: msg}
}

type sourceFields struct {
	Title   string `json:"title" yaml:"title"`
	URL     string `json:"url" yaml:"url"`
	Content string `json:"content" yaml:"content"`
}

type summaryFields struct {
	Summary string `json:"summary" yaml:"summary"`
}

type errorFields struct {
	Error string `json:"error" yaml:"error"`
}

// wireItem is the decoding target for both JSON and YAML. Pointer fields
// let us tell an absent key from an empty one.
type wireItem struct {
	Title   *string `json:"title" yaml:"title"`
	URL     *string `json:"url" yaml:"url"`
	Content *string `json:"content" yaml:"content"`
	Summary *string `json:"summary" yaml:"summary"`
	Error   *string `json:"error" yaml:"error"`
}

func (w wireItem) item() Item {
	switch {
	case w.Summary != nil:
		return SummaryItem(*w.Summary)
	case w.Error != nil:
		return ErrorItem(*w.Error)
	default:
		return SourceItem(deref(w.Title), deref(w.URL), deref(w.Content))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (it Item) fields() any {
	switch it.Kind {
	case KindSummary:
		return summaryFields{Summary: it.Summary}
	case KindError:
		return errorFields{Error: it.Error}
	default:
		return sourceFields{Title: it.Title, URL: it.URL, Content: it.Content}
	}
}

// MarshalJSON encodes the item as {"title","url","content"}, {"summary"},
// or {"error"} depending on its kind.
func (it Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(it.fields())
}

// UnmarshalJSON decodes an item, inferring its kind from the keys present.
// Missing source fields default to empty text.
func (it *Item) UnmarshalJSON(data []byte) error {
	var w wireItem
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*it = w.item()
	return nil
}

// MarshalYAML mirrors MarshalJSON for YAML exports.
func (it Item) MarshalYAML() (any, error) {
	return it.fields(), nil
}

// UnmarshalYAML mirrors UnmarshalJSON.
func (it *Item) UnmarshalYAML(value *yaml.Node) error {
	var w wireItem
	if err := value.Decode(&w); err != nil {
		return err
	}
	*it = w.item()
	return nil
}

// Result is the ordered output of the research stage. A successful result
// holds zero or more source items followed by exactly one summary item; a
// failed result holds a single error item.
type Result []Item

// ErrorResult returns a result carrying a single error marker.
func ErrorResult(format string, args ...any) Result {
	return Result{ErrorItem(fmt.Sprintf(format, args...))}
}

// Sources returns the source items in order.
func (r Result) Sources() []Item {
	var out []Item
	for _, it := range r {
		if it.Kind == KindSource {
			out = append(out, it)
		}
	}
	return out
}

// Summary returns the trailing summary text, if the result ends with one.
func (r Result) Summary() (string, bool) {
	if len(r) == 0 || r[len(r)-1].Kind != KindSummary {
		return "", false
	}
	return r[len(r)-1].Summary, true
}

// Failure returns the error message of an error-marked result.
func (r Result) Failure() (string, bool) {
	for _, it := range r {
		if it.Kind == KindError {
			return it.Error, true
		}
	}
	return "", false
}

// Complete reports whether r is a well-formed successful result: non-empty,
// ending with the only summary item, and free of error markers.
func (r Result) Complete() bool {
	if _, ok := r.Summary(); !ok {
		return false
	}
	for _, it := range r[:len(r)-1] {
		if it.Kind != KindSource {
			return false
		}
	}
	return true
}

// CacheStore maps literal query text to its research result.
type CacheStore map[string]Result

// Queries returns the cached query strings in sorted order.
func (c CacheStore) Queries() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PipelineState is threaded through the research and drafting stages of a
// single run. It is owned by that run and never shared.
type PipelineState struct {
	RunID         string `json:"run_id" yaml:"run_id"`
	Query         string `json:"query" yaml:"query"`
	ResearchData  Result `json:"research_data" yaml:"research_data"`
	DraftedAnswer string `json:"drafted_answer" yaml:"drafted_answer"`
}

// NewPipelineState returns the initial state for query: empty research
// data and no answer yet.
func NewPipelineState(runID, query string) *PipelineState {
	return &PipelineState{
		RunID:        runID,
		Query:        query,
		ResearchData: Result{},
	}
}
