// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arxivFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.07041v2</id>
    <title>Quantum Advantage
      in Practice</title>
    <summary>  We survey recent results.  </summary>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2302.00001v1</id>
    <title>Second</title>
    <summary>More.</summary>
  </entry>
</feed>`

func TestBuildArxivQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"quantum computing", "all:quantum+computing"},
		{"  spaced   out ", "all:spaced+out"},
		{"status in 2025?", "all:status+in+2025%3F"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, buildArxivQuery(tt.in), "input %q", tt.in)
	}
}

func TestArxivSearch(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, arxivFeedXML)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	b := &Arxiv{Client: ts.Client()}
	hits, err := b.Search(context.Background(), "quantum advantage", 1)
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "search_query=all:quantum+advantage")
	assert.Contains(t, gotQuery, "max_results=1")
	require.Len(t, hits, 1)
	assert.Equal(t, Hit{
		Title:   "Quantum Advantage in Practice",
		URL:     "http://arxiv.org/abs/2301.07041v2",
		Content: "We survey recent results.",
	}, hits[0])
}

func TestArxivSearchErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	b := &Arxiv{Client: ts.Client()}
	_, err := b.Search(context.Background(), "q", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 503")

	_, err = b.Search(context.Background(), " ", 5)
	assert.ErrorContains(t, err, "empty arXiv query")
}
