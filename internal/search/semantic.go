// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/research-agent/internal/httputil"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,abstract,externalIds,url"

// SemanticScholar queries the Semantic Scholar API. It suits research
// questions about academic topics; the abstract becomes the hit content.
type SemanticScholar struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// Name returns the backend identifier.
func (b *SemanticScholar) Name() string { return "semantic_scholar" }

// Search queries the Semantic Scholar API and returns up to maxResults hits.
func (b *SemanticScholar) Search(ctx context.Context, query string, maxResults int) ([]Hit, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("empty Semantic Scholar query")
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	params := url.Values{
		"query":  {q},
		"limit":  {strconv.Itoa(maxResults)},
		"fields": {semanticFields},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, semanticAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if b.UserAgent != "" {
		req.Header.Set("User-Agent", b.UserAgent)
	}
	if b.APIKey != "" {
		req.Header.Set("x-api-key", b.APIKey)
	}

	var sr semanticResponse
	if err := httputil.DoJSON(b.Client, req, &sr); err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}

	hits := make([]Hit, 0, len(sr.Data))
	for _, paper := range sr.Data {
		hits = append(hits, Hit{
			Title:   paper.Title,
			URL:     paperURL(paper),
			Content: paper.Abstract,
		})
	}
	return limit(hits, maxResults), nil
}

// paperURL picks a link for a paper: the arXiv abstract page, then the DOI
// resolver, then the Semantic Scholar page.
func paperURL(p semanticPaper) string {
	switch {
	case p.ExternalIDs.ArXiv != "":
		return "https://arxiv.org/abs/" + p.ExternalIDs.ArXiv
	case p.ExternalIDs.DOI != "":
		return "https://doi.org/" + p.ExternalIDs.DOI
	case p.URL != "":
		return p.URL
	case p.PaperID != "":
		return "https://www.semanticscholar.org/paper/" + p.PaperID
	default:
		return ""
	}
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID     string              `json:"paperId"`
	Title       string              `json:"title"`
	Abstract    string              `json:"abstract"`
	URL         string              `json:"url"`
	ExternalIDs semanticExternalIDs `json:"externalIds"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}
