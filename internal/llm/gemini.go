// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/research-agent/internal/httputil"
)

// geminiAPIBase is the Generative Language API root. Package-level var for
// test substitution.
var geminiAPIBase = "https://generativelanguage.googleapis.com"

// Gemini calls the Google Generative Language API.
type Gemini struct {
	APIKey string
	Model  string
	// BaseURL overrides geminiAPIBase when set.
	BaseURL string
	Client  *http.Client
}

// geminiRequest is the request body for models/{model}:generateContent.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse is the subset of the generateContent response we read.
type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Name returns the backend identifier.
func (g *Gemini) Name() string { return "gemini" }

// Generate sends prompt as a single user turn and returns the text of the
// first candidate. A response with no candidates yields "".
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(g.APIKey) == "" {
		return "", fmt.Errorf("%w: Gemini API key is missing", ErrUnavailable)
	}

	model := g.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	base := geminiAPIBase
	if g.BaseURL != "" {
		base = g.BaseURL
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimRight(base, "/"), url.PathEscape(model))

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}
	headers := map[string]string{"x-goog-api-key": g.APIKey}

	var resp geminiResponse
	if err := httputil.PostJSON(ctx, g.Client, endpoint, headers, reqBody, &resp); err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
