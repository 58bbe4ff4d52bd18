// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIGenerate(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  Fusion is close.  "},"finish_reason":"stop"}]}`)
	}))
	defer ts.Close()

	o := NewOpenAI("sk-test", "local-model", ts.URL, ts.Client())
	assert.Equal(t, "openai", o.Name())

	out, err := o.Generate(context.Background(), "Draft an answer.")
	require.NoError(t, err)
	assert.Equal(t, "Fusion is close.", out)

	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "local-model", gotBody.Model)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)
	assert.Equal(t, "Draft an answer.", gotBody.Messages[0].Content)
}

func TestOpenAIGenerateNoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","choices":[]}`)
	}))
	defer ts.Close()

	o := NewOpenAI("k", "", ts.URL, ts.Client())
	out, err := o.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, DefaultOpenAIModel, o.model)
}

func TestOpenAIGenerateError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"boom","type":"server_error"}}`)
	}))
	defer ts.Close()

	o := NewOpenAI("k", "m", ts.URL, ts.Client())
	_, err := o.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat completion failed")
}
