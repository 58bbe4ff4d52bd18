// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt renders the two prompts the pipeline sends to the model:
// the research summary and the final answer draft.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/research-agent/pkg/types"
)

var funcs = template.FuncMap{"items": Items}

// summaryTmpl asks for the paragraph stored as the trailing summary item.
var summaryTmpl = template.Must(template.New("summary").Funcs(funcs).Parse(`Summarize the following research data into a concise paragraph (100-150 words):
{{items .Items}}
Focus on key insights relevant to the query: {{.Query}}
`))

// draftTmpl asks for the final answer. The research may be an error marker;
// the model is told to say so instead of inventing facts.
var draftTmpl = template.Must(template.New("draft").Funcs(funcs).Parse(`Based on the following research data, provide a clear and concise answer (200-300 words) to the query: {{.Query}}
Research Data:
{{items .Items}}
Ensure the answer is well-structured, informative, and directly addresses the query.
If the research data is empty or reports an error, say that the research was insufficient instead of guessing.
`))

type data struct {
	Query string
	Items []types.Item
}

// Summary renders the summarization prompt for the source items of query.
func Summary(query string, items []types.Item) (string, error) {
	return render(summaryTmpl, data{Query: query, Items: items})
}

// Draft renders the drafting prompt for query over the research result.
func Draft(query string, research types.Result) (string, error) {
	return render(draftTmpl, data{Query: query, Items: research})
}

func render(t *template.Template, d data) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// Items renders research items as numbered plain-text blocks. An empty
// slice renders as "(no research data)".
func Items(items []types.Item) string {
	if len(items) == 0 {
		return "(no research data)\n"
	}

	var sb strings.Builder
	n := 0
	for _, it := range items {
		switch it.Kind {
		case types.KindSummary:
			fmt.Fprintf(&sb, "Summary: %s\n", it.Summary)
		case types.KindError:
			fmt.Fprintf(&sb, "Error: %s\n", it.Error)
		default:
			n++
			fmt.Fprintf(&sb, "[%d] %s\n", n, it.Title)
			if it.URL != "" {
				fmt.Fprintf(&sb, "    URL: %s\n", it.URL)
			}
			if it.Content != "" {
				fmt.Fprintf(&sb, "    %s\n", it.Content)
			}
		}
	}
	return sb.String()
}
