// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-agent/internal/search"
)

const (
	probeQuery  = "test query"
	probePrompt = "Reply with the single word: ready"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check that the search provider (and optionally the model) responds",
	Long: `Probe issues one search for "test query" with a single result and prints
the response or the failure. With --model it also sends one short prompt to
the language model. Nothing is cached.`,
	RunE: runProbe,
}

func runProbe(cmd *cobra.Command, args []string) error {
	withModel, _ := cmd.Flags().GetBool("model")
	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	var failed bool

	sp := newSearchProvider(agentCfg, logger)
	hits, err := sp.Search(cmd.Context(), probeQuery, 1)
	if err != nil {
		fmt.Fprintf(out, "search (%s): FAILED: %v\n", sp.Name(), err)
		failed = true
	} else {
		fmt.Fprintf(out, "search (%s): ok\n", sp.Name())
		if asJSON {
			if err := search.FormatJSON(hits, out); err != nil {
				return err
			}
		} else {
			search.FormatTable(hits, out)
		}
	}

	if withModel {
		g := newGenerator(agentCfg, logger)
		text, err := g.Generate(cmd.Context(), probePrompt)
		if err != nil {
			fmt.Fprintf(out, "model (%s): FAILED: %v\n", g.Name(), err)
			failed = true
		} else {
			fmt.Fprintf(out, "model (%s): ok: %q\n", g.Name(), text)
		}
	}

	if failed {
		return fmt.Errorf("probe failed")
	}
	return nil
}

func init() {
	probeCmd.Flags().Bool("model", false, "also send one prompt to the language model")
	probeCmd.Flags().Bool("json", false, "print search hits as JSON")

	rootCmd.AddCommand(probeCmd)
}
