// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// defaultQueries run when no query is given on the command line.
var defaultQueries = []string{
	"What are recent developments in renewable energy?",
	"What is the status of quantum computing in 2025?",
	"What are advancements in biotechnology in 2025?",
}

var runCmd = &cobra.Command{
	Use:   "run [query...]",
	Short: "Research and answer one or more queries",
	Long: `Run researches each query, drafts an answer from the research, and prints
it. Each argument is one query; with no arguments a built-in list of example
queries is used. Queries run one at a time in the order given.

Research results are cached under the exact query text, so repeating a
query answers it from the cache without calling the search provider.`,
	RunE: runQueries,
}

func runQueries(cmd *cobra.Command, args []string) error {
	queries := args
	if len(queries) == 0 {
		queries = defaultQueries
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	p, store, err := newPipeline(agentCfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		for _, q := range queries {
			state, err := p.Run(cmd.Context(), q)
			if err != nil {
				return err
			}
			if err := enc.Encode(state); err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
		}
		return nil
	}

	summary, err := p.RunBatch(cmd.Context(), queries, out)
	if err != nil {
		return err
	}
	logger.Info("batch finished",
		zap.Int("answered", summary.Answered),
		zap.Int("degraded", summary.Degraded),
	)
	return nil
}

func init() {
	runCmd.Flags().Bool("json", false, "print each final pipeline state as JSON")

	rootCmd.AddCommand(runCmd)
}
