// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/research-agent/internal/cache"
	"github.com/pdiddy/research-agent/pkg/types"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect, export, or clear the research cache",
	Long: `Cache works on the persisted research results. Entries are keyed by the
exact query text and never expire; use clear to start over.`,
}

// --- list subcommand ---

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached queries with their item counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadCache(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(data) == 0 {
			fmt.Fprintln(out, "Cache is empty.")
			return nil
		}
		for _, q := range data.Queries() {
			status := "ok"
			if _, failed := data[q].Failure(); failed {
				status = "error"
			}
			fmt.Fprintf(out, "%3d items  %-5s  %s\n", len(data[q]), status, q)
		}
		fmt.Fprintf(out, "\n%d queries\n", len(data))
		return nil
	},
}

// --- show subcommand ---

var cacheShowCmd = &cobra.Command{
	Use:   "show <query>",
	Short: "Print one cached result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadCache(cmd)
		if err != nil {
			return err
		}
		result, ok := data[args[0]]
		if !ok {
			return fmt.Errorf("query %q is not cached", args[0])
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// --- export subcommand ---

var cacheExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every cached result to a YAML or JSON file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")

		data, err := loadCache(cmd)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			defer f.Close()
			w = f
		}

		if err := cache.Export(w, data, format); err != nil {
			return err
		}
		if outPath != "" {
			logger.Info("exported cache", zap.String("path", outPath), zap.Int("queries", len(data)))
		}
		return nil
	},
}

// --- clear subcommand ---

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.Open(agentCfg.Cache)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Save(cmd.Context(), types.CacheStore{}); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
		return nil
	},
}

func loadCache(cmd *cobra.Command) (types.CacheStore, error) {
	store, err := cache.Open(agentCfg.Cache)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	return store.Load(cmd.Context())
}

func init() {
	cacheExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	cacheExportCmd.Flags().String("out", "", "output file (default: stdout)")

	cacheCmd.AddCommand(cacheListCmd, cacheShowCmd, cacheExportCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
