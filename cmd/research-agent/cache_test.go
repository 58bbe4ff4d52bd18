// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-agent/internal/cache"
	"github.com/pdiddy/research-agent/pkg/types"
)

// withCache points agentCfg at a temporary JSON cache seeded with data.
func withCache(t *testing.T, data types.CacheStore) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.json")
	if data != nil {
		require.NoError(t, cache.NewFileStore(path).Save(context.Background(), data))
	}

	old := agentCfg
	agentCfg = types.AgentConfig{Cache: types.CacheConfig{Backend: types.CacheJSON, Path: path}}
	t.Cleanup(func() { agentCfg = old })
	return path
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetContext(context.Background())
	t.Cleanup(func() { cmd.SetOut(nil) })
	err := cmd.RunE(cmd, args)
	return buf.String(), err
}

var seeded = types.CacheStore{
	"b query": {types.SourceItem("T", "https://t.example", "c"), types.SummaryItem("s")},
	"a query": types.ErrorResult("Research failed: x"),
}

func TestCacheList(t *testing.T) {
	withCache(t, seeded)

	out, err := execute(t, cacheListCmd)
	require.NoError(t, err)

	assert.Less(t, bytes.Index([]byte(out), []byte("a query")), bytes.Index([]byte(out), []byte("b query")))
	assert.Contains(t, out, "  2 items  ok     b query")
	assert.Contains(t, out, "  1 items  error  a query")
	assert.Contains(t, out, "2 queries")
}

func TestCacheListEmpty(t *testing.T) {
	withCache(t, nil)

	out, err := execute(t, cacheListCmd)
	require.NoError(t, err)
	assert.Equal(t, "Cache is empty.\n", out)
}

func TestCacheShow(t *testing.T) {
	withCache(t, seeded)

	out, err := execute(t, cacheShowCmd, "b query")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "T"`)
	assert.Contains(t, out, `"summary": "s"`)

	_, err = execute(t, cacheShowCmd, "missing")
	assert.ErrorContains(t, err, `query "missing" is not cached`)
}

func TestCacheExportToFile(t *testing.T) {
	withCache(t, seeded)
	outPath := filepath.Join(t.TempDir(), "export.yaml")
	require.NoError(t, cacheExportCmd.Flags().Set("out", outPath))
	t.Cleanup(func() { _ = cacheExportCmd.Flags().Set("out", "") })

	_, err := execute(t, cacheExportCmd)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "query: a query")
	assert.Contains(t, string(data), "Research failed: x")
}

func TestCacheClear(t *testing.T) {
	path := withCache(t, seeded)

	out, err := execute(t, cacheClearCmd)
	require.NoError(t, err)
	assert.Equal(t, "Cache cleared.\n", out)

	data, err := cache.NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestCacheCorrupt(t *testing.T) {
	path := withCache(t, nil)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := execute(t, cacheListCmd)
	assert.ErrorIs(t, err, cache.ErrCorrupt)
}
