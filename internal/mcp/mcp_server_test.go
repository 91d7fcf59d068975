package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	mcp_internal "github.com/SimoneSapienza/dev-wrapped/internal/mcp"
	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, cfg *contract.Config, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var mgr contract.CacheManager
	s := mcp_internal.NewMCPServer(cfg, mgr)

	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func resultText(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{Year: 2024, Location: time.UTC}

	tests := []struct {
		name    string
		tool    string
		args    map[string]any
		wantMsg string
	}{
		{"year too early", "get_year_stats", map[string]any{"year": 1990.0}, "year must be between"},
		{"year in the future", "get_year_stats", map[string]any{"year": float64(time.Now().Year() + 1)}, "year must be between"},
		{"bad timezone", "get_year_stats", map[string]any{"timezone": "Nowhere/Land"}, "invalid timezone"},
		{"no providers configured", "get_year_stats", map[string]any{}, "no provider configured"},
		{"empty message", "classify_commit", map[string]any{"message": "  "}, "message is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, baseCfg, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(res), tt.wantMsg)
		})
	}
}

func TestMCPServerClassifyCommit(t *testing.T) {
	res := callTool(t, &contract.Config{}, "classify_commit", map[string]any{"message": "docs: update README"})
	require.False(t, res.IsError)

	var got schema.Classification
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
	assert.Equal(t, schema.DocsCommit, got.Type)
	assert.Equal(t, "docs: update README", got.Message)
}

func TestMCPServerDoesNotMutateBaseConfig(t *testing.T) {
	baseCfg := &contract.Config{Year: 2024, Location: time.UTC}
	_ = callTool(t, baseCfg, "get_year_stats", map[string]any{"year": 2023.0, "timezone": "Asia/Tokyo"})

	assert.Equal(t, 2024, baseCfg.Year)
	assert.Equal(t, time.UTC, baseCfg.Location)
}
