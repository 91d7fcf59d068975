// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the dev-wrapped MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Dev Wrapped Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_year_stats ---
	s.AddTool(mcp.NewTool("get_year_stats",
		mcp.WithDescription("Collect a year of commit activity from the configured GitHub and GitLab accounts and return the merged statistics with highlights."),
		mcp.WithNumber("year", mcp.Description("Calendar year to summarize (defaults to the configured year).")),
		mcp.WithString("timezone", mcp.Description("IANA time zone used to bucket timestamps, e.g. 'Europe/Rome' (defaults to the configured zone).")),
	), h.handleGetYearStats)

	// --- 2. Tool: classify_commit ---
	s.AddTool(mcp.NewTool("classify_commit",
		mcp.WithDescription("Tag a commit message as Merge, Feature, Bugfix, Refactor, Docs or Other."),
		mcp.WithString("message", mcp.Description("The commit message to classify."), mcp.Required()),
	), h.handleClassifyCommit)

	return s
}

// StartMCPServer starts the dev-wrapped MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
