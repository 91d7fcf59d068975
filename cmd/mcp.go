package cmd

import (
	"github.com/SimoneSapienza/dev-wrapped/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the dev-wrapped MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents fetch yearly statistics and classify commit messages.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The tool handlers suppress the run header so stdio only carries the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
