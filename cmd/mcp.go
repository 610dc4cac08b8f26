package cmd

import (
	"github.com/huangsam/impact/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [repo-path]",
	Short: "Start the Impact MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents page through contributor
tables, read impact data and look up authors via standard tools.

The repository of the current directory, or --repo-name, is the default for
tools called without a repo argument.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(_ *cobra.Command, args []string) error {
		// Logs go to stderr; stdout carries the protocol
		return sharedSetup(rootCtx, args, setupOptions{repoOptional: true})
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, newFetcher())
	},
}
