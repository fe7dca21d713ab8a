// Package main provides the entry point for the devlog CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/jralston/devlog/internal/journal"
	devlogmcp "github.com/jralston/devlog/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run devlog as a Model Context Protocol (MCP) server over stdio.

This exposes journal operations as MCP tools that any MCP-capable agent
environment can use (Claude Code, Cursor, Windsurf, Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "devlog": {
        "command": "devlog",
        "args": ["serve"]
      }
    }
  }

Available tools: log, show, query, status, template`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := devlogmcp.NewServer(buildVersion(), journal.DefaultFile())
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
