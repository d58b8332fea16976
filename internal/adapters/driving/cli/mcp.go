package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lodestone-labs/ruminate-cli/internal/adapters/driven/watch"
	"github.com/lodestone-labs/ruminate-cli/internal/adapters/driving/mcp"
	"github.com/lodestone-labs/ruminate-cli/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for Claude Desktop)
  ruminate mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  ruminate mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "ruminate": {
        "command": "/path/to/ruminate",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Ask:         askService,
		Knowledge:   knowledgeSvc,
		Maintenance: askService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	// Invalidate cached answers while the server is running and the
	// documentation changes underneath it.
	if watcher, err := watch.NewWatcher(knowledgeSvc.Roots(), responseCache); err != nil {
		logger.Warn("knowledge base watcher disabled: %v", err)
	} else {
		go watcher.Run(cmd.Context())
		defer watcher.Close() //nolint:errcheck // Best-effort shutdown
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
