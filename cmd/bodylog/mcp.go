// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harperreed/bodylog/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to record and review body measurements
through a standardized protocol. The server communicates via stdin/stdout;
logs go to stderr or the configured log file.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "bodylog": {
        "command": "bodylog",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  add_measurement     Record a measurement (BMI and waist-hip ratio computed)
  list_measurements   List measurements, optionally by person and dates
  delete_person       Delete every measurement of a person
  get_summary         Progress summary with bands and goal distance
  classify            Classify a single value into its health band

AVAILABLE RESOURCES:

  bodylog://people    Everyone with measurements
  bodylog://latest    Latest measurement per person`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.WithField("store", store.Path()).Info("mcp server starting")
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
