package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/deployctx/deployctx/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing
deployment knowledge search tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		catalog, err := openCatalog(cfg)
		if err != nil {
			return err
		}
		defer catalog.Close()

		vectors, err := openVectors(cfg)
		if err != nil {
			return err
		}

		count, err := catalog.Count()
		if err != nil {
			return fmt.Errorf("reading catalog: %w", err)
		}
		if count == 0 {
			fmt.Fprintln(os.Stderr, "Warning: catalog is empty; run `deployctx ingest` first")
		}

		mcpserver.Version = Version
		fmt.Fprintf(os.Stderr, "deployctx MCP server started on stdio (records=%d)\n", count)

		srv := mcpserver.NewServer(catalog, vectors)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
