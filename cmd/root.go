package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deployctx/deployctx/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "deployctx",
	Short: "Deployment template annotation and semantic indexing",
	Long: `Deployctx prepares deployment templates and metadata for AI consumption.
It annotates configuration documents with schema-driven explanations,
normalizes deployment metadata into a searchable index, and serves that
index to AI agents over HTTP and MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
