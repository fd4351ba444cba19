package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deployctx/deployctx/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize deployctx configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure deployctx and generates a .deployctx.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
