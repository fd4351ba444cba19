package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/deployctx/deployctx/internal/document"
	"github.com/deployctx/deployctx/internal/semindex"
)

var indexCmd = &cobra.Command{
	Use:   "index <metadata> <output>",
	Short: "Build a searchable index from a deployment metadata bundle",
	Long: `Reads a metadata bundle (user intents, deployment patterns, examples,
API endpoints, and templates) and writes a normalized index keyed by record
category. The output format follows the file extension: .yaml/.yml for YAML,
anything else for JSON.`,
	Args: cobra.ExactArgs(2),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]

	bundle, err := document.Load(input)
	if err != nil {
		return fmt.Errorf("loading metadata bundle: %w", err)
	}

	ix := semindex.BuildIndex(bundle)

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := document.Write(output, ix.Document()); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}

	fmt.Printf("Indexed %d record(s) across %d categories -> %s\n", ix.Len(), len(semindex.Categories), output)
	return nil
}
