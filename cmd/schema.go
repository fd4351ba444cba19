package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deployctx/deployctx/internal/schemadoc"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Work with annotation schemas",
}

var schemaDocsCmd = &cobra.Command{
	Use:   "docs <output>",
	Short: "Export the annotation schema as a reference document",
	Long: `Renders the annotation schema as a reference page listing every
described path with its explanations and examples. Writes Markdown when the
output ends in .md, a standalone HTML page otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: runSchemaDocs,
}

func init() {
	schemaDocsCmd.Flags().String("schema", "", "annotation schema file (defaults to the built-in deployment schema)")
	schemaDocsCmd.Flags().String("title", "Deployment Schema Reference", "document title")
	schemaCmd.AddCommand(schemaDocsCmd)
	rootCmd.AddCommand(schemaCmd)
}

func runSchemaDocs(cmd *cobra.Command, args []string) error {
	output := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	schemaFlag, _ := cmd.Flags().GetString("schema")
	schema, err := loadSchema(schemaFlag, cfg)
	if err != nil {
		return err
	}
	title, _ := cmd.Flags().GetString("title")

	md, err := schemadoc.Markdown(schema, title)
	if err != nil {
		return fmt.Errorf("rendering schema reference: %w", err)
	}

	var data []byte
	if strings.EqualFold(filepath.Ext(output), ".md") {
		data = []byte(md)
	} else {
		data, err = schemadoc.RenderHTML(md, title)
		if err != nil {
			return fmt.Errorf("rendering HTML page: %w", err)
		}
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing schema reference: %w", err)
	}

	fmt.Printf("Schema reference written to %s\n", output)
	return nil
}
