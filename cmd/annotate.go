package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/deployctx/deployctx/internal/annotate"
	"github.com/deployctx/deployctx/internal/document"
	"github.com/deployctx/deployctx/internal/progress"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [input] [output]",
	Short: "Inject schema-driven annotations into a deployment template",
	Long: `Reads a YAML or JSON deployment template and writes a copy with
explanatory annotation entries injected next to every key the annotation
schema describes. With --glob, annotates every matching file instead.`,
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().String("schema", "", "annotation schema file (defaults to the built-in deployment schema)")
	annotateCmd.Flags().String("glob", "", "annotate all files matching this pattern, e.g. 'templates/**/*.yaml'")
	annotateCmd.Flags().String("out-dir", "", "with --glob, write annotated copies under this directory instead of in place")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	schemaFlag, _ := cmd.Flags().GetString("schema")
	schema, err := loadSchema(schemaFlag, cfg)
	if err != nil {
		return err
	}

	glob, _ := cmd.Flags().GetString("glob")
	if glob != "" {
		if len(args) != 0 {
			return fmt.Errorf("--glob does not take positional arguments")
		}
		outDir, _ := cmd.Flags().GetString("out-dir")
		return annotateGlob(glob, outDir, schema)
	}

	if len(args) != 2 {
		return fmt.Errorf("annotate requires <input> and <output> arguments (or --glob)")
	}
	return annotateFile(args[0], args[1], schema)
}

func annotateFile(input, output string, schema *document.Mapping) error {
	doc, err := document.Load(input)
	if err != nil {
		return fmt.Errorf("loading template: %w", err)
	}

	annotated := annotate.Annotate(doc, schema)

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := document.Write(output, annotated); err != nil {
		return fmt.Errorf("writing annotated template: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Annotated %s -> %s\n", input, output)
	}
	return nil
}

// annotateGlob annotates every file matching the pattern. With an output
// directory the matched paths are mirrored beneath it; otherwise files are
// rewritten in place.
func annotateGlob(pattern, outDir string, schema *document.Mapping) error {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		fmt.Println("No files match the pattern.")
		return nil
	}

	reporter := progress.NewReporter()
	reporter.Start(len(matches))
	defer reporter.Finish()

	var failed int
	for i, match := range matches {
		output := match
		if outDir != "" {
			output = filepath.Join(outDir, match)
		}
		if err := annotateFile(match, output, schema); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", match, err)
		}
		reporter.Update(i+1, match)
	}

	fmt.Printf("\nAnnotated %d file(s)", len(matches)-failed)
	if failed > 0 {
		fmt.Printf(", %d failed", failed)
	}
	fmt.Println()
	return nil
}
