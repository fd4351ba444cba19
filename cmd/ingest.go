package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deployctx/deployctx/internal/document"
	"github.com/deployctx/deployctx/internal/ingest"
	"github.com/deployctx/deployctx/internal/progress"
	"github.com/deployctx/deployctx/internal/semindex"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <input>",
	Short: "Load deployment metadata into the local search catalog",
	Long: `Loads an index document (the output of deployctx index) or a raw
metadata bundle into the record catalog under the data directory. When an
embedding provider is configured, records are also embedded into the vector
store for semantic search.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := document.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading input: %w", err)
	}

	var ix *semindex.Index
	if semindex.IsIndexDocument(doc) {
		ix = semindex.ParseIndex(doc)
	} else {
		ix = semindex.BuildIndex(doc)
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

	count, err := ingest.Run(ctx, ix, ingest.Options{
		Store:    catalog,
		Vectors:  vectors,
		Reporter: progress.NewReporter(),
	})
	if err != nil {
		return fmt.Errorf("ingesting index: %w", err)
	}

	if vectors != nil {
		if err := vectors.Persist(vectorDir(cfg)); err != nil {
			return fmt.Errorf("persisting vector store: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Vector snapshot written to %s\n", vectorDir(cfg))
		}
	}

	fmt.Printf("\nIngested %d record(s) into %s", count, catalogPath(cfg))
	if vectors != nil {
		fmt.Print(" (with embeddings)")
	}
	fmt.Println()
	return nil
}
