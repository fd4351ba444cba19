package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deployctx/deployctx/internal/config"
	"github.com/deployctx/deployctx/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the ingested deployment knowledge",
	Long: `Searches the record catalog by keyword, or semantically against the
vector store with --semantic when an embedding provider is configured.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 10, "maximum number of results")
	searchCmd.Flags().String("category", "", "restrict to one category: intents, patterns, examples, api_usage, templates")
	searchCmd.Flags().Bool("semantic", false, "use semantic search (requires a configured embedding provider)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

type searchResultJSON struct {
	Rank       int             `json:"rank"`
	Similarity float32         `json:"similarity,omitempty"`
	Category   string          `json:"category"`
	Text       string          `json:"text"`
	Keywords   []string        `json:"keywords"`
	Context    json.RawMessage `json:"context,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	limit, _ := cmd.Flags().GetInt("limit")
	category, _ := cmd.Flags().GetString("category")
	semantic, _ := cmd.Flags().GetBool("semantic")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if semantic {
		return runSemanticSearch(cfg, query, limit, category, jsonOutput)
	}

	catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer catalog.Close()

	records, err := catalog.SearchKeyword(query, category, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No results found. Run `deployctx ingest` first to load an index.")
		return nil
	}

	if jsonOutput {
		out := make([]searchResultJSON, 0, len(records))
		for i, r := range records {
			out = append(out, searchResultJSON{
				Rank:     i + 1,
				Category: r.Category,
				Text:     r.Text,
				Keywords: r.Keywords,
				Context:  contextJSON(r.Context),
			})
		}
		return printJSON(out)
	}

	fmt.Printf("Found %d result(s):\n\n", len(records))
	for i, r := range records {
		printRecord(i+1, -1, r)
	}
	return nil
}

func runSemanticSearch(cfg *config.Config, query string, limit int, category string, jsonOutput bool) error {
	vectors, err := openVectors(cfg)
	if err != nil {
		return err
	}
	if vectors == nil {
		return fmt.Errorf("semantic search requires an embedding provider; run `deployctx init` to configure one")
	}
	if vectors.Count() == 0 {
		fmt.Println("Vector store is empty. Run `deployctx ingest` first.")
		return nil
	}

	results, err := vectors.Search(context.Background(), query, limit, category)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	if jsonOutput {
		out := make([]searchResultJSON, 0, len(results))
		for i, r := range results {
			out = append(out, searchResultJSON{
				Rank:       i + 1,
				Similarity: r.Similarity,
				Category:   r.Doc.Category,
				Text:       r.Doc.Text,
				Keywords:   r.Doc.Keywords,
				Context:    contextJSON(r.Doc.Context),
			})
		}
		return printJSON(out)
	}

	fmt.Printf("Found %d result(s):\n\n", len(results))
	for i, r := range results {
		printRecord(i+1, r.Similarity, store.Record{
			Category: r.Doc.Category,
			Text:     r.Doc.Text,
			Keywords: r.Doc.Keywords,
			Context:  r.Doc.Context,
		})
	}
	return nil
}

func printRecord(rank int, similarity float32, r store.Record) {
	if similarity >= 0 {
		fmt.Printf("  %d. [%.1f%%] [%s] %s\n", rank, similarity*100, r.Category, r.Text)
	} else {
		fmt.Printf("  %d. [%s] %s\n", rank, r.Category, r.Text)
	}
	if len(r.Keywords) > 0 {
		fmt.Printf("     Keywords: %s\n", strings.Join(r.Keywords, ", "))
	}
	if r.Context != "" && r.Context != "{}" {
		fmt.Printf("     Context: %s\n", truncate(r.Context, 160))
	}
	fmt.Println()
}

// contextJSON passes a stored context through as raw JSON when it parses,
// otherwise drops it rather than emitting invalid output.
func contextJSON(s string) json.RawMessage {
	if s == "" || !json.Valid([]byte(s)) {
		return nil
	}
	return json.RawMessage(s)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
