package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// handleSearchDeployments searches the index, semantically when a vector
// store is attached, by keyword otherwise.
func (s *Server) handleSearchDeployments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}
	category := request.GetString("category", "")

	if s.vectors != nil && s.vectors.Count() > 0 {
		results, err := s.vectors.Search(ctx, query, limit, category)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "Found %d result(s):\n\n", len(results))
		for i, r := range results {
			fmt.Fprintf(&sb, "--- Result %d (similarity: %.4f) ---\n", i+1, r.Similarity)
			writeRecord(&sb, r.Doc.Category, r.Doc.Text, r.Doc.Keywords, r.Doc.Context)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}

	records, err := s.catalog.SearchKeyword(query, category, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(records) == 0 {
		return mcp.NewToolResultText("No results found. Run `deployctx ingest` first to load an index."), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n\n", len(records))
	for i, r := range records {
		fmt.Fprintf(&sb, "--- Result %d ---\n", i+1)
		writeRecord(&sb, r.Category, r.Text, r.Keywords, r.Context)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleListPatterns returns every deployment pattern record.
func (s *Server) handleListPatterns(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, err := s.catalog.ByCategory("patterns")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing patterns: %v", err)), nil
	}
	if len(records) == 0 {
		return mcp.NewToolResultText("No deployment patterns are indexed."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d deployment pattern(s):\n\n", len(records))
	for _, r := range records {
		writeRecord(&sb, r.Category, r.Text, r.Keywords, r.Context)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetIntentActions finds the intent records matching the given phrase
// and returns their contexts, which carry the action sequences.
func (s *Server) handleGetIntentActions(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	intent, err := request.RequireString("intent")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: intent"), nil
	}

	records, err := s.catalog.SearchKeyword(intent, "intents", 5)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("intent lookup: %v", err)), nil
	}
	if len(records) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No indexed intent matches %q.", intent)), nil
	}

	var sb strings.Builder
	for _, r := range records {
		writeRecord(&sb, r.Category, r.Text, r.Keywords, r.Context)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func writeRecord(sb *strings.Builder, category, text string, keywords []string, context string) {
	fmt.Fprintf(sb, "Category: %s\n", category)
	fmt.Fprintf(sb, "Text: %s\n", text)
	if len(keywords) > 0 {
		fmt.Fprintf(sb, "Keywords: %s\n", strings.Join(keywords, ", "))
	}
	if context != "" {
		fmt.Fprintf(sb, "Context: %s\n", context)
	}
	sb.WriteString("\n")
}
