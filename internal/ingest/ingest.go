// Package ingest loads a built index into the record catalog and, when
// embeddings are configured, the vector store.
package ingest

import (
	"context"
	"fmt"

	"github.com/deployctx/deployctx/internal/progress"
	"github.com/deployctx/deployctx/internal/semindex"
	"github.com/deployctx/deployctx/internal/store"
	"github.com/deployctx/deployctx/internal/vectordb"
)

// vectorBatchSize bounds how many records are embedded per store call so the
// progress bar advances at a useful granularity.
const vectorBatchSize = 16

// Options selects the ingest targets. Store is required; Vectors is nil when
// semantic search is not configured.
type Options struct {
	Store    *store.Store
	Vectors  *vectordb.Store
	Reporter progress.Reporter
}

// Run replaces the catalog contents with the index's records and embeds them
// into the vector store when one is provided. It returns the number of
// records ingested.
func Run(ctx context.Context, ix *semindex.Index, opts Options) (int, error) {
	if opts.Store == nil {
		return 0, fmt.Errorf("ingest requires a record catalog")
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = progress.NopReporter{}
	}

	flat, err := ix.Flatten()
	if err != nil {
		return 0, fmt.Errorf("flattening index: %w", err)
	}

	rows := make([]store.Record, len(flat))
	for i, r := range flat {
		rows[i] = store.Record{
			ID:       r.ID,
			Category: string(r.Category),
			Position: r.Position,
			Text:     r.Text,
			Keywords: r.Keywords,
			Context:  r.Context,
		}
	}
	if err := opts.Store.ReplaceAll(rows); err != nil {
		return 0, fmt.Errorf("writing catalog: %w", err)
	}

	if opts.Vectors == nil {
		return len(flat), nil
	}

	reporter.Start(len(flat))
	defer reporter.Finish()

	for start := 0; start < len(flat); start += vectorBatchSize {
		end := min(start+vectorBatchSize, len(flat))
		batch := make([]vectordb.RecordDoc, 0, end-start)
		for _, r := range flat[start:end] {
			batch = append(batch, vectordb.RecordDoc{
				ID:       r.ID,
				Category: string(r.Category),
				Text:     r.Text,
				Keywords: r.Keywords,
				Context:  r.Context,
			})
		}
		if err := opts.Vectors.Add(ctx, batch); err != nil {
			return 0, fmt.Errorf("embedding records %d-%d: %w", start, end-1, err)
		}
		reporter.Update(end, fmt.Sprintf("embedded %d/%d", end, len(flat)))
	}

	return len(flat), nil
}
