// Package vectordb stores index records in an embedded vector database for
// semantic retrieval.
package vectordb

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/deployctx/deployctx/internal/embeddings"
)

const collectionName = "records"

// RecordDoc is one index record prepared for vector storage. Context carries
// the record's context subtree as serialized JSON so a retrieval consumer
// can render the full match.
type RecordDoc struct {
	ID       string
	Category string
	Text     string
	Keywords []string
	Context  string
}

// SearchResult pairs a stored record with its similarity score.
type SearchResult struct {
	Doc        RecordDoc
	Similarity float32
}

// Store is a chromem-go backed vector store over index records.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// New creates an in-memory Store using the given embedder.
func New(embedder embeddings.Embedder) (*Store, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &Store{db: db, collection: col, embedFunc: ef}, nil
}

// Add stores records, embedding text and keywords together so keyword-only
// matches still surface semantically.
func (s *Store) Add(ctx context.Context, docs []RecordDoc) error {
	if len(docs) == 0 {
		return nil
	}

	converted := make([]chromem.Document, len(docs))
	for i, d := range docs {
		content := d.Text
		if len(d.Keywords) > 0 {
			content += "\nkeywords: " + strings.Join(d.Keywords, ", ")
		}
		converted[i] = chromem.Document{
			ID:      d.ID,
			Content: content,
			Metadata: map[string]string{
				"category": d.Category,
				"text":     d.Text,
				"keywords": strings.Join(d.Keywords, ","),
				"context":  d.Context,
			},
		}
	}

	return s.collection.AddDocuments(ctx, converted, 1)
}

// Search returns the records most similar to query, optionally restricted to
// one category.
func (s *Store) Search(ctx context.Context, query string, limit int, category string) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	// chromem-go requires nResults <= collection size.
	if limit > count {
		limit = count
	}

	var where map[string]string
	if category != "" {
		where = map[string]string{"category": category}
	}

	results, err := s.collection.Query(ctx, query, limit, where, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = SearchResult{
			Doc: RecordDoc{
				ID:       r.ID,
				Category: r.Metadata["category"],
				Text:     r.Metadata["text"],
				Keywords: splitKeywords(r.Metadata["keywords"]),
				Context:  r.Metadata["context"],
			},
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

// Count returns the number of stored records.
func (s *Store) Count() int {
	return s.collection.Count()
}

// Persist writes the store to dir as a compressed snapshot.
func (s *Store) Persist(dir string) error {
	return s.db.ExportToFile(snapshotPath(dir), true, "")
}

// Load restores the store from a snapshot written by Persist.
func (s *Store) Load(dir string) error {
	if err := s.db.ImportFromFile(snapshotPath(dir), ""); err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}

	// Re-acquire the collection reference after import.
	col := s.db.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found in snapshot", collectionName)
	}
	s.collection = col
	return nil
}

func snapshotPath(dir string) string {
	return filepath.Join(dir, "vectors.gob.gz")
}

func splitKeywords(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}
