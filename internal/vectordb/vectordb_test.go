package vectordb

import (
	"context"
	"strings"
	"testing"
)

// axisEmbedder maps texts onto fixed axes so similarity ordering is
// deterministic: texts mentioning "web" align with one axis, everything else
// with another.
type axisEmbedder struct{}

func (axisEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if strings.Contains(t, "web") {
			out[i] = []float32{1, 0}
		} else {
			out[i] = []float32{0, 1}
		}
	}
	return out, nil
}

func (axisEmbedder) Name() string { return "axis" }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(axisEmbedder{})
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	return s
}

func sampleDocs() []RecordDoc {
	return []RecordDoc{
		{ID: "1", Category: "intents", Text: "deploy a web app", Keywords: []string{"deploy", "web"}, Context: `{"actions":[]}`},
		{ID: "2", Category: "patterns", Text: "database with volume", Keywords: []string{"database"}, Context: `{"name":"db"}`},
	}
}

func TestStore_AddAndSearch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Add(ctx, sampleDocs()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if s.Count() != 2 {
		t.Fatalf("count = %d, want 2", s.Count())
	}

	results, err := s.Search(ctx, "web application", 10, "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Doc.ID != "1" {
		t.Errorf("top result = %s, want 1", results[0].Doc.ID)
	}
	if results[0].Doc.Context != `{"actions":[]}` {
		t.Errorf("context = %q", results[0].Doc.Context)
	}
	if len(results[0].Doc.Keywords) != 2 {
		t.Errorf("keywords = %v", results[0].Doc.Keywords)
	}
}

func TestStore_CategoryFilter(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if err := s.Add(ctx, sampleDocs()); err != nil {
		t.Fatalf("add: %v", err)
	}

	results, err := s.Search(ctx, "web application", 10, "patterns")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].Doc.Category != "patterns" {
		t.Errorf("results = %+v, want only patterns", results)
	}
}

func TestStore_SearchEmpty(t *testing.T) {
	s := newTestStore(t)
	results, err := s.Search(context.Background(), "anything", 5, "")
	if err != nil {
		t.Fatalf("search on empty store: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results from empty store", len(results))
	}
}

func TestStore_PersistAndLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s := newTestStore(t)
	if err := s.Add(ctx, sampleDocs()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Persist(dir); err != nil {
		t.Fatalf("persist: %v", err)
	}

	restored := newTestStore(t)
	if err := restored.Load(dir); err != nil {
		t.Fatalf("load: %v", err)
	}
	if restored.Count() != 2 {
		t.Errorf("restored count = %d, want 2", restored.Count())
	}
}
