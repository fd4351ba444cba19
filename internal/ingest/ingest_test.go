package ingest

import (
	"context"
	"testing"

	"github.com/deployctx/deployctx/internal/document"
	"github.com/deployctx/deployctx/internal/semindex"
	"github.com/deployctx/deployctx/internal/store"
	"github.com/deployctx/deployctx/internal/vectordb"
)

type unitEmbedder struct{}

func (unitEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func (unitEmbedder) Name() string { return "unit" }

func buildTestIndex(t *testing.T) *semindex.Index {
	t.Helper()
	bundle, err := document.DecodeJSON([]byte(`{
		"user_intents":[{"intent":"deploy a web app","keywords":["deploy"]}],
		"api_endpoints":[{"path":"/start","method":"POST","usage_examples":["e1","e2"]}]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	return semindex.BuildIndex(bundle)
}

func TestRun_CatalogOnly(t *testing.T) {
	catalog, err := store.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer catalog.Close()

	n, err := Run(context.Background(), buildTestIndex(t), Options{Store: catalog})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 3 {
		t.Errorf("ingested %d records, want 3 (1 intent + 2 api usages)", n)
	}

	intents, err := catalog.ByCategory("intents")
	if err != nil {
		t.Fatal(err)
	}
	if len(intents) != 1 || intents[0].Text != "deploy a web app" {
		t.Errorf("intents = %+v", intents)
	}

	usages, err := catalog.ByCategory("api_usage")
	if err != nil {
		t.Fatal(err)
	}
	if len(usages) != 2 || usages[0].Position != 0 || usages[1].Position != 1 {
		t.Errorf("api usages = %+v", usages)
	}
}

func TestRun_WithVectors(t *testing.T) {
	catalog, err := store.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer catalog.Close()

	vectors, err := vectordb.New(unitEmbedder{})
	if err != nil {
		t.Fatal(err)
	}

	n, err := Run(context.Background(), buildTestIndex(t), Options{Store: catalog, Vectors: vectors})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if vectors.Count() != n {
		t.Errorf("vector store has %d docs, want %d", vectors.Count(), n)
	}
}

func TestRun_RequiresStore(t *testing.T) {
	if _, err := Run(context.Background(), buildTestIndex(t), Options{}); err == nil {
		t.Error("expected error without a catalog")
	}
}
