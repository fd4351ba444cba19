package store

import (
	"path/filepath"
	"testing"
)

func testRecords() []Record {
	return []Record{
		{ID: "a", Category: "intents", Position: 0, Text: "deploy a web app", Keywords: []string{"deploy", "web"}, Context: `{"actions":[]}`},
		{ID: "b", Category: "intents", Position: 1, Text: "scale a service", Keywords: []string{"scale"}, Context: `{}`},
		{ID: "c", Category: "patterns", Position: 0, Text: "API with database", Keywords: []string{"api", "database"}, Context: `{"name":"api-db"}`},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.ReplaceAll(testRecords()); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	return s
}

func TestReplaceAll_IsFullRefresh(t *testing.T) {
	s := openTestStore(t)

	if err := s.ReplaceAll(testRecords()[:1]); err != nil {
		t.Fatalf("second ReplaceAll: %v", err)
	}
	n, err := s.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1 after refresh", n)
	}
}

func TestByCategory_Order(t *testing.T) {
	s := openTestStore(t)

	records, err := s.ByCategory("intents")
	if err != nil {
		t.Fatalf("ByCategory: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != "a" || records[1].ID != "b" {
		t.Errorf("order = %s, %s; want a, b", records[0].ID, records[1].ID)
	}
	if records[0].Keywords[1] != "web" {
		t.Errorf("keywords = %v", records[0].Keywords)
	}
}

func TestSearchKeyword(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		name     string
		query    string
		category string
		wantIDs  []string
	}{
		{"match in text", "web", "", []string{"a"}},
		{"match in keywords", "database", "", []string{"c"}},
		{"case insensitive", "DEPLOY", "", []string{"a"}},
		{"category restricted", "a", "patterns", []string{"c"}},
		{"no match", "kafka", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.SearchKeyword(tt.query, tt.category, 10)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.wantIDs))
			}
			for i, r := range got {
				if r.ID != tt.wantIDs[i] {
					t.Errorf("result[%d] = %s, want %s", i, r.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestSearchKeyword_EscapesWildcards(t *testing.T) {
	s := openTestStore(t)
	// A literal percent sign must not act as a wildcard.
	got, err := s.SearchKeyword("%", "", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d results for literal %%, want 0", len(got))
	}
}

func TestCategories(t *testing.T) {
	s := openTestStore(t)
	counts, err := s.Categories()
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if counts["intents"] != 2 || counts["patterns"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "catalog.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.ReplaceAll(testRecords()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	n, err := s.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}
