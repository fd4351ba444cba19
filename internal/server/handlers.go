package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/deployctx/deployctx/internal/store"
)

// recordJSON is the wire form of a catalog record. Context is raw JSON so
// the original structure passes through untouched.
type recordJSON struct {
	ID         string          `json:"id"`
	Category   string          `json:"category"`
	Text       string          `json:"text"`
	Keywords   []string        `json:"keywords"`
	Context    json.RawMessage `json:"context"`
	Similarity *float32        `json:"similarity,omitempty"`
}

func toRecordJSON(r store.Record) recordJSON {
	keywords := r.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	context := json.RawMessage(r.Context)
	if len(context) == 0 {
		context = json.RawMessage("{}")
	}
	return recordJSON{
		ID:       r.ID,
		Category: r.Category,
		Text:     r.Text,
		Keywords: keywords,
		Context:  context,
	}
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	counts, err := s.catalog.Categories()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": counts})
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	records, err := s.catalog.ByCategory(category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]recordJSON, 0, len(records))
	for _, rec := range records {
		out = append(out, toRecordJSON(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	category := r.URL.Query().Get("category")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	semantic := r.URL.Query().Get("semantic") == "true"

	if semantic {
		s.handleSemanticSearch(w, r, query, category, limit)
		return
	}

	records, err := s.catalog.SearchKeyword(query, category, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]recordJSON, 0, len(records))
	for _, rec := range records {
		out = append(out, toRecordJSON(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSemanticSearch(w http.ResponseWriter, r *http.Request, query, category string, limit int) {
	if s.vectors == nil {
		writeError(w, http.StatusBadRequest, "semantic search is not configured; set an embedding_provider and re-run ingest")
		return
	}

	results, err := s.vectors.Search(r.Context(), query, limit, category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]recordJSON, 0, len(results))
	for _, res := range results {
		similarity := res.Similarity
		keywords := res.Doc.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		context := json.RawMessage(res.Doc.Context)
		if len(context) == 0 {
			context = json.RawMessage("{}")
		}
		out = append(out, recordJSON{
			ID:         res.Doc.ID,
			Category:   res.Doc.Category,
			Text:       res.Doc.Text,
			Keywords:   keywords,
			Context:    context,
			Similarity: &similarity,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// The status line is already gone; nothing useful left to do.
		return
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
