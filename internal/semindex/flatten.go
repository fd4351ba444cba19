package semindex

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/deployctx/deployctx/internal/document"
)

// FlatRecord is a category-tagged record with serialized context, ready for
// the catalog and the vector store. Position is the record's source order
// within its category.
type FlatRecord struct {
	ID       string
	Category Category
	Position int
	Text     string
	Keywords []string
	Context  string
}

// Flatten expands the index into one flat record list, category by category
// in index-document order, assigning fresh IDs.
func (ix *Index) Flatten() ([]FlatRecord, error) {
	var out []FlatRecord
	for _, c := range Categories {
		for i, r := range ix.Records(c) {
			context := r.Context
			if context == nil {
				context = document.NewMapping()
			}
			encoded, err := document.EncodeJSON(context)
			if err != nil {
				return nil, fmt.Errorf("encoding context for %s[%d]: %w", c, i, err)
			}
			out = append(out, FlatRecord{
				ID:       uuid.NewString(),
				Category: c,
				Position: i,
				Text:     r.Text,
				Keywords: r.Keywords,
				Context:  strings.TrimRight(string(encoded), "\n"),
			})
		}
	}
	return out, nil
}
