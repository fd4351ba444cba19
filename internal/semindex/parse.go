package semindex

import (
	"github.com/deployctx/deployctx/internal/document"
)

// IsIndexDocument reports whether a document is a serialized index rather
// than a metadata bundle: a mapping whose every key is a record category.
func IsIndexDocument(n document.Node) bool {
	root, ok := n.(*document.Mapping)
	if !ok || root.Len() == 0 {
		return false
	}
	known := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		known[string(c)] = true
	}
	for _, key := range root.Keys() {
		if !known[key] {
			return false
		}
	}
	return true
}

// ParseIndex reads a serialized index document back into an Index. Decoding
// is defensive like BuildIndex: absent categories and mistyped entries
// degrade to empty values.
func ParseIndex(n document.Node) *Index {
	ix := &Index{}
	root, ok := n.(*document.Mapping)
	if !ok {
		return ix
	}

	for _, c := range Categories {
		var records []Record
		for _, m := range mappingList(root, string(c)) {
			var context document.Node
			if v, ok := m.Get("context"); ok {
				context = document.Clone(v)
			} else {
				context = document.NewMapping()
			}
			records = append(records, Record{
				Text:     stringField(m, "text"),
				Keywords: stringsField(m, "keywords"),
				Context:  context,
			})
		}
		switch c {
		case CategoryIntents:
			ix.Intents = records
		case CategoryPatterns:
			ix.Patterns = records
		case CategoryExamples:
			ix.Examples = records
		case CategoryAPIUsage:
			ix.APIUsage = records
		case CategoryTemplates:
			ix.Templates = records
		}
	}
	return ix
}
