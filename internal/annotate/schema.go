// Package annotate overlays structural explanations onto configuration
// documents. A schema is itself a document mapping: keys carrying the
// reserved marker prefix hold explanatory metadata, every other key is a
// path segment matched against the traversed document.
package annotate

import (
	"fmt"
	"strings"

	"github.com/deployctx/deployctx/internal/document"
)

// MarkerPrefix distinguishes reserved metadata keys from path keys inside an
// annotation schema.
const MarkerPrefix = "_llm_"

// ItemAnnotationsKey holds the nested schema applied to each mapping element
// of a sequence. It is reserved but structural: it never appears in an
// emitted annotation sibling.
const ItemAnnotationsKey = MarkerPrefix + "item_annotations"

// IsMetadataKey reports whether a schema key is reserved metadata rather
// than a path segment.
func IsMetadataKey(key string) bool {
	return strings.HasPrefix(key, MarkerPrefix)
}

// SiblingKey derives the annotation sibling key inserted next to a matched
// document key.
func SiblingKey(key string) string {
	return "_" + key + "_annotations"
}

// ParseSchema validates that a loaded document can serve as an annotation
// schema, which must be a mapping at the root.
func ParseSchema(n document.Node) (*document.Mapping, error) {
	m, ok := n.(*document.Mapping)
	if !ok {
		return nil, fmt.Errorf("annotation schema root must be a mapping, got %T", n)
	}
	return m, nil
}

// LoadSchema reads an annotation schema from a YAML or JSON file.
func LoadSchema(path string) (*document.Mapping, error) {
	n, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	return ParseSchema(n)
}
