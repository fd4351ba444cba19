package annotate

import (
	"github.com/deployctx/deployctx/internal/document"
)

// Annotate walks doc and, for every mapping key with a matching schema
// entry, inserts a sibling entry holding that entry's explanatory metadata.
// The result is a fresh tree; doc and schema are never mutated or aliased.
//
// Matching is path-exact: once a document key has no schema entry, nothing
// beneath it is annotated and the subtree is copied unchanged. Annotating an
// already-annotated document re-derives sibling keys, so callers must
// annotate each original document exactly once.
func Annotate(doc document.Node, schema *document.Mapping) document.Node {
	switch v := doc.(type) {
	case *document.Mapping:
		return annotateMapping(v, schema)
	case document.Sequence:
		return annotateSequence(v, schema)
	default:
		return document.Clone(doc)
	}
}

func annotateMapping(m *document.Mapping, schema *document.Mapping) document.Node {
	result := document.NewMapping()
	for _, key := range m.Keys() {
		value, _ := m.Get(key)
		entry, ok := schemaEntry(schema, key)
		if !ok {
			result.Set(key, Annotate(value, nil))
			continue
		}
		result.Set(SiblingKey(key), metadataOf(entry))
		result.Set(key, Annotate(value, pathChildren(entry)))
	}
	return result
}

func annotateSequence(seq document.Sequence, schema *document.Mapping) document.Node {
	itemSchema := itemAnnotations(schema)
	result := make(document.Sequence, len(seq))
	for i, item := range seq {
		if _, isMapping := item.(*document.Mapping); isMapping {
			result[i] = Annotate(item, itemSchema)
		} else {
			result[i] = document.Clone(item)
		}
	}
	return result
}

// schemaEntry looks up the schema child for a document key. Only mapping
// entries can annotate; anything else is ignored.
func schemaEntry(schema *document.Mapping, key string) (*document.Mapping, bool) {
	if schema == nil || IsMetadataKey(key) {
		return nil, false
	}
	child, ok := schema.Get(key)
	if !ok {
		return nil, false
	}
	m, ok := child.(*document.Mapping)
	return m, ok
}

// metadataOf collects the reserved metadata fields of a schema entry into
// the mapping emitted as the annotation sibling. The item-annotations key is
// schema plumbing, not an explanation, and is excluded.
func metadataOf(entry *document.Mapping) *document.Mapping {
	meta := document.NewMapping()
	for _, k := range entry.Keys() {
		if !IsMetadataKey(k) || k == ItemAnnotationsKey {
			continue
		}
		v, _ := entry.Get(k)
		meta.Set(k, document.Clone(v))
	}
	return meta
}

// pathChildren returns the schema to descend with: the non-reserved children
// of a schema entry. The item-annotations key rides along so that a matched
// sequence value can still find its element schema.
func pathChildren(entry *document.Mapping) *document.Mapping {
	children := document.NewMapping()
	for _, k := range entry.Keys() {
		if IsMetadataKey(k) && k != ItemAnnotationsKey {
			continue
		}
		v, _ := entry.Get(k)
		children.Set(k, v)
	}
	return children
}

// itemAnnotations returns the element schema for sequence items, or nil when
// the schema defines none.
func itemAnnotations(schema *document.Mapping) *document.Mapping {
	if schema == nil {
		return nil
	}
	child, ok := schema.Get(ItemAnnotationsKey)
	if !ok {
		return nil
	}
	m, ok := child.(*document.Mapping)
	if !ok {
		return nil
	}
	return m
}
