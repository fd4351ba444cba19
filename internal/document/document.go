// Package document defines the generic recursive value that flows through
// every deployctx transformation, plus order-preserving YAML and JSON codecs.
//
// A document is one of three shapes: an ordered mapping of string keys to
// documents, a sequence of documents, or a scalar leaf. Traversal code
// switches on the concrete type rather than inspecting reflection tags.
package document

import (
	"fmt"
	"sort"
)

// Node is a single value in a document tree: *Mapping, Sequence, or Scalar.
type Node interface {
	node()
}

// Scalar is a leaf value: string, bool, int64, float64, or nil.
type Scalar struct {
	Value any
}

func (Scalar) node() {}

// Sequence is an ordered list of nodes.
type Sequence []Node

func (Sequence) node() {}

// Mapping is a set of key/value entries that remembers insertion order.
// Serialization emits keys in the order they were first set.
type Mapping struct {
	keys   []string
	values map[string]Node
}

func (*Mapping) node() {}

// NewMapping returns an empty ordered mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Node)}
}

// Set stores a value under key, appending the key to the order if it is new.
func (m *Mapping) Set(key string, value Node) {
	if m.values == nil {
		m.values = make(map[string]Node)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Node, bool) {
	if m == nil || m.values == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not modify it.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns a deep copy of n sharing no nodes with the original.
func Clone(n Node) Node {
	switch v := n.(type) {
	case *Mapping:
		out := NewMapping()
		for _, k := range v.Keys() {
			child, _ := v.Get(k)
			out.Set(k, Clone(child))
		}
		return out
	case Sequence:
		out := make(Sequence, len(v))
		for i, item := range v {
			out[i] = Clone(item)
		}
		return out
	case Scalar:
		return v
	case nil:
		return nil
	default:
		panic(fmt.Sprintf("document: unknown node type %T", n))
	}
}

// Equal reports whether two trees are deeply equal: same shapes, same key
// order, same scalar values.
func Equal(a, b Node) bool {
	switch av := a.(type) {
	case *Mapping:
		bv, ok := b.(*Mapping)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		bKeys := bv.Keys()
		for i, k := range av.Keys() {
			if bKeys[i] != k {
				return false
			}
			ac, _ := av.Get(k)
			bc, _ := bv.Get(k)
			if !Equal(ac, bc) {
				return false
			}
		}
		return true
	case Sequence:
		bv, ok := b.(Sequence)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Scalar:
		bv, ok := b.(Scalar)
		return ok && av.Value == bv.Value
	case nil:
		return b == nil
	default:
		return false
	}
}

// FromAny converts plain Go values (as produced by encoding/json or tests)
// into a Node. Map keys are emitted in sorted order since Go maps carry no
// insertion order of their own.
func FromAny(v any) Node {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			m.Set(k, FromAny(val[k]))
		}
		return m
	case []any:
		seq := make(Sequence, len(val))
		for i, item := range val {
			seq[i] = FromAny(item)
		}
		return seq
	case []string:
		seq := make(Sequence, len(val))
		for i, s := range val {
			seq[i] = Scalar{Value: s}
		}
		return seq
	case int:
		return Scalar{Value: int64(val)}
	case nil:
		return Scalar{Value: nil}
	default:
		return Scalar{Value: val}
	}
}

// ToAny converts a Node back into plain Go values. Mapping order is lost;
// use the codecs in this package when order matters.
func ToAny(n Node) any {
	switch v := n.(type) {
	case *Mapping:
		out := make(map[string]any, v.Len())
		for _, k := range v.Keys() {
			child, _ := v.Get(k)
			out[k] = ToAny(child)
		}
		return out
	case Sequence:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = ToAny(item)
		}
		return out
	case Scalar:
		return v.Value
	default:
		return nil
	}
}
