// Package semindex flattens a deployment metadata bundle into a uniform,
// searchable record set for retrieval consumers.
package semindex

import (
	"github.com/deployctx/deployctx/internal/document"
)

// Bundle field names recognized on the input document.
const (
	FieldUserIntents        = "user_intents"
	FieldDeploymentPatterns = "deployment_patterns"
	FieldDeploymentExamples = "deployment_examples"
	FieldAPIEndpoints       = "api_endpoints"
	FieldAnnotatedTemplate  = "annotated_template"
)

// The bundle shapes below are loosely typed on the wire; each is resolved
// once at the record-construction boundary, with every field optional and
// defaulting to its empty value.

type intentEntry struct {
	Intent      string
	Keywords    []string
	Actions     document.Node
	Examples    document.Node
	Suggestions document.Node
}

type patternEntry struct {
	Description string
	Keywords    []string
	Name        string
	Template    string
	Explanation string
	UseCase     string
}

type exampleEntry struct {
	Description string
	Keywords    []string
	Source      *document.Mapping
}

type endpointEntry struct {
	Path           string
	Method         string
	Description    string
	UsageExamples  []string
	CommonPatterns document.Node
}

func decodeIntent(m *document.Mapping) intentEntry {
	return intentEntry{
		Intent:      stringField(m, "intent"),
		Keywords:    stringsField(m, "keywords"),
		Actions:     sequenceField(m, "actions"),
		Examples:    sequenceField(m, "examples"),
		Suggestions: sequenceField(m, "suggestions"),
	}
}

func decodePattern(m *document.Mapping) patternEntry {
	return patternEntry{
		Description: stringField(m, "description"),
		Keywords:    stringsField(m, "keywords"),
		Name:        stringField(m, "name"),
		Template:    stringField(m, "template"),
		Explanation: stringField(m, "explanation"),
		UseCase:     stringField(m, "use_case"),
	}
}

func decodeExample(m *document.Mapping) exampleEntry {
	return exampleEntry{
		Description: stringField(m, "description"),
		Keywords:    stringsField(m, "keywords"),
		Source:      m,
	}
}

func decodeEndpoint(m *document.Mapping) endpointEntry {
	return endpointEntry{
		Path:           stringField(m, "path"),
		Method:         stringField(m, "method"),
		Description:    stringField(m, "description"),
		UsageExamples:  stringsField(m, "usage_examples"),
		CommonPatterns: sequenceField(m, "common_patterns"),
	}
}

// stringField returns the string scalar at key, or "" when the field is
// absent or not a string.
func stringField(m *document.Mapping, key string) string {
	v, ok := m.Get(key)
	if !ok {
		return ""
	}
	s, ok := v.(document.Scalar)
	if !ok {
		return ""
	}
	str, _ := s.Value.(string)
	return str
}

// stringsField returns the string elements of the sequence at key. Absent
// fields and non-string elements contribute nothing.
func stringsField(m *document.Mapping, key string) []string {
	v, ok := m.Get(key)
	if !ok {
		return nil
	}
	seq, ok := v.(document.Sequence)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		if s, ok := item.(document.Scalar); ok {
			if str, ok := s.Value.(string); ok {
				out = append(out, str)
			}
		}
	}
	return out
}

// sequenceField returns a deep copy of the node at key, or an empty sequence
// when absent.
func sequenceField(m *document.Mapping, key string) document.Node {
	v, ok := m.Get(key)
	if !ok {
		return document.Sequence{}
	}
	return document.Clone(v)
}

// mappingList iterates the mapping elements of the list stored at key,
// skipping anything that is not a mapping.
func mappingList(bundle *document.Mapping, key string) []*document.Mapping {
	v, ok := bundle.Get(key)
	if !ok {
		return nil
	}
	seq, ok := v.(document.Sequence)
	if !ok {
		return nil
	}
	out := make([]*document.Mapping, 0, len(seq))
	for _, item := range seq {
		if m, ok := item.(*document.Mapping); ok {
			out = append(out, m)
		}
	}
	return out
}
