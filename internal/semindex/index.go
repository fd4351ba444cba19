package semindex

import (
	"fmt"

	"github.com/deployctx/deployctx/internal/document"
)

// Category names a record list in the index document.
type Category string

const (
	CategoryIntents   Category = "intents"
	CategoryPatterns  Category = "patterns"
	CategoryExamples  Category = "examples"
	CategoryAPIUsage  Category = "api_usage"
	CategoryTemplates Category = "templates"
)

// Categories lists every record category in index-document order.
var Categories = []Category{
	CategoryIntents,
	CategoryPatterns,
	CategoryExamples,
	CategoryAPIUsage,
	CategoryTemplates,
}

// placeholderName stands in for a template whose application name is absent.
const placeholderName = "unnamed application"

// Record is the normalized unit every bundle element is flattened into.
// Text is the human-readable summary, Keywords drive keyword search, and
// Context preserves whatever the retrieval consumer needs to render a match.
type Record struct {
	Text     string
	Keywords []string
	Context  document.Node
}

// Index is the full record set produced from one metadata bundle. All five
// lists are always present in the serialized form, empty when their source
// category was absent.
type Index struct {
	Intents   []Record
	Patterns  []Record
	Examples  []Record
	APIUsage  []Record
	Templates []Record
}

// Records returns the list for the given category.
func (ix *Index) Records(c Category) []Record {
	switch c {
	case CategoryIntents:
		return ix.Intents
	case CategoryPatterns:
		return ix.Patterns
	case CategoryExamples:
		return ix.Examples
	case CategoryAPIUsage:
		return ix.APIUsage
	case CategoryTemplates:
		return ix.Templates
	default:
		return nil
	}
}

// Len returns the total record count across all categories.
func (ix *Index) Len() int {
	n := 0
	for _, c := range Categories {
		n += len(ix.Records(c))
	}
	return n
}

// BuildIndex flattens a metadata bundle into an Index. Field access is
// defensive throughout: missing or mistyped fields degrade to empty values,
// never to an error. Record order follows source-element order; api_usage is
// endpoint-major, then example order within an endpoint.
func BuildIndex(bundle document.Node) *Index {
	ix := &Index{}
	root, ok := bundle.(*document.Mapping)
	if !ok {
		return ix
	}

	for _, m := range mappingList(root, FieldUserIntents) {
		entry := decodeIntent(m)
		context := document.NewMapping()
		context.Set("actions", entry.Actions)
		context.Set("examples", entry.Examples)
		context.Set("suggestions", entry.Suggestions)
		ix.Intents = append(ix.Intents, Record{
			Text:     entry.Intent,
			Keywords: entry.Keywords,
			Context:  context,
		})
	}

	for _, m := range mappingList(root, FieldDeploymentPatterns) {
		entry := decodePattern(m)
		context := document.NewMapping()
		context.Set("name", document.Scalar{Value: entry.Name})
		context.Set("template", document.Scalar{Value: entry.Template})
		context.Set("explanation", document.Scalar{Value: entry.Explanation})
		context.Set("use_case", document.Scalar{Value: entry.UseCase})
		ix.Patterns = append(ix.Patterns, Record{
			Text:     entry.Description,
			Keywords: entry.Keywords,
			Context:  context,
		})
	}

	for _, m := range mappingList(root, FieldDeploymentExamples) {
		entry := decodeExample(m)
		ix.Examples = append(ix.Examples, Record{
			Text:     entry.Description,
			Keywords: entry.Keywords,
			Context:  document.Clone(entry.Source),
		})
	}

	// Fan-out: one record per usage example, all sharing the endpoint context.
	for _, m := range mappingList(root, FieldAPIEndpoints) {
		entry := decodeEndpoint(m)
		context := document.NewMapping()
		context.Set("path", document.Scalar{Value: entry.Path})
		context.Set("method", document.Scalar{Value: entry.Method})
		context.Set("description", document.Scalar{Value: entry.Description})
		context.Set("patterns", entry.CommonPatterns)
		for _, example := range entry.UsageExamples {
			ix.APIUsage = append(ix.APIUsage, Record{
				Text:    example,
				Context: context,
			})
		}
	}

	if template, ok := root.Get(FieldAnnotatedTemplate); ok {
		name, url := templateIdentity(template)
		displayName := name
		if displayName == "" {
			displayName = placeholderName
		}
		ix.Templates = append(ix.Templates, Record{
			Text:     fmt.Sprintf("Deployment template for %s", displayName),
			Keywords: []string{name, url},
			Context:  document.Clone(template),
		})
	}

	return ix
}

// templateIdentity digs the application name and url out of an annotated
// template. Annotation siblings on the template do not interfere since only
// the raw application mapping is consulted.
func templateIdentity(template document.Node) (name, url string) {
	root, ok := template.(*document.Mapping)
	if !ok {
		return "", ""
	}
	appNode, ok := root.Get("application")
	if !ok {
		return "", ""
	}
	app, ok := appNode.(*document.Mapping)
	if !ok {
		return "", ""
	}
	return stringField(app, "name"), stringField(app, "url")
}

// Document renders the index as a document tree for serialization. Every
// category key is present, keyword lists are never null, and insertion order
// matches Categories.
func (ix *Index) Document() document.Node {
	out := document.NewMapping()
	for _, c := range Categories {
		records := ix.Records(c)
		seq := make(document.Sequence, 0, len(records))
		for _, r := range records {
			seq = append(seq, recordDocument(r))
		}
		out.Set(string(c), seq)
	}
	return out
}

func recordDocument(r Record) document.Node {
	m := document.NewMapping()
	m.Set("text", document.Scalar{Value: r.Text})
	keywords := make(document.Sequence, 0, len(r.Keywords))
	for _, k := range r.Keywords {
		keywords = append(keywords, document.Scalar{Value: k})
	}
	m.Set("keywords", keywords)
	context := r.Context
	if context == nil {
		context = document.NewMapping()
	}
	m.Set("context", context)
	return m
}
