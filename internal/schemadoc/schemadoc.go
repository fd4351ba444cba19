// Package schemadoc renders an annotation schema as a human-readable
// reference page, for authors maintaining deployment templates.
package schemadoc

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/deployctx/deployctx/internal/annotate"
	"github.com/deployctx/deployctx/internal/document"
)

// Markdown renders the schema as a Markdown reference: one section per
// schema path, explanatory metadata as prose and bullet lists, and the raw
// schema as a highlighted appendix.
func Markdown(schema *document.Mapping, title string) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	writeEntries(&sb, schema, nil)

	raw, err := document.EncodeYAML(schema)
	if err != nil {
		return "", fmt.Errorf("encoding schema appendix: %w", err)
	}
	sb.WriteString("## Full schema\n\n```yaml\n")
	sb.Write(raw)
	sb.WriteString("```\n")

	return sb.String(), nil
}

// writeEntries walks the path keys of a schema node, emitting one section
// per entry, depth-first in schema order.
func writeEntries(sb *strings.Builder, node *document.Mapping, path []string) {
	for _, key := range node.Keys() {
		childNode, _ := node.Get(key)
		child, ok := childNode.(*document.Mapping)
		if !ok {
			continue
		}

		if key == annotate.ItemAnnotationsKey && len(path) > 0 {
			itemPath := append(append([]string{}, path[:len(path)-1]...), path[len(path)-1]+"[]")
			writeEntries(sb, child, itemPath)
			continue
		}
		if annotate.IsMetadataKey(key) {
			continue
		}

		entryPath := append(append([]string{}, path...), key)
		writeSection(sb, child, entryPath)
		writeEntries(sb, child, entryPath)
	}
}

func writeSection(sb *strings.Builder, entry *document.Mapping, path []string) {
	depth := min(len(path)+1, 6)
	fmt.Fprintf(sb, "%s %s\n\n", strings.Repeat("#", depth), strings.Join(path, "."))

	if desc, ok := entry.Get(annotate.MarkerPrefix + "description"); ok {
		if s, ok := desc.(document.Scalar); ok {
			if text, ok := s.Value.(string); ok && text != "" {
				fmt.Fprintf(sb, "%s\n\n", text)
			}
		}
	}

	for _, key := range entry.Keys() {
		if !annotate.IsMetadataKey(key) || key == annotate.ItemAnnotationsKey ||
			key == annotate.MarkerPrefix+"description" {
			continue
		}
		value, _ := entry.Get(key)
		seq, ok := value.(document.Sequence)
		if !ok {
			continue
		}
		fmt.Fprintf(sb, "**%s:**\n\n", metadataTitle(key))
		for _, item := range seq {
			if s, ok := item.(document.Scalar); ok {
				fmt.Fprintf(sb, "- %v\n", s.Value)
			}
		}
		sb.WriteString("\n")
	}
}

// metadataTitle turns a reserved key like _llm_best_practices into
// "Best practices".
func metadataTitle(key string) string {
	name := strings.TrimPrefix(key, annotate.MarkerPrefix)
	name = strings.ReplaceAll(name, "_", " ")
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// RenderHTML converts the Markdown reference into a standalone HTML page,
// with YAML blocks syntax-highlighted.
func RenderHTML(markdown, title string) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	var out bytes.Buffer
	err = tmpl.Execute(&out, map[string]any{
		"Title": title,
		"Body":  template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return out.Bytes(), nil
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.6; color: #1f2328; }
pre { background: #f6f8fa; padding: 1rem; border-radius: 6px; overflow-x: auto; }
code { font-family: ui-monospace, "SF Mono", Menlo, monospace; font-size: 0.9em; }
h1, h2, h3, h4 { border-bottom: 1px solid #d1d9e0; padding-bottom: 0.3em; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`
