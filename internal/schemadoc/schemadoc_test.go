package schemadoc

import (
	"strings"
	"testing"

	"github.com/deployctx/deployctx/internal/annotate"
	"github.com/deployctx/deployctx/internal/document"
)

const testSchema = `
application:
  _llm_description: Root configuration for an application deployment
  name:
    _llm_description: Unique deployment name
    _llm_examples:
      - my-web-app
      - api-backend
  pods:
    _llm_description: Container workloads for this deployment
    _llm_item_annotations:
      image:
        _llm_description: Fully qualified container image reference
`

func testMapping(t *testing.T) *document.Mapping {
	t.Helper()
	node, err := document.DecodeYAML([]byte(testSchema))
	if err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	schema, err := annotate.ParseSchema(node)
	if err != nil {
		t.Fatalf("ParseSchema: %v", err)
	}
	return schema
}

func TestMarkdownSections(t *testing.T) {
	md, err := Markdown(testMapping(t), "Deployment Schema Reference")
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}

	wantLines := []string{
		"# Deployment Schema Reference",
		"## application",
		"Root configuration for an application deployment",
		"### application.name",
		"**Examples:**",
		"- my-web-app",
		"### application.pods",
		"#### application.pods[].image",
		"Fully qualified container image reference",
		"## Full schema",
		"```yaml",
	}
	for _, want := range wantLines {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
}

func TestMarkdownDescriptionsNotListed(t *testing.T) {
	md, err := Markdown(testMapping(t), "Reference")
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if strings.Contains(md, "**Description:**") {
		t.Error("description rendered as a bullet section instead of prose")
	}
	if strings.Contains(md, "**Item annotations:**") {
		t.Error("item annotations rendered as a metadata section")
	}
}

func TestRenderHTML(t *testing.T) {
	md, err := Markdown(testMapping(t), "Deployment Schema Reference")
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}

	page, err := RenderHTML(md, "Deployment Schema Reference")
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	html := string(page)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Deployment Schema Reference</title>",
		`<h2 id="application">application</h2>`,
		"my-web-app",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestRenderHTMLDefaultSchema(t *testing.T) {
	md, err := Markdown(annotate.DefaultSchema(), "Reference")
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if _, err := RenderHTML(md, "Reference"); err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
}
