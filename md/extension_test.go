package md_test

import (
	"testing"

	"github.com/inkwell-md/inkwell/extension"
	_ "github.com/inkwell-md/inkwell/extension/frontmatter"
	"github.com/inkwell-md/inkwell/md"
)

func TestExtensionResolveUnknownName(t *testing.T) {
	_, err := extension.Resolve("no-such-extension", nil)
	if err == nil {
		t.Fatal("Resolve(unregistered name) = nil error, want *md.ExtensionResolutionError")
	}
	resErr, ok := err.(*md.ExtensionResolutionError)
	if !ok {
		t.Fatalf("Resolve error type = %T, want *md.ExtensionResolutionError", err)
	}
	if resErr.Name != "no-such-extension" {
		t.Errorf("ExtensionResolutionError.Name = %q, want %q", resErr.Name, "no-such-extension")
	}
}

func TestExtensionResolveFrontmatter(t *testing.T) {
	ext, err := extension.Resolve("frontmatter", nil)
	if err != nil {
		t.Fatalf("Resolve(frontmatter): %v", err)
	}
	if len(ext.ParserMixins) == 0 {
		t.Fatalf("frontmatter extension has no ParserMixins")
	}
}

func TestExtensionFrontmatterEndToEnd(t *testing.T) {
	ext, err := extension.Resolve("frontmatter", nil)
	if err != nil {
		t.Fatalf("Resolve(frontmatter): %v", err)
	}

	src := "---\ntitle: Hello\ntags:\n  - a\n  - b\n---\n# Hi\n"
	out, err := md.Convert(src, md.HTML, ext)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := "<h1>Hi</h1>\n"
	if out.(string) != want {
		t.Errorf("Convert(%q) = %q, want %q", src, out, want)
	}
}

func TestExtensionFrontmatterLiftsDataOntoDocument(t *testing.T) {
	ext, err := extension.Resolve("frontmatter", nil)
	if err != nil {
		t.Fatalf("Resolve(frontmatter): %v", err)
	}

	p := md.DefaultParser()
	if err := p.Use(ext); err != nil {
		t.Fatalf("Use: %v", err)
	}
	doc, err := p.Parse("---\ntitle: Hello\n---\nbody\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.FrontMatter == nil {
		t.Fatal("Document.FrontMatter is nil, want decoded YAML map")
	}
	if doc.FrontMatter["title"] != "Hello" {
		t.Errorf("FrontMatter[title] = %v, want %q", doc.FrontMatter["title"], "Hello")
	}
}

func TestExtensionFrontmatterOnlyRecognizedAtDocumentStart(t *testing.T) {
	ext, err := extension.Resolve("frontmatter", nil)
	if err != nil {
		t.Fatalf("Resolve(frontmatter): %v", err)
	}

	// The second "---" is a setext-heading underline for the paragraph
	// above it, not a thematic break — exercising that the front-matter
	// extension's priority only wins the race at AtStart, and otherwise
	// ordinary block dispatch proceeds exactly as it would unextended.
	src := "para\n\n---\nnot front matter\n---\n"
	out, err := md.Convert(src, md.HTML, ext)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := "<p>para</p>\n<hr />\n<h2>not front matter</h2>\n"
	if out.(string) != want {
		t.Errorf("Convert(%q) = %q, want %q", src, out, want)
	}
}

func TestExtensionFrontmatterWithoutUseLeavesDashesAsThematicBreak(t *testing.T) {
	// Without the extension registered on this Parser, the leading "---"
	// is ordinary CommonMark: a thematic break, and the closing "---"
	// becomes a setext-heading underline for the line above it.
	src := "---\ntitle: Hello\n---\n"
	out, err := md.Convert(src, md.HTML)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := "<hr />\n<h2>title: Hello</h2>\n"
	if out.(string) != want {
		t.Errorf("Convert(%q) = %q, want %q", src, out, want)
	}
}
