package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	dir := t.TempDir()
	f, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Parser != "" || f.Renderer != "" || len(f.Extensions) != 0 {
		t.Fatalf("Load with no file present = %+v, want zero value", f)
	}
}

func TestLoadDecodesFile(t *testing.T) {
	dir := t.TempDir()
	contents := `
renderer = "html"
extensions = ["frontmatter"]

[options.frontmatter]
strict = true
`
	if err := os.WriteFile(filepath.Join(dir, ".inkwell.toml"), []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Renderer != "html" {
		t.Errorf("Renderer = %q, want %q", f.Renderer, "html")
	}
	if len(f.Extensions) != 1 || f.Extensions[0] != "frontmatter" {
		t.Errorf("Extensions = %v, want [frontmatter]", f.Extensions)
	}
	if f.Options["frontmatter"]["strict"] != true {
		t.Errorf("Options[frontmatter][strict] = %v, want true", f.Options["frontmatter"]["strict"])
	}
}
