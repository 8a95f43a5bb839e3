package template

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestRenderFromFS(t *testing.T) {
	files := fstest.MapFS{
		"doc.tpl": &fstest.MapFile{Data: []byte("package {{ package }}\n")},
	}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	out, err := engine.Render("doc", map[string]any{"package": "fleet"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if out != "package fleet\n" {
		t.Fatalf("Render() = %q", out)
	}

	if _, err := engine.Render("missing", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestRenderString(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	out, err := engine.RenderString("module {{ path }}", map[string]any{"path": "example.com/fleet"})
	if err != nil {
		t.Fatalf("RenderString() error: %v", err)
	}
	if !strings.Contains(out, "example.com/fleet") {
		t.Fatalf("RenderString() = %q", out)
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error without a template source")
	}
}
