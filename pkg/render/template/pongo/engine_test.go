package pongo

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestRenderString_ContextAndFilters(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderString(`<h1>{{ title }}</h1>{% if body %}{{ body|safe }}{% endif %}`, map[string]any{
		"title": "Engagement <Letter>",
		"body":  "<p>kept</p>",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Engagement &lt;Letter&gt;") {
		t.Fatalf("title not escaped: %q", out)
	}
	if !strings.Contains(out, "<p>kept</p>") {
		t.Fatalf("safe filter not honoured: %q", out)
	}
}

func TestRenderTemplate_FromFS(t *testing.T) {
	files := fstest.MapFS{
		"templates/shell.tmpl": &fstest.MapFile{
			Data: []byte(`<body>{{ content|safe }}</body>`),
		},
	}
	engine, err := New(WithFS(files), WithExtension(".tmpl"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderTemplate("templates/shell.tmpl", map[string]any{
		"content": "<div>doc</div>",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<body><div>doc</div></body>" {
		t.Fatalf("out = %q", out)
	}
}

func TestRenderTemplate_MissingTemplate(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}), WithExtension(".tmpl"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.RenderTemplate("templates/absent.tmpl", nil); err == nil {
		t.Fatal("expected error for missing template")
	}
}

func TestGlobalContext_MergesIntoRenders(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := engine.GlobalContext(map[string]any{"brand": "AuditKit"}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	out, err := engine.RenderString(`{{ brand }}: {{ title }}`, map[string]any{"title": "Doc"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "AuditKit: Doc" {
		t.Fatalf("out = %q", out)
	}
}
