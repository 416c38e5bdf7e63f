// Package canvas renders the interactive authoring surface. Sections are
// absolutely positioned from their canvas geometry, controls are live, and
// variable tokens stay verbatim so the author can see which positions are
// dynamic.
package canvas

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/auditkit/templatebuilder/pkg/model"
	"github.com/auditkit/templatebuilder/pkg/render"
	rendertemplate "github.com/auditkit/templatebuilder/pkg/render/template"
	"github.com/auditkit/templatebuilder/pkg/render/template/pongo"
	"github.com/auditkit/templatebuilder/pkg/renderers/items"
	"github.com/auditkit/templatebuilder/pkg/renderers/layout"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	itemRegistry     *items.Registry
}

// WithTemplatesFS supplies an alternate shell bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads the shell bundle from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithItemRegistry overrides the item component registry. Sharing one
// registry with the preview renderer is what keeps both paths interpreting
// items identically.
func WithItemRegistry(registry *items.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.itemRegistry = registry
		}
	}
}

// Renderer implements render.Renderer for the authoring canvas.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	items     *items.Registry
	sanitize  func(string) string
}

// New constructs the canvas renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.itemRegistry == nil {
		cfg.itemRegistry = items.NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("canvas renderer: configure template engine: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		items:     cfg.itemRegistry,
		sanitize:  items.NewSanitizer(),
	}, nil
}

func (r *Renderer) Name() string {
	return "canvas"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the full canvas document. Tokens are never substituted
// here; RenderOptions.Values is deliberately ignored.
func (r *Renderer) Render(ctx context.Context, tpl model.Template, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc := items.RenderContext{
		Mode:       render.ModeCanvas,
		Substitute: func(content string) string { return content },
		Sanitize:   r.sanitize,
	}

	body, err := layout.RenderPages(tpl, r.items, rc)
	if err != nil {
		return nil, fmt.Errorf("canvas renderer: %w", err)
	}

	result, err := r.templates.RenderTemplate("templates/canvas.tmpl", map[string]any{
		"title":       tpl.Title,
		"description": tpl.Description,
		"theme":       themeClass(tpl.Settings),
		"stylesheet":  defaultStylesheet(),
		"content":     body,
	})
	if err != nil {
		return nil, fmt.Errorf("canvas renderer: render shell: %w", err)
	}
	return []byte(result), nil
}

func themeClass(settings model.Settings) string {
	if settings.Theme == "" {
		return "default"
	}
	return settings.Theme
}
