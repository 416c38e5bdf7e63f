// Package preview renders the read-only document handed to preview screens
// and PDF export. Controls are disabled, every {name} token is substituted
// (real values first, then samples), and pages break for print.
package preview

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
	"github.com/auditkit/templatebuilder/pkg/variables"
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

// WithItemRegistry overrides the item component registry. The pipeline facade
// passes the same registry to both renderers so the two paths can never
// interpret an item differently.
func WithItemRegistry(registry *items.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.itemRegistry = registry
		}
	}
}

// Renderer implements render.Renderer for the read-only preview.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	items     *items.Registry
	sanitize  func(string) string
}

// New constructs the preview renderer applying any provided options.
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
			return nil, fmt.Errorf("preview renderer: configure template engine: %w", err)
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
	return "preview"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the substituted, read-only document.
func (r *Renderer) Render(ctx context.Context, tpl model.Template, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolverOptions := []variables.Option{}
	if len(options.Values) > 0 {
		resolverOptions = append(resolverOptions, variables.WithValues(options.Values))
	}
	if options.Now != nil {
		resolverOptions = append(resolverOptions, variables.WithClock(options.Now))
	}
	resolver := variables.NewResolver(tpl.Metadata.Variables, resolverOptions...)

	rc := items.RenderContext{
		Mode:       render.ModePreview,
		Substitute: resolver.Substitute,
		Sanitize:   r.sanitize,
	}

	body, err := layout.RenderPages(tpl, r.items, rc)
	if err != nil {
		return nil, fmt.Errorf("preview renderer: %w", err)
	}

	result, err := r.templates.RenderTemplate("templates/preview.tmpl", map[string]any{
		"title":       resolver.Substitute(tpl.Title),
		"description": resolver.Substitute(tpl.Description),
		"theme":       themeClass(tpl.Settings),
		"stylesheet":  defaultStylesheet(),
		"content":     body,
	})
	if err != nil {
		return nil, fmt.Errorf("preview renderer: render shell: %w", err)
	}
	return []byte(result), nil
}

func themeClass(settings model.Settings) string {
	if settings.Theme == "" {
		return "default"
	}
	return settings.Theme
}
