// Package orchestrator coordinates the rendering pipeline: interactive
// canvas, read-only preview, and export all render from one shared model and
// one shared item registry, which is what keeps the three surfaces visually
// consistent.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/auditkit/templatebuilder/pkg/export"
	"github.com/auditkit/templatebuilder/pkg/model"
	"github.com/auditkit/templatebuilder/pkg/render"
	"github.com/auditkit/templatebuilder/pkg/renderers/canvas"
	"github.com/auditkit/templatebuilder/pkg/renderers/items"
	"github.com/auditkit/templatebuilder/pkg/renderers/preview"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithItemRegistry injects a custom item component registry shared by every
// renderer the orchestrator constructs.
func WithItemRegistry(registry *items.Registry) Option {
	return func(o *Orchestrator) {
		o.itemRegistry = registry
	}
}

// WithRegistry injects a renderer registry. Renderers named "canvas" and
// "preview" are still provisioned when absent.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithExporter overrides the export collaborator (default: print HTML
// produced from the preview renderer).
func WithExporter(exporter export.Exporter) Option {
	return func(o *Orchestrator) {
		o.exporter = exporter
	}
}

// Orchestrator owns the renderer registry and export seam. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
type Orchestrator struct {
	registry      *render.Registry
	itemRegistry  *items.Registry
	exporter      export.Exporter
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Canvas renders the interactive authoring surface.
func (o *Orchestrator) Canvas(ctx context.Context, tpl model.Template) ([]byte, error) {
	return o.renderWith(ctx, "canvas", tpl, render.RenderOptions{})
}

// Preview renders the read-only substituted document. Values may supply real
// variable values; absent names fall back to samples.
func (o *Orchestrator) Preview(ctx context.Context, tpl model.Template, options render.RenderOptions) ([]byte, error) {
	return o.renderWith(ctx, "preview", tpl, options)
}

// Export produces the export file body for the external PDF collaborator.
func (o *Orchestrator) Export(ctx context.Context, tpl model.Template, options render.RenderOptions) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	out, err := o.exporter.Export(ctx, tpl, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: export: %w", err)
	}
	return out, nil
}

// Render dispatches to a named renderer for callers that registered their
// own.
func (o *Orchestrator) Render(ctx context.Context, name string, tpl model.Template, options render.RenderOptions) ([]byte, error) {
	return o.renderWith(ctx, name, tpl, options)
}

func (o *Orchestrator) renderWith(ctx context.Context, name string, tpl model.Template, options render.RenderOptions) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	renderer, err := o.registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	out, err := renderer.Render(ctx, tpl, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render %s: %w", name, err)
	}
	return out, nil
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

func (o *Orchestrator) applyDefaults() {
	if o.itemRegistry == nil {
		o.itemRegistry = items.NewDefaultRegistry()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
	}

	var previewRenderer render.Renderer
	if _, err := o.registry.Get("preview"); err != nil {
		renderer, err := preview.New(preview.WithItemRegistry(o.itemRegistry))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: preview renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
		previewRenderer = renderer
	} else {
		previewRenderer, _ = o.registry.Get("preview")
	}

	if _, err := o.registry.Get("canvas"); err != nil {
		renderer, err := canvas.New(canvas.WithItemRegistry(o.itemRegistry))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: canvas renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
	}

	if o.exporter == nil {
		exporter, err := export.NewHTMLExporter(previewRenderer)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default exporter: %w", err)
			return
		}
		o.exporter = exporter
	}
}
