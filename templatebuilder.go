// Package templatebuilder composes structured document templates (contracts,
// audits, certifications) out of positioned sections and typed content items,
// and renders them either as an editable canvas or as a publication preview
// with variable tokens substituted.
package templatebuilder

import (
	"context"

	"github.com/auditkit/templatebuilder/pkg/model"
	"github.com/auditkit/templatebuilder/pkg/orchestrator"
	"github.com/auditkit/templatebuilder/pkg/render"
	"github.com/auditkit/templatebuilder/pkg/session"
)

// Template is the root document aggregate exported via the root package for
// convenience.
type Template = model.Template

// Section is a positioned content block within a page.
type Section = model.Section

// Item is a typed content element within a section.
type Item = model.Item

// RenderOptions carries per-render variable values and the clock used for
// date samples.
type RenderOptions = render.RenderOptions

// Selection identifies the single active node an editing session points at.
type Selection = session.Selection

// NewTemplate constructs an unsynced draft with one empty page and default
// settings.
func NewTemplate(title string, templateType model.TemplateType) model.Template {
	return model.NewTemplate(title, templateType)
}

// NewSession wraps a template in an editing session.
func NewSession(tpl model.Template) *session.Session {
	return session.New(tpl)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderCanvas renders the editable canvas document for a template. It is the
// simplest entry point for callers that just want editor HTML.
func RenderCanvas(ctx context.Context, tpl model.Template, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Canvas(ctx, tpl)
}

// RenderPreview renders the publication preview with every resolvable token
// substituted. Values provided in opts win over declaration defaults and
// built-in samples.
func RenderPreview(ctx context.Context, tpl model.Template, opts render.RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Preview(ctx, tpl, opts)
}
