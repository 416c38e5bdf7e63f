// Package render defines the contracts shared by every template renderer and
// the registry the pipeline facade dispatches through.
package render

import (
	"context"

	"github.com/auditkit/templatebuilder/pkg/model"
)

// Mode distinguishes the two rendering contexts. Both interpret the document
// model identically; only interactivity and token substitution differ.
type Mode string

const (
	// ModeCanvas renders the interactive authoring surface. Controls are
	// live and variable tokens stay verbatim so the author sees which
	// positions are dynamic.
	ModeCanvas Mode = "canvas"
	// ModePreview renders the read-only output handed to preview and PDF
	// export. Controls are disabled and every token is substituted.
	ModePreview Mode = "preview"
)

// Renderer converts a template into a byte representation (HTML for the
// built-in renderers).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, tpl model.Template, options RenderOptions) ([]byte, error)
}
