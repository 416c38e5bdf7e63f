// Package export defines the seam for the PDF export collaborator. The
// engine consumes the document model post-substitution; byte generation for
// a concrete format lives behind the Exporter interface so a real PDF engine
// can be swapped in without touching the pipeline.
package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/auditkit/templatebuilder/pkg/model"
	"github.com/auditkit/templatebuilder/pkg/render"
)

// Exporter turns a template into an exported file body.
type Exporter interface {
	// Export renders the template with every token substituted. Values may
	// supply real variable values; absent names fall back to samples.
	Export(ctx context.Context, tpl model.Template, options render.RenderOptions) ([]byte, error)
	// FileExtension names the extension (with dot) of the produced file.
	FileExtension() string
}

// HTMLExporter produces the print-ready HTML document handed to an external
// PDF generator. Pages break with page-break-after, and sections keep their
// position/size/z-index layout so the export reproduces the canvas
// faithfully while the DOM follows reading order.
type HTMLExporter struct {
	preview render.Renderer
}

// NewHTMLExporter wraps the preview renderer.
func NewHTMLExporter(preview render.Renderer) (*HTMLExporter, error) {
	if preview == nil {
		return nil, errors.New("export: preview renderer is required")
	}
	return &HTMLExporter{preview: preview}, nil
}

// Export renders the substituted preview document.
func (e *HTMLExporter) Export(ctx context.Context, tpl model.Template, options render.RenderOptions) ([]byte, error) {
	out, err := e.preview.Render(ctx, tpl, options)
	if err != nil {
		return nil, fmt.Errorf("export: render document: %w", err)
	}
	return out, nil
}

// FileExtension reports ".html".
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}
