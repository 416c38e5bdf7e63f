// Package template defines the seam between renderers and the template
// engine that produces their document chrome.
package template

import "io"

// TemplateRenderer is the engine contract the shell renderers rely on.
// Implementations resolve named templates from a bundle and may also execute
// inline template content.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
