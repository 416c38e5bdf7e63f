package canvas

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/canvas.css
var embeddedAssets embed.FS

// TemplatesFS exposes the embedded shell bundle so callers can override or
// extend it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

func defaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/canvas.css")
	if err != nil {
		return ""
	}
	return string(data)
}
