package items

import (
	"html"
	"strings"

	"github.com/auditkit/templatebuilder/pkg/model"
)

// buildItemMarkup wraps a rendered control in the shared field chrome: a
// container div carrying the item identity plus a label with the required
// marker. Chromeless variants (instruction, rich text) skip the label.
func buildItemMarkup(item model.Item, control string) string {
	var builder strings.Builder
	builder.Grow(len(control) + 160)

	builder.WriteString(`<div class="tb-item tb-item-`)
	builder.WriteString(html.EscapeString(string(item.Type)))
	builder.WriteString(`" data-item-id="`)
	builder.WriteString(html.EscapeString(item.ID))
	builder.WriteString("\">\n")

	if showLabel(item) {
		builder.WriteString(`  <label class="tb-item-label" for="`)
		builder.WriteString(html.EscapeString(controlID(item)))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(item.Label))
		if item.Required {
			builder.WriteString(`<span class="tb-required">*</span>`)
		}
		builder.WriteString("</label>\n")
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("  ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	builder.WriteString("</div>\n")
	return builder.String()
}

func showLabel(item model.Item) bool {
	if strings.TrimSpace(item.Label) == "" {
		return false
	}
	switch item.Type {
	case model.ItemTypeInstruction, model.ItemTypeRichText:
		return false
	}
	return true
}

func controlID(item model.Item) string {
	return "tb-" + item.ID
}

// disabledAttr renders the read-only marker preview controls carry.
func disabledAttr(rc RenderContext) string {
	if rc.readOnly() {
		return " disabled"
	}
	return ""
}
