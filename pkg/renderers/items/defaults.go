package items

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/auditkit/templatebuilder/pkg/model"
)

// NewDefaultRegistry constructs a registry covering every item type the model
// declares. Each renderer honours its fixed contract: rating emits exactly
// rating_scale steps (five when unset), choice controls tolerate an absent
// options list, file and image never expose a real upload affordance in
// preview, and the rich variants pass through substitution and sanitisation.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(model.ItemTypeText, textRenderer)
	registry.MustRegister(model.ItemTypeMultipleChoice, multipleChoiceRenderer)
	registry.MustRegister(model.ItemTypeDropdown, dropdownRenderer)
	registry.MustRegister(model.ItemTypeRating, ratingRenderer)
	registry.MustRegister(model.ItemTypeDate, dateRenderer)
	registry.MustRegister(model.ItemTypeFile, fileRenderer)
	registry.MustRegister(model.ItemTypeImage, imageRenderer)
	registry.MustRegister(model.ItemTypeInstruction, richContentRenderer("tb-instruction"))
	registry.MustRegister(model.ItemTypeRichText, richContentRenderer("tb-rich-text"))

	return registry
}

// NewSanitizer returns the HTML policy applied to author-supplied rich
// content before it reaches rendered output.
func NewSanitizer() func(string) string {
	policy := bluemonday.UGCPolicy()
	return policy.Sanitize
}

func textRenderer(buf *bytes.Buffer, item model.Item, rc RenderContext) error {
	placeholder := item.Placeholder
	if placeholder == "" {
		placeholder = "Enter text"
	}
	fmt.Fprintf(buf, `<input type="text" id="%s" class="tb-input" placeholder="%s"%s>`,
		html.EscapeString(controlID(item)),
		html.EscapeString(placeholder),
		disabledAttr(rc))
	buf.WriteByte('\n')
	return nil
}

func multipleChoiceRenderer(buf *bytes.Buffer, item model.Item, rc RenderContext) error {
	if len(item.Options) == 0 {
		buf.WriteString(`<p class="tb-empty-options">No options configured</p>` + "\n")
		return nil
	}
	buf.WriteString(`<div class="tb-choices">` + "\n")
	for _, option := range item.Options {
		fmt.Fprintf(buf, `<label class="tb-choice"><input type="radio" name="%s" value="%s"%s> %s</label>`,
			html.EscapeString(controlID(item)),
			html.EscapeString(option),
			disabledAttr(rc),
			html.EscapeString(option))
		buf.WriteByte('\n')
	}
	buf.WriteString("</div>\n")
	return nil
}

func dropdownRenderer(buf *bytes.Buffer, item model.Item, rc RenderContext) error {
	fmt.Fprintf(buf, `<select id="%s" class="tb-select"%s>`,
		html.EscapeString(controlID(item)),
		disabledAttr(rc))
	buf.WriteByte('\n')
	buf.WriteString(`<option value="">Select an option</option>` + "\n")
	for _, option := range item.Options {
		fmt.Fprintf(buf, `<option value="%s">%s</option>`,
			html.EscapeString(option), html.EscapeString(option))
		buf.WriteByte('\n')
	}
	buf.WriteString("</select>\n")
	return nil
}

func ratingRenderer(buf *bytes.Buffer, item model.Item, rc RenderContext) error {
	scale := item.RatingScale
	if scale <= 0 {
		scale = model.DefaultRatingScale
	}
	buf.WriteString(`<div class="tb-rating">` + "\n")
	for step := 1; step <= scale; step++ {
		fmt.Fprintf(buf, `<button type="button" class="tb-rating-step" data-step="%d"%s>&#9734;</button>`,
			step, disabledAttr(rc))
		buf.WriteByte('\n')
	}
	buf.WriteString("</div>\n")
	return nil
}

func dateRenderer(buf *bytes.Buffer, item model.Item, rc RenderContext) error {
	fmt.Fprintf(buf, `<input type="date" id="%s" class="tb-input"%s>`,
		html.EscapeString(controlID(item)),
		disabledAttr(rc))
	buf.WriteByte('\n')
	return nil
}

func fileRenderer(buf *bytes.Buffer, item model.Item, rc RenderContext) error {
	if rc.readOnly() {
		buf.WriteString(`<div class="tb-file-placeholder">File upload</div>` + "\n")
		return nil
	}
	fmt.Fprintf(buf, `<input type="file" id="%s" class="tb-file">`,
		html.EscapeString(controlID(item)))
	buf.WriteByte('\n')
	return nil
}

func imageRenderer(buf *bytes.Buffer, item model.Item, rc RenderContext) error {
	if rc.readOnly() {
		buf.WriteString(`<div class="tb-image-placeholder">Image</div>` + "\n")
		return nil
	}
	fmt.Fprintf(buf, `<div class="tb-image-drop" data-control="%s">Drop image here</div>`,
		html.EscapeString(controlID(item)))
	buf.WriteByte('\n')
	return nil
}

// richContentRenderer serves both instruction and rich_text: author HTML is
// substituted (per mode) and sanitised before display.
func richContentRenderer(class string) Renderer {
	return func(buf *bytes.Buffer, item model.Item, rc RenderContext) error {
		content := rc.sanitize(rc.substitute(item.RichContent))
		if strings.TrimSpace(content) == "" {
			content = html.EscapeString(item.Label)
		}
		fmt.Fprintf(buf, `<div class="%s">%s</div>`, class, content)
		buf.WriteByte('\n')
		return nil
	}
}
