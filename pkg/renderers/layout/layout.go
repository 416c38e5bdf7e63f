// Package layout assembles page and section markup shared by the canvas and
// preview renderers. Keeping one assembly path is what enforces the
// invariant that both modes interpret the document identically: only the
// render context (substitution, interactivity) differs between them.
package layout

import (
	"fmt"
	"html"
	"strings"

	"github.com/auditkit/templatebuilder/pkg/model"
	"github.com/auditkit/templatebuilder/pkg/renderers/items"
)

const pagePadding = 40

// RenderPages assembles the document body: each page is a relatively
// positioned surface, sections sit at their absolute canvas coordinates with
// z-index stacking, and items render through the shared registry. DOM
// sequence follows order; visual stacking is CSS's job. The two must never
// be conflated.
func RenderPages(tpl model.Template, registry *items.Registry, rc items.RenderContext) (string, error) {
	var builder strings.Builder

	for _, page := range tpl.Pages {
		fmt.Fprintf(&builder, `<div class="tb-page" data-page-id="%s" style="min-height:%.0fpx">`,
			html.EscapeString(page.ID), pageHeight(page))
		builder.WriteByte('\n')

		if strings.TrimSpace(page.Title) != "" {
			fmt.Fprintf(&builder, `<h2 class="tb-page-title">%s</h2>`, html.EscapeString(page.Title))
			builder.WriteByte('\n')
		}
		if strings.TrimSpace(page.Content) != "" {
			builder.WriteString(`<div class="tb-page-content">`)
			builder.WriteString(richContent(page.Content, rc))
			builder.WriteString("</div>\n")
		}

		for _, section := range page.Sections {
			sectionHTML, err := renderSection(section, registry, rc)
			if err != nil {
				return "", err
			}
			builder.WriteString(sectionHTML)
		}

		builder.WriteString("</div>\n")
	}
	return builder.String(), nil
}

func renderSection(section model.Section, registry *items.Registry, rc items.RenderContext) (string, error) {
	var builder strings.Builder

	classes := "tb-section"
	if section.Locked {
		classes += " tb-section-locked"
	}
	fmt.Fprintf(&builder, `<div class="%s" data-section-id="%s" data-locked="%t" style="%s">`,
		classes,
		html.EscapeString(section.ID),
		section.Locked,
		html.EscapeString(sectionCSS(section)))
	builder.WriteByte('\n')

	if strings.TrimSpace(section.Title) != "" {
		fmt.Fprintf(&builder, `<h3 class="tb-section-title">%s</h3>`, html.EscapeString(section.Title))
		builder.WriteByte('\n')
	}
	if strings.TrimSpace(section.Description) != "" {
		fmt.Fprintf(&builder, `<p class="tb-section-description">%s</p>`, html.EscapeString(section.Description))
		builder.WriteByte('\n')
	}
	if strings.TrimSpace(section.TemplateContent) != "" {
		builder.WriteString(`<div class="tb-section-content">`)
		builder.WriteString(richContent(section.TemplateContent, rc))
		builder.WriteString("</div>\n")
	}

	for _, item := range section.Items {
		markup, err := registry.Render(item, rc)
		if err != nil {
			return "", err
		}
		builder.WriteString(markup)
	}

	builder.WriteString("</div>\n")
	return builder.String(), nil
}

// richContent runs page/section rich text through the context's substitution
// (identity in canvas mode) and sanitisation, in that order, so substituted
// values are scrubbed too.
func richContent(content string, rc items.RenderContext) string {
	if rc.Substitute != nil {
		content = rc.Substitute(content)
	}
	if rc.Sanitize != nil {
		content = rc.Sanitize(content)
	}
	return content
}

// sectionCSS translates canvas geometry plus presentation style into inline
// CSS. Geometry comes first so tests can assert on the prefix.
func sectionCSS(section model.Section) string {
	var css strings.Builder
	fmt.Fprintf(&css, "position:absolute;left:%.0fpx;top:%.0fpx;width:%.0fpx;min-height:%.0fpx;z-index:%d;",
		section.Position.X, section.Position.Y,
		section.Size.Width, section.Size.Height,
		section.ZIndex)
	css.WriteString(styleCSS(section.Style))
	return css.String()
}

func styleCSS(style model.Style) string {
	var css strings.Builder
	if style.Background != "" {
		fmt.Fprintf(&css, "background:%s;", style.Background)
	}
	if style.BorderWidth > 0 {
		color := style.BorderColor
		if color == "" {
			color = "#d0d0d0"
		}
		fmt.Fprintf(&css, "border:%dpx solid %s;", style.BorderWidth, color)
	}
	if style.Padding > 0 {
		fmt.Fprintf(&css, "padding:%dpx;", style.Padding)
	}
	if style.Shadow {
		css.WriteString("box-shadow:0 2px 8px rgba(0,0,0,0.15);")
	}
	return css.String()
}

// pageHeight sizes the page surface to contain its lowest section.
func pageHeight(page model.Page) float64 {
	height := float64(600)
	for _, section := range page.Sections {
		if bottom := section.Position.Y + section.Size.Height + pagePadding; bottom > height {
			height = bottom
		}
	}
	return height
}
