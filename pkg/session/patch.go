package session

import "github.com/auditkit/templatebuilder/pkg/model"

// Patch types express shallow-merge updates. Only set (non-nil) fields are
// applied. Identifiers and discriminator types are deliberately absent: a
// merge can never change what an entity is, only how it looks.

// TemplatePatch updates template-level attributes.
type TemplatePatch struct {
	Title       *string
	Description *string
	Settings    *model.Settings
	Variables   []model.VariableDeclaration
}

// PagePatch updates page-level attributes.
type PagePatch struct {
	Title   *string
	Content *string
}

// SectionPatch updates section attributes. Position, Size, and ZIndex are
// rejected while the section is locked; everything else passes through.
type SectionPatch struct {
	Title           *string
	Description     *string
	Position        *model.Point
	Size            *model.Dimensions
	ZIndex          *int
	Locked          *bool
	Style           *model.Style
	TemplateContent *string
}

// movesSection reports whether the patch touches the geometry a locked
// section protects.
func (p SectionPatch) movesSection() bool {
	return p.Position != nil || p.Size != nil || p.ZIndex != nil
}

// ItemPatch updates item attributes common and type-specific alike. Setting
// Options or RatingScale on a variant that ignores them is harmless; the
// renderer only reads the attributes its type contract names.
type ItemPatch struct {
	Label       *string
	Required    *bool
	Placeholder *string
	Options     []string
	RatingScale *int
	RichContent *string
}

func applySectionPatch(section *model.Section, patch SectionPatch) {
	if patch.Title != nil {
		section.Title = *patch.Title
	}
	if patch.Description != nil {
		section.Description = *patch.Description
	}
	if patch.Position != nil {
		section.Position = *patch.Position
	}
	if patch.Size != nil {
		section.Size = *patch.Size
	}
	if patch.ZIndex != nil {
		section.ZIndex = *patch.ZIndex
	}
	if patch.Locked != nil {
		section.Locked = *patch.Locked
	}
	if patch.Style != nil {
		section.Style = *patch.Style
	}
	if patch.TemplateContent != nil {
		section.TemplateContent = *patch.TemplateContent
	}
}

func applyItemPatch(item *model.Item, patch ItemPatch) {
	if patch.Label != nil {
		item.Label = *patch.Label
	}
	if patch.Required != nil {
		item.Required = *patch.Required
	}
	if patch.Placeholder != nil {
		item.Placeholder = *patch.Placeholder
	}
	if patch.Options != nil {
		item.Options = append([]string(nil), patch.Options...)
	}
	if patch.RatingScale != nil {
		item.RatingScale = *patch.RatingScale
	}
	if patch.RichContent != nil {
		item.RichContent = *patch.RichContent
	}
}
