package model

import (
	"fmt"
	"time"
)

// Canvas defaults applied to freshly added sections so new content lands
// somewhere visible instead of at the origin.
const (
	DefaultSectionWidth  = 800
	DefaultSectionHeight = 200
	DefaultSectionX      = 50
	DefaultSectionY      = 50
	DefaultSectionZIndex = 1

	// DefaultRatingScale is the number of discrete steps a rating item
	// renders when no explicit scale was configured.
	DefaultRatingScale = 5
)

// NewTemplate constructs a draft template with a single empty page, the
// minimum shape the editing session requires before any mutation is legal.
func NewTemplate(title string, kind TemplateType) Template {
	now := time.Now().UTC()
	if kind == "" {
		kind = TemplateTypeOther
	}
	return Template{
		Title:     title,
		Type:      kind,
		Pages:     []Page{NewPage(0)},
		Settings:  Settings{PageSize: "a4", Margins: Margins{Top: 40, Right: 40, Bottom: 40, Left: 40}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewPage constructs an empty page at the given sibling position.
func NewPage(order int) Page {
	return Page{
		ID:       MintID("page"),
		Title:    fmt.Sprintf("Page %d", order+1),
		Order:    order,
		Sections: []Section{},
	}
}

// NewSection constructs a section at the default canvas position and size.
func NewSection(order int) Section {
	return Section{
		ID:       MintID("section"),
		Title:    fmt.Sprintf("Section %d", order+1),
		Order:    order,
		Position: Point{X: DefaultSectionX, Y: DefaultSectionY},
		Size:     Dimensions{Width: DefaultSectionWidth, Height: DefaultSectionHeight},
		ZIndex:   DefaultSectionZIndex,
		Items:    []Item{},
	}
}

// NewItem constructs a typed item. Choice-like variants are seeded with two
// placeholder options and rating items with the default scale so they render
// meaningfully before the author configures them.
func NewItem(kind ItemType, order int) Item {
	item := Item{
		ID:    MintID("item"),
		Type:  kind,
		Label: defaultItemLabel(kind),
		Order: order,
	}
	switch kind {
	case ItemTypeMultipleChoice, ItemTypeDropdown:
		item.Options = []string{"Option 1", "Option 2"}
	case ItemTypeRating:
		item.RatingScale = DefaultRatingScale
	case ItemTypeText:
		item.Placeholder = "Enter text"
	}
	return item
}

func defaultItemLabel(kind ItemType) string {
	switch kind {
	case ItemTypeText:
		return "Text Field"
	case ItemTypeMultipleChoice:
		return "Multiple Choice"
	case ItemTypeDropdown:
		return "Dropdown"
	case ItemTypeRating:
		return "Rating"
	case ItemTypeDate:
		return "Date"
	case ItemTypeFile:
		return "File Upload"
	case ItemTypeImage:
		return "Image"
	case ItemTypeInstruction:
		return "Instruction"
	case ItemTypeRichText:
		return "Rich Text"
	default:
		return "Field"
	}
}
