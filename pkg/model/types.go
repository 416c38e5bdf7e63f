package model

import "time"

// TemplateType discriminates the document families the builder produces.
type TemplateType string

const (
	TemplateTypeContract      TemplateType = "contract"
	TemplateTypeAudit         TemplateType = "audit"
	TemplateTypeCertification TemplateType = "certification"
	TemplateTypeOther         TemplateType = "other"
)

// ItemType is the closed set of content item variants. Every value must be
// handled by both the canvas and preview render paths; the items package
// carries a test enforcing that.
type ItemType string

const (
	ItemTypeText           ItemType = "text"
	ItemTypeMultipleChoice ItemType = "multiple_choice"
	ItemTypeDropdown       ItemType = "dropdown"
	ItemTypeRating         ItemType = "rating"
	ItemTypeDate           ItemType = "date"
	ItemTypeFile           ItemType = "file"
	ItemTypeImage          ItemType = "image"
	ItemTypeInstruction    ItemType = "instruction"
	ItemTypeRichText       ItemType = "rich_text"
)

// ItemTypes returns every known item variant in declaration order.
func ItemTypes() []ItemType {
	return []ItemType{
		ItemTypeText,
		ItemTypeMultipleChoice,
		ItemTypeDropdown,
		ItemTypeRating,
		ItemTypeDate,
		ItemTypeFile,
		ItemTypeImage,
		ItemTypeInstruction,
		ItemTypeRichText,
	}
}

// VariableType constrains how a declared variable is formatted when the
// substitution engine synthesises a sample value for it.
type VariableType string

const (
	VariableTypeText     VariableType = "text"
	VariableTypeDate     VariableType = "date"
	VariableTypeCurrency VariableType = "currency"
	VariableTypeNumber   VariableType = "number"
)

// VariableDeclaration names a token that content strings may reference as
// {name}. Names use identifier characters only; the delimiters are never part
// of the name.
type VariableDeclaration struct {
	Name    string       `json:"name"`
	Type    VariableType `json:"type"`
	Default string       `json:"default,omitempty"`
}

// Margins holds page margins in canvas units.
type Margins struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Settings carries layout-wide configuration shared by every renderer.
type Settings struct {
	PageSize string  `json:"page_size,omitempty"`
	Margins  Margins `json:"margins"`
	Theme    string  `json:"theme,omitempty"`
}

// Metadata holds template-level declarations that persist alongside content.
// Sample values synthesised at preview time are never stored here.
type Metadata struct {
	Variables []VariableDeclaration `json:"variables,omitempty"`
}

// Template is the root aggregate and the unit of persistence identity. An
// empty ID means the draft has never been assigned a backend identity.
type Template struct {
	ID          string       `json:"id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Type        TemplateType `json:"type"`
	Pages       []Page       `json:"pages"`
	IsPublished bool         `json:"is_published"`
	Settings    Settings     `json:"settings"`
	Metadata    Metadata     `json:"metadata"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Page is an ordered container of sections. Order is dense and monotonic with
// the slice index; Normalize restores that after structural changes.
type Page struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Order    int       `json:"order"`
	Content  string    `json:"content,omitempty"`
	Sections []Section `json:"sections"`
}

// Point locates a section on the canvas in canvas units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dimensions sizes a section in canvas units.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Style captures section presentation. It carries no behavioural invariant;
// renderers translate it to inline CSS and nothing else reads it.
type Style struct {
	Background  string `json:"background,omitempty"`
	BorderColor string `json:"border_color,omitempty"`
	BorderWidth int    `json:"border_width,omitempty"`
	Padding     int    `json:"padding,omitempty"`
	Shadow      bool   `json:"shadow,omitempty"`
}

// Section is a positioned container of items. Order governs the structural
// reading sequence (preview/PDF), Position/Size/ZIndex govern canvas layout;
// the two are independent and must never be conflated. Locked gates position
// and size mutation only, never item mutation.
type Section struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Order           int        `json:"order"`
	Position        Point      `json:"position"`
	Size            Dimensions `json:"size"`
	ZIndex          int        `json:"z_index"`
	Locked          bool       `json:"locked"`
	Style           Style      `json:"style"`
	TemplateContent string     `json:"template_content,omitempty"`
	Items           []Item     `json:"items"`
}

// Item is the tagged variant carrying the actual field payload. Type-specific
// attributes are populated only for the variants that use them: Options for
// multiple_choice/dropdown, RatingScale for rating, RichContent for rich_text,
// Placeholder for text.
type Item struct {
	ID          string   `json:"id"`
	Type        ItemType `json:"type"`
	Label       string   `json:"label"`
	Order       int      `json:"order"`
	Required    bool     `json:"required"`
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty"`
	RatingScale int      `json:"rating_scale,omitempty"`
	RichContent string   `json:"rich_content,omitempty"`
}
