package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMintID_UniqueAcrossBurst(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := MintID("sec")
		if !strings.HasPrefix(id, "sec-") {
			t.Fatalf("id %q missing prefix", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id after %d mints: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestNewTemplate_Defaults(t *testing.T) {
	tpl := NewTemplate("Engagement Letter", TemplateTypeContract)

	if tpl.ID != "" {
		t.Fatalf("new draft should have no backend id, got %q", tpl.ID)
	}
	if len(tpl.Pages) != 1 {
		t.Fatalf("want exactly one page, got %d", len(tpl.Pages))
	}
	if tpl.Settings.PageSize != "a4" {
		t.Fatalf("page size = %q, want a4", tpl.Settings.PageSize)
	}
	want := Margins{Top: 40, Right: 40, Bottom: 40, Left: 40}
	if diff := cmp.Diff(want, tpl.Settings.Margins); diff != "" {
		t.Fatalf("margins mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSection_DefaultGeometry(t *testing.T) {
	section := NewSection(0)

	if section.Position.X != DefaultSectionX || section.Position.Y != DefaultSectionY {
		t.Fatalf("position = %+v", section.Position)
	}
	if section.Size.Width != DefaultSectionWidth || section.Size.Height != DefaultSectionHeight {
		t.Fatalf("size = %+v", section.Size)
	}
	if section.ZIndex != DefaultSectionZIndex {
		t.Fatalf("z-index = %d, want %d", section.ZIndex, DefaultSectionZIndex)
	}
	if section.Locked {
		t.Fatal("new sections must start unlocked")
	}
}

func TestNewItem_TypeSeeds(t *testing.T) {
	for _, kind := range []ItemType{ItemTypeMultipleChoice, ItemTypeDropdown} {
		item := NewItem(kind, 0)
		if diff := cmp.Diff([]string{"Option 1", "Option 2"}, item.Options); diff != "" {
			t.Fatalf("%s options mismatch (-want +got):\n%s", kind, diff)
		}
	}

	rating := NewItem(ItemTypeRating, 0)
	if rating.RatingScale != DefaultRatingScale {
		t.Fatalf("rating scale = %d, want %d", rating.RatingScale, DefaultRatingScale)
	}

	text := NewItem(ItemTypeText, 0)
	if text.Placeholder == "" {
		t.Fatal("text items should carry a placeholder")
	}
}

func TestClone_Independence(t *testing.T) {
	tpl := NewTemplate("Original", TemplateTypeAudit)
	tpl.Pages[0].Sections = []Section{NewSection(0)}
	tpl.Pages[0].Sections[0].Items = []Item{NewItem(ItemTypeText, 0)}
	tpl.Metadata.Variables = []VariableDeclaration{{Name: "client_name", Type: VariableTypeText}}

	clone := tpl.Clone()
	clone.Title = "Changed"
	clone.Pages[0].Sections[0].Items[0].Label = "Changed"
	clone.Metadata.Variables[0].Name = "changed"

	if tpl.Title != "Original" {
		t.Fatalf("clone leaked title mutation: %q", tpl.Title)
	}
	if got := tpl.Pages[0].Sections[0].Items[0].Label; got == "Changed" {
		t.Fatal("clone shares item backing array with source")
	}
	if tpl.Metadata.Variables[0].Name != "client_name" {
		t.Fatal("clone shares variable declarations with source")
	}
}

func TestReidentify_FreshIDsSameContent(t *testing.T) {
	section := NewSection(0)
	section.Title = "Scope"
	section.Items = []Item{NewItem(ItemTypeText, 0), NewItem(ItemTypeDate, 1)}

	dup := section.Reidentify()

	if dup.ID == section.ID {
		t.Fatalf("duplicate kept the source section id %q", dup.ID)
	}
	if dup.Title != section.Title {
		t.Fatalf("duplicate title = %q, want %q", dup.Title, section.Title)
	}
	if len(dup.Items) != len(section.Items) {
		t.Fatalf("duplicate has %d items, want %d", len(dup.Items), len(section.Items))
	}
	for i := range dup.Items {
		if dup.Items[i].ID == section.Items[i].ID {
			t.Fatalf("item %d kept source id %q", i, dup.Items[i].ID)
		}
		if dup.Items[i].Type != section.Items[i].Type {
			t.Fatalf("item %d type changed to %s", i, dup.Items[i].Type)
		}
	}
}

func TestNormalize_DenseOrder(t *testing.T) {
	tpl := NewTemplate("Doc", TemplateTypeOther)
	tpl.Pages[0].Sections = []Section{NewSection(0), NewSection(1), NewSection(2)}
	tpl.Pages[0].Sections[0].Order = 7
	tpl.Pages[0].Sections[1].Order = 7
	tpl.Pages[0].Sections[2].Order = 0
	tpl.Pages[0].Sections[1].Items = []Item{NewItem(ItemTypeText, 4), NewItem(ItemTypeText, 4)}

	tpl.Normalize()

	for i, section := range tpl.Pages[0].Sections {
		if section.Order != i {
			t.Fatalf("section %d order = %d", i, section.Order)
		}
	}
	for i, item := range tpl.Pages[0].Sections[1].Items {
		if item.Order != i {
			t.Fatalf("item %d order = %d", i, item.Order)
		}
	}
	if tpl.Pages[0].Order != 0 {
		t.Fatalf("page order = %d", tpl.Pages[0].Order)
	}
}

func TestValidate_RejectsDuplicateIDs(t *testing.T) {
	tpl := NewTemplate("Doc", TemplateTypeContract)
	tpl.Pages[0].Sections = []Section{NewSection(0), NewSection(1)}
	if err := tpl.Validate(); err != nil {
		t.Fatalf("fresh template should validate: %v", err)
	}

	tpl.Pages[0].Sections[1].ID = tpl.Pages[0].Sections[0].ID
	if err := tpl.Validate(); err == nil {
		t.Fatal("expected duplicate section id to fail validation")
	}
}

func TestTemplate_JSONRoundTrip(t *testing.T) {
	tpl := NewTemplate("Contract", TemplateTypeContract)
	tpl.Pages[0].Sections = []Section{NewSection(0)}
	tpl.Pages[0].Sections[0].Items = []Item{NewItem(ItemTypeRating, 0)}
	tpl.Metadata.Variables = []VariableDeclaration{
		{Name: "client_name", Type: VariableTypeText, Default: "Acme"},
	}

	raw, err := json.Marshal(tpl)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"z_index"`, `"is_published"`, `"rating_scale"`} {
		if !strings.Contains(string(raw), key) {
			t.Fatalf("payload missing %s:\n%s", key, raw)
		}
	}

	var back Template
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(tpl, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
