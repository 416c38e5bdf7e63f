package session

import (
	"errors"
	"testing"

	"github.com/auditkit/templatebuilder/pkg/model"
)

func newSession() *Session {
	return New(model.NewTemplate("Doc", model.TemplateTypeContract))
}

func TestLoad_RejectsDuplicateIDs(t *testing.T) {
	tpl := model.NewTemplate("Stored", model.TemplateTypeContract)
	tpl.Pages[0].Sections = []model.Section{model.NewSection(0), model.NewSection(1)}
	tpl.Pages[0].Sections[1].ID = tpl.Pages[0].Sections[0].ID

	if _, err := Load(tpl); err == nil {
		t.Fatal("a payload with duplicate ids must not enter a session")
	}

	tpl.Pages[0].Sections[1].ID = model.MintID("section")
	sess, err := Load(tpl)
	if err != nil {
		t.Fatalf("load valid payload: %v", err)
	}
	if len(sess.Template().Pages[0].Sections) != 2 {
		t.Fatalf("loaded sections = %d", len(sess.Template().Pages[0].Sections))
	}

	// Empty payloads still get the auto-provisioned page.
	empty, err := Load(model.Template{Title: "Bare"})
	if err != nil {
		t.Fatalf("load empty payload: %v", err)
	}
	if got := len(empty.Template().Pages); got != 1 {
		t.Fatalf("pages = %d, want 1", got)
	}
}

func TestNew_AutoProvisionsOnePage(t *testing.T) {
	sess := New(model.Template{Title: "Bare"})
	if got := len(sess.Template().Pages); got != 1 {
		t.Fatalf("pages = %d, want 1", got)
	}
	if sess.Version() != 0 {
		t.Fatalf("opening a session must not count as an edit, version = %d", sess.Version())
	}
}

func TestAddItemToLastSection_ProvisionsExactlyOneSection(t *testing.T) {
	sess := newSession()

	item, err := sess.AddItemToLastSection(0, model.ItemTypeText)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	page := sess.Template().Pages[0]
	if len(page.Sections) != 1 {
		t.Fatalf("sections = %d, want exactly 1 auto-provisioned", len(page.Sections))
	}
	if len(page.Sections[0].Items) != 1 || page.Sections[0].Items[0].ID != item.ID {
		t.Fatalf("item not appended to provisioned section: %+v", page.Sections[0].Items)
	}

	// A second add reuses the provisioned section instead of minting another.
	if _, err := sess.AddItemToLastSection(0, model.ItemTypeDate); err != nil {
		t.Fatalf("second add: %v", err)
	}
	page = sess.Template().Pages[0]
	if len(page.Sections) != 1 {
		t.Fatalf("second add provisioned a new section, sections = %d", len(page.Sections))
	}
	if len(page.Sections[0].Items) != 2 {
		t.Fatalf("items = %d, want 2", len(page.Sections[0].Items))
	}
}

func TestAddPage_ClearsSelectionAndAdvances(t *testing.T) {
	sess := newSession()
	section, err := sess.AddSection(0)
	if err != nil {
		t.Fatalf("add section: %v", err)
	}
	if err := sess.Select(section.ID); err != nil {
		t.Fatalf("select: %v", err)
	}

	idx := sess.AddPage()
	if idx != 1 || sess.CurrentPage() != 1 {
		t.Fatalf("current page = %d, want 1", sess.CurrentPage())
	}
	if sess.Selection() != nil {
		t.Fatal("selection must be cleared when a page is added")
	}
}

func TestSelect_SectionItself(t *testing.T) {
	sess := newSession()
	section, _ := sess.AddSection(0)

	if err := sess.Select(section.ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	sel := sess.Selection()
	if sel == nil || sel.Page != 0 || sel.Section != 0 || sel.Item != SelectionSectionItself {
		t.Fatalf("selection = %+v", sel)
	}

	if err := sess.Select(""); err != nil {
		t.Fatalf("clear via empty id: %v", err)
	}
	if sess.Selection() != nil {
		t.Fatal("empty id must clear the selection")
	}

	if err := sess.Select("sec-missing"); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("select missing = %v, want ErrSectionNotFound", err)
	}
}

func TestDeleteSection_SelectionConsistency(t *testing.T) {
	sess := newSession()
	first, _ := sess.AddSection(0)
	second, _ := sess.AddSection(0)
	third, _ := sess.AddSection(0)

	// Selected section deleted: selection clears.
	sess.Select(second.ID)
	if err := sess.DeleteSection(second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if sess.Selection() != nil {
		t.Fatal("deleting the selected section must clear the selection")
	}

	// Later sibling selected: index shifts down to track the same node.
	sess.Select(third.ID)
	if err := sess.DeleteSection(first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	sel := sess.Selection()
	if sel == nil || sel.Section != 0 {
		t.Fatalf("selection = %+v, want section index 0", sel)
	}
	if got := sess.Template().Pages[0].Sections[sel.Section].ID; got != third.ID {
		t.Fatalf("selection tracks %q, want %q", got, third.ID)
	}
}

func TestDeleteSection_RenormalizesOrder(t *testing.T) {
	sess := newSession()
	sess.AddSection(0)
	second, _ := sess.AddSection(0)
	sess.AddSection(0)

	if err := sess.DeleteSection(second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for i, section := range sess.Template().Pages[0].Sections {
		if section.Order != i {
			t.Fatalf("section %d order = %d after delete", i, section.Order)
		}
	}
}

func TestDuplicateSection_OffsetAndFreshIDs(t *testing.T) {
	sess := newSession()
	source, _ := sess.AddSection(0)
	if _, err := sess.AddItemToLastSection(0, model.ItemTypeRating); err != nil {
		t.Fatalf("add item: %v", err)
	}
	source = sess.Template().Pages[0].Sections[0]

	dup, err := sess.DuplicateSection(source.ID)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if dup.ID == source.ID {
		t.Fatal("duplicate kept the source id")
	}
	if dup.Position.X != source.Position.X+DuplicateOffset || dup.Position.Y != source.Position.Y+DuplicateOffset {
		t.Fatalf("duplicate position = %+v, source = %+v", dup.Position, source.Position)
	}
	if len(dup.Items) != 1 || dup.Items[0].ID == source.Items[0].ID {
		t.Fatalf("duplicate items share ids with source: %+v", dup.Items)
	}
	if err := sess.Template().Validate(); err != nil {
		t.Fatalf("template invalid after duplicate: %v", err)
	}
}

func TestUpdateSection_LockedRejectsGeometryOnly(t *testing.T) {
	sess := newSession()
	section, _ := sess.AddSection(0)

	locked := true
	if err := sess.UpdateSection(section.ID, SectionPatch{Locked: &locked}); err != nil {
		t.Fatalf("lock: %v", err)
	}

	err := sess.UpdateSection(section.ID, SectionPatch{Position: &model.Point{X: 200, Y: 60}})
	if !errors.Is(err, ErrSectionLocked) {
		t.Fatalf("geometry patch on locked section = %v, want ErrSectionLocked", err)
	}

	title := "Renamed"
	if err := sess.UpdateSection(section.ID, SectionPatch{Title: &title}); err != nil {
		t.Fatalf("content patch on locked section should pass: %v", err)
	}
	if got := sess.Template().Pages[0].Sections[0].Title; got != "Renamed" {
		t.Fatalf("title = %q", got)
	}
}

func TestUpdateItem_MergesWithoutTouchingIdentity(t *testing.T) {
	sess := newSession()
	item, err := sess.AddItemToLastSection(0, model.ItemTypeText)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	label := "Client name"
	required := true
	if err := sess.UpdateItem(0, 0, 0, ItemPatch{Label: &label, Required: &required}); err != nil {
		t.Fatalf("update item: %v", err)
	}
	got := sess.Template().Pages[0].Sections[0].Items[0]
	if got.ID != item.ID || got.Type != item.Type {
		t.Fatal("patch must not change item identity or type")
	}
	if got.Label != "Client name" || !got.Required {
		t.Fatalf("patch not applied: %+v", got)
	}

	if err := sess.UpdateItem(0, 0, 9, ItemPatch{Label: &label}); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("out of range item = %v, want ErrItemNotFound", err)
	}
}

func TestVersion_BumpsPerMutation(t *testing.T) {
	sess := newSession()
	v0 := sess.Version()
	sess.AddSection(0)
	sess.AddPage()
	if got := sess.Version(); got != v0+2 {
		t.Fatalf("version = %d, want %d", got, v0+2)
	}

	sess.AdoptBackendID("tpl-abc")
	if got := sess.Version(); got != v0+2 {
		t.Fatalf("adopting a backend id must not bump the version, got %d", got)
	}
	if sess.Template().ID != "tpl-abc" {
		t.Fatalf("id = %q", sess.Template().ID)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	sess := newSession()
	sess.AddSection(0)
	before := sess.Template()

	title := "Changed"
	if err := sess.UpdateSection(before.Pages[0].Sections[0].ID, SectionPatch{Title: &title}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if before.Pages[0].Sections[0].Title == "Changed" {
		t.Fatal("mutation leaked into a previously returned snapshot")
	}
}
