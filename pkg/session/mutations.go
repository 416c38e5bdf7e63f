package session

import (
	"github.com/auditkit/templatebuilder/pkg/model"
)

// DuplicateOffset is the canvas delta applied to a duplicated section so the
// copy is visibly discoverable next to its source.
const DuplicateOffset = 20

// AddPage appends an empty page, clears the selection, and advances the
// current page pointer to the new index, which is returned.
func (s *Session) AddPage() int {
	next := s.tpl.Clone()
	next.Pages = append(next.Pages, model.NewPage(len(next.Pages)))
	s.selection = nil
	s.currentPage = len(next.Pages) - 1
	s.commit(next)
	return s.currentPage
}

// AddSection appends a section at the default canvas position and size to the
// given page and returns it.
func (s *Session) AddSection(pageIndex int) (model.Section, error) {
	if pageIndex < 0 || pageIndex >= len(s.tpl.Pages) {
		return model.Section{}, ErrPageNotFound
	}
	next := s.tpl.Clone()
	page := &next.Pages[pageIndex]
	section := model.NewSection(len(page.Sections))
	page.Sections = append(page.Sections, section)
	s.commit(next)
	return section, nil
}

// AddItemToLastSection appends a typed item to the last section of the given
// page. A page with zero sections gets exactly one synthesized first; that is
// documented auto-provisioning, not an error.
func (s *Session) AddItemToLastSection(pageIndex int, kind model.ItemType) (model.Item, error) {
	if pageIndex < 0 || pageIndex >= len(s.tpl.Pages) {
		return model.Item{}, ErrPageNotFound
	}
	next := s.tpl.Clone()
	page := &next.Pages[pageIndex]
	if len(page.Sections) == 0 {
		page.Sections = append(page.Sections, model.NewSection(0))
	}
	section := &page.Sections[len(page.Sections)-1]
	item := model.NewItem(kind, len(section.Items))
	section.Items = append(section.Items, item)
	s.commit(next)
	return item, nil
}

// UpdateTemplate shallow-merges template-level attributes.
func (s *Session) UpdateTemplate(patch TemplatePatch) {
	next := s.tpl.Clone()
	if patch.Title != nil {
		next.Title = *patch.Title
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Settings != nil {
		next.Settings = *patch.Settings
	}
	if patch.Variables != nil {
		next.Metadata.Variables = append([]model.VariableDeclaration(nil), patch.Variables...)
	}
	s.commit(next)
}

// UpdatePage shallow-merges page attributes at the given index.
func (s *Session) UpdatePage(pageIndex int, patch PagePatch) error {
	if pageIndex < 0 || pageIndex >= len(s.tpl.Pages) {
		return ErrPageNotFound
	}
	next := s.tpl.Clone()
	page := &next.Pages[pageIndex]
	if patch.Title != nil {
		page.Title = *patch.Title
	}
	if patch.Content != nil {
		page.Content = *patch.Content
	}
	s.commit(next)
	return nil
}

// UpdateSection shallow-merges section attributes, addressed by id. Geometry
// patches against a locked section fail with ErrSectionLocked before anything
// is applied; item mutation is not gated by the lock.
func (s *Session) UpdateSection(sectionID string, patch SectionPatch) error {
	pageIdx, sectionIdx, ok := s.findSection(sectionID)
	if !ok {
		return ErrSectionNotFound
	}
	if s.tpl.Pages[pageIdx].Sections[sectionIdx].Locked && patch.movesSection() {
		return ErrSectionLocked
	}
	next := s.tpl.Clone()
	applySectionPatch(&next.Pages[pageIdx].Sections[sectionIdx], patch)
	s.commit(next)
	return nil
}

// UpdateItem shallow-merges item attributes at the given index path.
func (s *Session) UpdateItem(pageIdx, sectionIdx, itemIdx int, patch ItemPatch) error {
	if pageIdx < 0 || pageIdx >= len(s.tpl.Pages) {
		return ErrPageNotFound
	}
	page := s.tpl.Pages[pageIdx]
	if sectionIdx < 0 || sectionIdx >= len(page.Sections) {
		return ErrSectionNotFound
	}
	if itemIdx < 0 || itemIdx >= len(page.Sections[sectionIdx].Items) {
		return ErrItemNotFound
	}
	next := s.tpl.Clone()
	applyItemPatch(&next.Pages[pageIdx].Sections[sectionIdx].Items[itemIdx], patch)
	s.commit(next)
	return nil
}

// DeleteSection removes a section from its page. The selection is cleared
// when it pointed at the deleted section or anything beneath it, and shifted
// when it pointed at a later sibling, so it always resolves to the node it
// referenced before the delete.
func (s *Session) DeleteSection(sectionID string) error {
	pageIdx, sectionIdx, ok := s.findSection(sectionID)
	if !ok {
		return ErrSectionNotFound
	}
	next := s.tpl.Clone()
	page := &next.Pages[pageIdx]
	page.Sections = append(page.Sections[:sectionIdx], page.Sections[sectionIdx+1:]...)

	if sel := s.selection; sel != nil && sel.Page == pageIdx {
		switch {
		case sel.Section == sectionIdx:
			s.selection = nil
		case sel.Section > sectionIdx:
			s.selection = &Selection{Page: sel.Page, Section: sel.Section - 1, Item: sel.Item}
		}
	}
	s.commit(next)
	return nil
}

// DuplicateSection deep-clones the section subtree under fresh ids, offsets
// the copy by (+20,+20) so it is discoverable on the canvas, and appends it
// as a sibling. The duplicate is returned.
func (s *Session) DuplicateSection(sectionID string) (model.Section, error) {
	pageIdx, sectionIdx, ok := s.findSection(sectionID)
	if !ok {
		return model.Section{}, ErrSectionNotFound
	}
	next := s.tpl.Clone()
	page := &next.Pages[pageIdx]
	dup := page.Sections[sectionIdx].Reidentify()
	dup.Position.X += DuplicateOffset
	dup.Position.Y += DuplicateOffset
	dup.Order = len(page.Sections)
	page.Sections = append(page.Sections, dup)
	s.commit(next)
	return dup, nil
}

// Select resolves a section id to a selection path focused on the section
// itself. An empty id clears the selection.
func (s *Session) Select(sectionID string) error {
	if sectionID == "" {
		s.selection = nil
		return nil
	}
	pageIdx, sectionIdx, ok := s.findSection(sectionID)
	if !ok {
		return ErrSectionNotFound
	}
	s.selection = &Selection{Page: pageIdx, Section: sectionIdx, Item: SelectionSectionItself}
	return nil
}

// ClearSelection drops the selection without touching the model.
func (s *Session) ClearSelection() {
	s.selection = nil
}

// SelectItem focuses an item inside the currently resolvable section path.
func (s *Session) SelectItem(pageIdx, sectionIdx, itemIdx int) error {
	if pageIdx < 0 || pageIdx >= len(s.tpl.Pages) {
		return ErrPageNotFound
	}
	page := s.tpl.Pages[pageIdx]
	if sectionIdx < 0 || sectionIdx >= len(page.Sections) {
		return ErrSectionNotFound
	}
	if itemIdx < 0 || itemIdx >= len(page.Sections[sectionIdx].Items) {
		return ErrItemNotFound
	}
	s.selection = &Selection{Page: pageIdx, Section: sectionIdx, Item: itemIdx}
	return nil
}

func (s *Session) findSection(sectionID string) (pageIdx, sectionIdx int, ok bool) {
	if sectionID == "" {
		return 0, 0, false
	}
	for pi, page := range s.tpl.Pages {
		for si, section := range page.Sections {
			if section.ID == sectionID {
				return pi, si, true
			}
		}
	}
	return 0, 0, false
}
