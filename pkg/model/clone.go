package model

// Clone returns a deep copy of the template. Every mutation in the editing
// session yields a fresh snapshot so renderers holding the previous value
// never observe a half-applied change.
func (t Template) Clone() Template {
	out := t
	out.Pages = make([]Page, len(t.Pages))
	for i, page := range t.Pages {
		out.Pages[i] = page.Clone()
	}
	if t.Metadata.Variables != nil {
		out.Metadata.Variables = append([]VariableDeclaration(nil), t.Metadata.Variables...)
	}
	return out
}

// Clone returns a deep copy of the page and everything beneath it.
func (p Page) Clone() Page {
	out := p
	out.Sections = make([]Section, len(p.Sections))
	for i, section := range p.Sections {
		out.Sections[i] = section.Clone()
	}
	return out
}

// Clone returns a deep copy of the section and its items. Identifiers are
// preserved; use Reidentify when the copy must become a distinct sibling.
func (s Section) Clone() Section {
	out := s
	out.Items = make([]Item, len(s.Items))
	for i, item := range s.Items {
		out.Items[i] = item.Clone()
	}
	return out
}

// Clone returns a deep copy of the item.
func (i Item) Clone() Item {
	out := i
	if i.Options != nil {
		out.Options = append([]string(nil), i.Options...)
	}
	return out
}

// Reidentify mints fresh ids for the section and every contained item,
// leaving all other attributes untouched. Duplicating a section must never
// reuse an id anywhere in the tree.
func (s Section) Reidentify() Section {
	out := s.Clone()
	out.ID = MintID("section")
	for i := range out.Items {
		out.Items[i].ID = MintID("item")
	}
	return out
}
