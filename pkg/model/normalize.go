package model

import "fmt"

// Normalize renormalizes every order attribute to a dense 0..n-1 run matching
// slice position. The session calls this after each structural change so
// order never drifts from the array layout it mirrors.
func (t *Template) Normalize() {
	for pi := range t.Pages {
		t.Pages[pi].Order = pi
		for si := range t.Pages[pi].Sections {
			t.Pages[pi].Sections[si].Order = si
			for ii := range t.Pages[pi].Sections[si].Items {
				t.Pages[pi].Sections[si].Items[ii].Order = ii
			}
		}
	}
}

// Validate checks the structural invariants the editing session relies on:
// at least one page, and pairwise-distinct ids across the whole tree.
func (t Template) Validate() error {
	if len(t.Pages) == 0 {
		return fmt.Errorf("model: template %q has no pages", t.Title)
	}
	seen := make(map[string]string)
	record := func(id, kind string) error {
		if id == "" {
			return fmt.Errorf("model: %s with empty id", kind)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("model: id %q shared by %s and %s", id, prev, kind)
		}
		seen[id] = kind
		return nil
	}
	for _, page := range t.Pages {
		if err := record(page.ID, "page"); err != nil {
			return err
		}
		for _, section := range page.Sections {
			if err := record(section.ID, "section"); err != nil {
				return err
			}
			for _, item := range section.Items {
				if err := record(item.ID, "item"); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
