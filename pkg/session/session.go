// Package session is the only legal way to change a template once created.
// Every operation is total, validates its target before touching anything,
// and commits a brand-new model snapshot so renderers holding the previous
// value never observe a half-applied change.
package session

import (
	"fmt"
	"time"

	"github.com/auditkit/templatebuilder/pkg/model"
)

// Selection addresses the currently focused node as a (page, section, item)
// index path. Item == SelectionSectionItself means the section itself is
// focused rather than one of its items.
type Selection struct {
	Page    int
	Section int
	Item    int
}

// SelectionSectionItself is the Item value meaning "the section, not an item
// inside it".
const SelectionSectionItself = -1

// Session owns a template draft, its transient selection, and the current
// page pointer. It assumes a single-threaded event-driven caller; mutations
// run to completion before the next one starts.
type Session struct {
	tpl         model.Template
	selection   *Selection
	currentPage int
	version     uint64
}

// New opens an editing session over the given template. A template with no
// pages is auto-provisioned with one empty page, the minimum shape editing
// requires; order attributes are renormalized on entry. New trusts its
// input: templates built through the model constructors cannot carry
// duplicate ids. Payloads from outside the process go through Load instead.
func New(tpl model.Template) *Session {
	tpl = tpl.Clone()
	if len(tpl.Pages) == 0 {
		tpl.Pages = []model.Page{model.NewPage(0)}
	}
	tpl.Normalize()
	return &Session{tpl: tpl}
}

// Load opens a session over an externally sourced template (a stored JSON
// payload, an import). The tree is validated first: every mutation addresses
// nodes by id, so a duplicate id would silently target the wrong node.
func Load(tpl model.Template) (*Session, error) {
	// An empty payload still gets the auto-provisioned page; only a tree
	// that actually carries nodes can carry colliding ids.
	if len(tpl.Pages) > 0 {
		if err := tpl.Validate(); err != nil {
			return nil, fmt.Errorf("session: load template: %w", err)
		}
	}
	return New(tpl), nil
}

// Template returns the current model snapshot. The snapshot is immutable by
// convention: the session never writes into it again (each mutation commits a
// fresh clone), and callers must not either.
func (s *Session) Template() model.Template {
	return s.tpl
}

// Version increments on every committed mutation. Persistence stamps each
// in-flight save with the version it serialized so responses for superseded
// snapshots can be discarded.
func (s *Session) Version() uint64 {
	return s.version
}

// Selection returns a copy of the current selection, or nil when nothing is
// selected.
func (s *Session) Selection() *Selection {
	if s.selection == nil {
		return nil
	}
	sel := *s.selection
	return &sel
}

// CurrentPage returns the index of the page the editor is focused on.
func (s *Session) CurrentPage() int {
	return s.currentPage
}

// AdoptBackendID records the identity the persistence backend assigned on
// create. Reconciliation, not an edit: the version is deliberately left
// untouched so in-flight saves stay valid.
func (s *Session) AdoptBackendID(id string) {
	if id == "" || s.tpl.ID != "" {
		return
	}
	next := s.tpl.Clone()
	next.ID = id
	s.tpl = next
}

// SetPublished flips the published flag. The coordinator applies it
// optimistically before persisting and calls it again to roll back when the
// write fails.
func (s *Session) SetPublished(published bool) {
	if s.tpl.IsPublished == published {
		return
	}
	next := s.tpl.Clone()
	next.IsPublished = published
	s.commit(next)
}

// commit installs a new snapshot, stamps it, and renormalizes order.
func (s *Session) commit(next model.Template) {
	next.Normalize()
	next.UpdatedAt = time.Now().UTC()
	s.tpl = next
	s.version++
}
