// Package coordinator reconciles an editor-local template draft with a
// remote store. It owns the create-or-update decision, serializes saves so a
// draft can never fork two backend identities, and applies publish toggles
// optimistically with rollback on persistence failure.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/auditkit/templatebuilder/pkg/model"
	"github.com/auditkit/templatebuilder/pkg/session"
)

// Store is the persistence collaborator contract. Both calls accept the full
// serialized document model and are expected to be idempotent under retry
// with the same backend id.
type Store interface {
	Create(ctx context.Context, tpl model.Template) (string, error)
	Update(ctx context.Context, id string, tpl model.Template) error
}

// PublishState tracks the optimistic publish machine explicitly so the
// rollback path is observable in isolation.
type PublishState string

const (
	PublishIdle       PublishState = "idle"
	PublishPending    PublishState = "pending"
	PublishCommitted  PublishState = "committed"
	PublishRolledBack PublishState = "rolled_back"
)

// Coordinator binds a store to one editing session. A save in flight blocks
// subsequent saves instead of racing them.
type Coordinator struct {
	mu    sync.Mutex
	store Store
	sess  *session.Session

	savedVersion uint64
	everSaved    bool
	publishState PublishState
}

// New binds the coordinator to a session and store.
func New(store Store, sess *session.Session) (*Coordinator, error) {
	if store == nil {
		return nil, errors.New("coordinator: store is required")
	}
	if sess == nil {
		return nil, errors.New("coordinator: session is required")
	}
	return &Coordinator{store: store, sess: sess, publishState: PublishIdle}, nil
}

// Save persists the current snapshot: create when the draft has no backend
// identity yet, update against that identity afterwards. The backend id
// returned by create is always adopted (identity reconciliation holds even
// when the user kept editing), but the clean-state bookkeeping is discarded
// when the snapshot was superseded mid-flight.
func (c *Coordinator) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveLocked(ctx)
}

func (c *Coordinator) saveLocked(ctx context.Context) error {
	tpl := c.sess.Template()
	stamped := c.sess.Version()

	if tpl.ID == "" {
		id, err := c.store.Create(ctx, tpl)
		if err != nil {
			return fmt.Errorf("coordinator: create template: %w", err)
		}
		c.sess.AdoptBackendID(id)
	} else {
		if err := c.store.Update(ctx, tpl.ID, tpl); err != nil {
			return fmt.Errorf("coordinator: update template %s: %w", tpl.ID, err)
		}
	}

	// A snapshot edited past while the write was in flight is superseded;
	// its acknowledgement must not mark the newer state clean.
	if c.sess.Version() == stamped {
		c.savedVersion = stamped
		c.everSaved = true
	}
	return nil
}

// Publish toggles is_published on, persists, and rolls the flag back when
// the write fails. Local and remote published state never silently diverge.
func (c *Coordinator) Publish(ctx context.Context) error {
	return c.togglePublished(ctx, true)
}

// Unpublish mirrors Publish with the flag off.
func (c *Coordinator) Unpublish(ctx context.Context) error {
	return c.togglePublished(ctx, false)
}

func (c *Coordinator) togglePublished(ctx context.Context, target bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	previous := c.sess.Template().IsPublished
	if previous == target {
		return nil
	}

	c.publishState = PublishPending
	c.sess.SetPublished(target)

	if err := c.saveLocked(ctx); err != nil {
		c.sess.SetPublished(previous)
		c.publishState = PublishRolledBack
		return fmt.Errorf("coordinator: publish: %w", err)
	}

	c.publishState = PublishCommitted
	return nil
}

// Synced reports whether the draft has a backend identity.
func (c *Coordinator) Synced() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess.Template().ID != ""
}

// Dirty reports whether the session has mutations no save has acknowledged.
func (c *Coordinator) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.everSaved {
		return true
	}
	return c.sess.Version() != c.savedVersion
}

// PublishState exposes the optimistic publish machine for status displays
// and tests.
func (c *Coordinator) PublishState() PublishState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.publishState
}
