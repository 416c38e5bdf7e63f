// Package items renders individual template items to HTML. One registry
// serves both rendering contexts: the data interpretation of every item type
// is identical in canvas and preview mode, only interactivity and token
// substitution differ. That is what keeps the authoring surface honest about
// the output it produces.
package items

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/auditkit/templatebuilder/pkg/model"
	"github.com/auditkit/templatebuilder/pkg/render"
)

// RenderContext carries the per-render collaborators an item renderer needs.
type RenderContext struct {
	// Mode selects interactive (canvas) or read-only (preview) controls.
	Mode render.Mode
	// Substitute resolves {name} tokens. In canvas mode it is the identity
	// function so tokens stay visible to the author.
	Substitute func(string) string
	// Sanitize scrubs author-supplied HTML before it reaches output.
	Sanitize func(string) string
}

func (rc RenderContext) substitute(content string) string {
	if rc.Substitute == nil {
		return content
	}
	return rc.Substitute(content)
}

func (rc RenderContext) sanitize(content string) string {
	if rc.Sanitize == nil {
		return content
	}
	return rc.Sanitize(content)
}

func (rc RenderContext) readOnly() bool {
	return rc.Mode == render.ModePreview
}

// Renderer writes the control markup for a single item.
type Renderer func(buf *bytes.Buffer, item model.Item, rc RenderContext) error

// Registry maps item types to their renderers. Callers can override
// individual types; the default registry covers the full closed set.
type Registry struct {
	mu        sync.RWMutex
	renderers map[model.ItemType]Renderer
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{renderers: make(map[model.ItemType]Renderer)}
}

// Register associates a renderer with an item type, replacing any previous
// entry.
func (r *Registry) Register(kind model.ItemType, renderer Renderer) error {
	if kind == "" {
		return fmt.Errorf("items: item type is required")
	}
	if renderer == nil {
		return fmt.Errorf("items: renderer for %q is nil", kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[kind] = renderer
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(kind model.ItemType, renderer Renderer) {
	if err := r.Register(kind, renderer); err != nil {
		panic(err)
	}
}

// Covers reports whether a renderer is registered for the item type.
func (r *Registry) Covers(kind model.ItemType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.renderers[kind]
	return ok
}

// Render produces the full markup for one item: the shared field chrome plus
// the type-specific control. Unknown types degrade to the text control so a
// malformed item never blocks the rest of the document.
func (r *Registry) Render(item model.Item, rc RenderContext) (string, error) {
	r.mu.RLock()
	renderer, ok := r.renderers[item.Type]
	if !ok {
		renderer = r.renderers[model.ItemTypeText]
	}
	r.mu.RUnlock()

	if renderer == nil {
		return "", fmt.Errorf("items: no renderer for type %q and no text fallback", item.Type)
	}

	var control bytes.Buffer
	if err := renderer(&control, item, rc); err != nil {
		return "", fmt.Errorf("items: render %q item %q: %w", item.Type, item.ID, err)
	}
	return buildItemMarkup(item, control.String()), nil
}
