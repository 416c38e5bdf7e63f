package render

import "time"

// RenderOptions carries per-request data renderers may use without the model
// pipeline ever being mutated.
type RenderOptions struct {
	// Values supplies real variable values keyed by token name. When a
	// token is absent here the preview renderer falls back to the built-in
	// sample table and then to type-derived samples; the canvas renderer
	// ignores Values entirely.
	Values map[string]string

	// Now pins the clock used for date samples. Zero means time.Now.
	Now func() time.Time
}
