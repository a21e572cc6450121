// Package render defines the renderer contract and the recursive walk that
// turns a form structure plus a response document into an ordered list of UI
// field descriptors.
package render

import (
	"context"

	"github.com/formdeck/formdeck/pkg/binder"
	"github.com/formdeck/formdeck/pkg/schema"
)

// Renderer converts a form and its working document into a byte
// representation (HTML, terminal session output, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form schema.Form, doc binder.Document, opts Options) ([]byte, error)
}

// Options carry per-request rendering state.
type Options struct {
	// Identifier names the field annotated with the primary-key hint. When
	// empty, the structure's first top-level field is used. Display-only.
	Identifier string
	// Disabled holds dotted field paths rendered inert. Disabled fields stay
	// visible and keep their last value until submission-time filtering.
	Disabled map[string]struct{}
	// Errors surfaces server-side validation feedback keyed by field path.
	Errors map[string][]string
}
