// Package template defines the engine seam the HTML renderer draws on.
package template

import "io"

// Renderer is the template-engine contract. Renderers depend on this seam
// rather than a concrete engine so template backends stay swappable.
type Renderer interface {
	// RenderTemplate renders a named template from the engine's source set.
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	// RenderString parses and renders inline template content.
	RenderString(content string, data any, out ...io.Writer) (string, error)
	// RegisterFilter adds a named value filter available to all templates.
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	// GlobalContext seeds values visible to every render call.
	GlobalContext(data any) error
}
