// Package formdeck builds custom data-entry forms, fills them into nested
// response documents, and manages the resulting submissions against a REST
// backend. The root package re-exports the common types and offers one-call
// entry points; the pkg/ tree holds the full surface.
package formdeck

import (
	"context"
	"fmt"

	"github.com/formdeck/formdeck/pkg/api"
	"github.com/formdeck/formdeck/pkg/binder"
	"github.com/formdeck/formdeck/pkg/editor"
	"github.com/formdeck/formdeck/pkg/render"
	"github.com/formdeck/formdeck/pkg/renderers/tui"
	"github.com/formdeck/formdeck/pkg/renderers/vanilla"
	"github.com/formdeck/formdeck/pkg/schema"
)

// Form is a stored form definition: title, description, and field structure.
type Form = schema.Form

// FieldSpec is one node in a form's structure.
type FieldSpec = schema.FieldSpec

// Structure is the ordered field list of a form.
type Structure = schema.Structure

// Document is a nested response document produced by filling a form.
type Document = binder.Document

// FieldDescriptor is the flat, editable view of one field in the builder.
type FieldDescriptor = editor.FieldDescriptor

// RenderOptions carries per-render state: identifier override, disabled
// fields, and server-side validation errors.
type RenderOptions = render.Options

// DecodeStructure parses the wire form of a structure, preserving field order.
func DecodeStructure(data []byte) (Structure, error) {
	return schema.DecodeStructure(data)
}

// EncodeStructure serializes a structure to its wire form.
func EncodeStructure(s Structure) ([]byte, error) {
	return schema.EncodeStructure(s)
}

// Initialize produces the default document for a structure.
func Initialize(s Structure) Document {
	return binder.Initialize(s)
}

// NewClient constructs an API client for the forms backend.
func NewClient(baseURL string, options ...api.Option) *api.Client {
	return api.New(baseURL, options...)
}

// NewRegistry returns a renderer registry with the built-in renderers
// installed.
func NewRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()

	html, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("formdeck: build html renderer: %w", err)
	}
	registry.MustRegister(html)

	terminal, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("formdeck: build tui renderer: %w", err)
	}
	registry.MustRegister(terminal)

	return registry, nil
}

// RenderHTML renders a form with its bound document as a standalone HTML
// page using the built-in renderer.
func RenderHTML(ctx context.Context, form Form, doc Document, opts RenderOptions) ([]byte, error) {
	renderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = Initialize(form.Structure)
	}
	return renderer.Render(ctx, form, doc, opts)
}
