// Package openapi imports OpenAPI component schemas as form definitions.
// Only the shapes the form model can express survive the conversion; every
// other type downgrades to a string field.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/formdeck/formdeck/pkg/schema"
)

// Components lists the named component schemas declared in an OpenAPI
// document, sorted by name.
func Components(ctx context.Context, data []byte) ([]string, error) {
	spec, err := load(ctx, data)
	if err != nil {
		return nil, err
	}
	if spec.Components == nil {
		return nil, nil
	}
	names := make([]string, 0, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ImportForm converts one named component schema into a form definition. The
// component must be an object schema; its title falls back to the component
// name. Property order follows sorted property names because the upstream
// parser does not preserve declaration order.
func ImportForm(ctx context.Context, data []byte, component string) (schema.Form, error) {
	spec, err := load(ctx, data)
	if err != nil {
		return schema.Form{}, err
	}
	if spec.Components == nil || spec.Components.Schemas[component] == nil {
		return schema.Form{}, fmt.Errorf("openapi: component schema %q not found", component)
	}
	source := spec.Components.Schemas[component].Value
	if source == nil {
		return schema.Form{}, fmt.Errorf("openapi: component schema %q is unresolved", component)
	}
	if !typeIs(source, "object") {
		return schema.Form{}, fmt.Errorf("openapi: component schema %q is not an object", component)
	}

	form := schema.Form{
		Title:       source.Title,
		Description: source.Description,
		Structure:   convertProperties(source),
	}
	if form.Title == "" {
		form.Title = component
	}
	if err := form.Structure.Validate(); err != nil {
		return schema.Form{}, fmt.Errorf("openapi: component schema %q: %w", component, err)
	}
	return form, nil
}

func load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if len(data) == 0 {
		return nil, errors.New("openapi: document is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return spec, nil
}

func convertProperties(source *openapi3.Schema) schema.Structure {
	names := make([]string, 0, len(source.Properties))
	for name := range source.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make(schema.Structure, 0, len(names))
	for _, name := range names {
		ref := source.Properties[name]
		if ref == nil || ref.Value == nil {
			fields = append(fields, schema.FieldSpec{Name: name, Kind: schema.KindString})
			continue
		}
		fields = append(fields, convertField(name, ref.Value))
	}
	return fields
}

func convertField(name string, source *openapi3.Schema) schema.FieldSpec {
	switch {
	case typeIs(source, "object"):
		children := convertProperties(source)
		if len(children) == 0 {
			// Open objects have no declared shape the form model can edit.
			return schema.FieldSpec{Name: name, Kind: schema.KindString}
		}
		return schema.FieldSpec{Name: name, Kind: schema.KindObject, Children: children}

	case typeIs(source, "array"):
		return convertArray(name, source)

	case typeIs(source, "integer"), typeIs(source, "number"):
		return schema.FieldSpec{Name: name, Kind: schema.KindNumber}

	default:
		// string, boolean, and anything exotic become text fields.
		return schema.FieldSpec{Name: name, Kind: schema.KindString}
	}
}

func convertArray(name string, source *openapi3.Schema) schema.FieldSpec {
	field := schema.FieldSpec{Name: name, Kind: schema.KindArray, ItemKind: schema.KindString}
	if source.Items == nil || source.Items.Value == nil {
		return field
	}
	items := source.Items.Value
	switch {
	case typeIs(items, "object"):
		children := convertProperties(items)
		if len(children) == 0 {
			return field
		}
		field.ItemKind = schema.KindObject
		field.Items = children
	case typeIs(items, "integer"), typeIs(items, "number"):
		field.ItemKind = schema.KindNumber
	}
	return field
}

func typeIs(source *openapi3.Schema, name string) bool {
	return source.Type != nil && source.Type.Is(name)
}
