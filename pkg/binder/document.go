package binder

import "github.com/formdeck/formdeck/pkg/schema"

// Document is a response document: a mapping from field name to a primitive,
// a nested mapping, or a sequence. Values decoded from JSON satisfy this
// shape directly.
type Document = map[string]any

// Initialize produces the empty document for a structure: primitives start as
// empty strings, objects as recursively initialized mappings, and arrays as a
// sequence holding exactly one default item for the declared item shape.
// An array field with no declared item shape starts as an empty sequence.
func Initialize(s schema.Structure) Document {
	doc := make(Document, len(s))
	for _, field := range s {
		doc[field.Name] = defaultValue(field)
	}
	return doc
}

func defaultValue(field schema.FieldSpec) any {
	switch field.Kind {
	case schema.KindObject:
		return Initialize(schema.Structure(field.Children))
	case schema.KindArray:
		if item, ok := defaultItem(field); ok {
			return []any{item}
		}
		return []any{}
	default:
		return ""
	}
}

// defaultItem returns the default element for an array field, reporting false
// when the field declares no item shape.
func defaultItem(field schema.FieldSpec) (any, bool) {
	switch field.ItemKind {
	case schema.KindObject:
		return Initialize(field.ItemShape()), true
	case schema.KindString, schema.KindNumber:
		return "", true
	default:
		return nil, false
	}
}

// Read returns the value at a composite path, or an empty string when the
// addressed leaf is absent. Shape conflicts along the path are PathErrors,
// never defaulted.
func Read(doc Document, path string) (any, error) {
	segments, err := parsePath(path)
	if err != nil {
		return nil, err
	}

	var current any = map[string]any(doc)
	for _, seg := range segments {
		switch container := current.(type) {
		case map[string]any:
			if seg.isIdx {
				return nil, &PathError{Path: path, Reason: "index segment on a mapping"}
			}
			value, ok := container[seg.name]
			if !ok {
				return "", nil
			}
			current = value
		case []any:
			if !seg.isIdx {
				return nil, &PathError{Path: path, Reason: "field segment " + seg.name + " on a sequence"}
			}
			if seg.index >= len(container) {
				return "", nil
			}
			current = container[seg.index]
		default:
			return nil, &PathError{Path: path, Reason: "segment " + seg.String() + " addresses a primitive"}
		}
	}
	return current, nil
}

// Write returns a new document with the value at path replaced. Ancestor
// containers along the path are shallow-copied; untouched siblings keep their
// identity. The input document is never mutated.
func Write(doc Document, path string, value any) (Document, error) {
	segments, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	updated, err := writeValue(map[string]any(doc), segments, value, path)
	if err != nil {
		return nil, err
	}
	return updated.(map[string]any), nil
}

func writeValue(current any, segments []segment, value any, path string) (any, error) {
	if len(segments) == 0 {
		return value, nil
	}
	seg := segments[0]

	switch container := current.(type) {
	case map[string]any:
		if seg.isIdx {
			return nil, &PathError{Path: path, Reason: "index segment on a mapping"}
		}
		child, ok := container[seg.name]
		if !ok && len(segments) > 1 {
			return nil, &PathError{Path: path, Reason: "intermediate field " + seg.name + " is absent"}
		}
		updated, err := writeValue(child, segments[1:], value, path)
		if err != nil {
			return nil, err
		}
		clone := make(map[string]any, len(container)+1)
		for k, v := range container {
			clone[k] = v
		}
		clone[seg.name] = updated
		return clone, nil
	case []any:
		if !seg.isIdx {
			return nil, &PathError{Path: path, Reason: "field segment " + seg.name + " on a sequence"}
		}
		if seg.index >= len(container) {
			return nil, &PathError{Path: path, Reason: "index " + seg.String() + " out of range"}
		}
		updated, err := writeValue(container[seg.index], segments[1:], value, path)
		if err != nil {
			return nil, err
		}
		clone := make([]any, len(container))
		copy(clone, container)
		clone[seg.index] = updated
		return clone, nil
	default:
		return nil, &PathError{Path: path, Reason: "segment " + seg.String() + " addresses a primitive"}
	}
}
