package editor

import (
	"fmt"

	"github.com/formdeck/formdeck/pkg/schema"
)

// Decode converts a stored structure into the ordered descriptor list the
// builder edits. Field order is preserved.
func Decode(s schema.Structure) []FieldDescriptor {
	if len(s) == 0 {
		return nil
	}
	out := make([]FieldDescriptor, 0, len(s))
	for _, field := range s {
		out = append(out, decodeField(field))
	}
	return out
}

func decodeField(field schema.FieldSpec) FieldDescriptor {
	desc := FieldDescriptor{Name: field.Name, Type: field.Kind, ItemType: schema.KindString}
	switch field.Kind {
	case schema.KindObject:
		desc.Children = Decode(schema.Structure(field.Children))
	case schema.KindArray:
		desc.ItemType = field.ItemKind
		if field.ItemKind == schema.KindObject {
			desc.Children = Decode(schema.Structure(field.Items))
		}
	}
	return desc
}

// Encode folds a descriptor list back into a structure. It is the inverse of
// Decode: Encode(Decode(s)) == s for any well-formed structure, and
// Decode(Encode(d)) preserves descriptor shape for unique sibling names.
func Encode(descriptors []FieldDescriptor) (schema.Structure, error) {
	if len(descriptors) == 0 {
		return nil, nil
	}
	out := make(schema.Structure, 0, len(descriptors))
	for _, desc := range descriptors {
		field, err := encodeField(desc)
		if err != nil {
			return nil, err
		}
		out = append(out, field)
	}
	return out, nil
}

func encodeField(desc FieldDescriptor) (schema.FieldSpec, error) {
	switch desc.Type {
	case schema.KindString, schema.KindNumber:
		return schema.FieldSpec{Name: desc.Name, Kind: desc.Type}, nil
	case schema.KindObject:
		children, err := Encode(desc.Children)
		if err != nil {
			return schema.FieldSpec{}, err
		}
		return schema.FieldSpec{Name: desc.Name, Kind: schema.KindObject, Children: children}, nil
	case schema.KindArray:
		field := schema.FieldSpec{Name: desc.Name, Kind: schema.KindArray, ItemKind: desc.ItemType}
		switch desc.ItemType {
		case schema.KindString, schema.KindNumber:
		case schema.KindObject:
			items, err := Encode(desc.Children)
			if err != nil {
				return schema.FieldSpec{}, err
			}
			field.Items = items
		default:
			return schema.FieldSpec{}, fmt.Errorf("editor: field %q: unsupported item type %q", desc.Name, desc.ItemType)
		}
		return field, nil
	default:
		return schema.FieldSpec{}, fmt.Errorf("editor: field %q: unsupported type %q", desc.Name, desc.Type)
	}
}
