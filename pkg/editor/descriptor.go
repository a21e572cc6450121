// Package editor provides the flat, ordered field-descriptor list the form
// builder edits, and the lossless transform between that list and the stored
// schema structure.
package editor

import "github.com/formdeck/formdeck/pkg/schema"

// FieldDescriptor is one editable row in the builder. It exists only while a
// form definition is being edited; load and save pass through Decode/Encode.
type FieldDescriptor struct {
	Name     string
	Type     schema.Kind
	ItemType schema.Kind       // set when Type is KindArray
	Children []FieldDescriptor // set when Type is KindObject, or ItemType is KindObject
}

// NewFieldDescriptor returns a blank descriptor with the builder defaults: a
// string field with a string item type ready for an array upgrade.
func NewFieldDescriptor() FieldDescriptor {
	return FieldDescriptor{Type: schema.KindString, ItemType: schema.KindString}
}

// SetType switches the descriptor to a new type. Changing type discards the
// previous nested shape instead of attempting a partial conversion: children
// reset to empty and the item type resets to the default.
func (d FieldDescriptor) SetType(kind schema.Kind) FieldDescriptor {
	if kind == d.Type {
		return d
	}
	d.Type = kind
	d.Children = nil
	d.ItemType = schema.KindString
	return d
}

// SetItemType switches an array descriptor's item type, discarding the item
// shape when the items stop being objects.
func (d FieldDescriptor) SetItemType(kind schema.Kind) FieldDescriptor {
	if kind == d.ItemType {
		return d
	}
	d.ItemType = kind
	if kind != schema.KindObject {
		d.Children = nil
	}
	return d
}
