package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/formdeck/formdeck/pkg/schema"
)

func sampleStructure() schema.Structure {
	return schema.Structure{
		{Name: "serial", Kind: schema.KindString},
		{Name: "owner", Kind: schema.KindObject, Children: []schema.FieldSpec{
			{Name: "name", Kind: schema.KindString},
			{Name: "age", Kind: schema.KindNumber},
		}},
		{Name: "tags", Kind: schema.KindArray, ItemKind: schema.KindString},
		{Name: "parts", Kind: schema.KindArray, ItemKind: schema.KindObject, Items: []schema.FieldSpec{
			{Name: "sku", Kind: schema.KindString},
		}},
	}
}

func TestDecodeProducesOrderedDescriptors(t *testing.T) {
	got := Decode(sampleStructure())

	want := []FieldDescriptor{
		{Name: "serial", Type: schema.KindString, ItemType: schema.KindString},
		{Name: "owner", Type: schema.KindObject, ItemType: schema.KindString, Children: []FieldDescriptor{
			{Name: "name", Type: schema.KindString, ItemType: schema.KindString},
			{Name: "age", Type: schema.KindNumber, ItemType: schema.KindString},
		}},
		{Name: "tags", Type: schema.KindArray, ItemType: schema.KindString},
		{Name: "parts", Type: schema.KindArray, ItemType: schema.KindObject, Children: []FieldDescriptor{
			{Name: "sku", Type: schema.KindString, ItemType: schema.KindString},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected descriptors (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := sampleStructure()

	encoded, err := Encode(Decode(original))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if diff := cmp.Diff(original, encoded); diff != "" {
		t.Fatalf("structure did not survive round trip (-want +got):\n%s", diff)
	}
}

func TestDecodeEncodePreservesWirePayload(t *testing.T) {
	payload := `{"serial":"string","owner":{"name":"string"},"tags":{"type":"array","items":"string"}}`

	structure, err := schema.DecodeStructure([]byte(payload))
	if err != nil {
		t.Fatalf("decode structure: %v", err)
	}
	encoded, err := Encode(Decode(structure))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	wire, err := schema.EncodeStructure(encoded)
	if err != nil {
		t.Fatalf("encode structure: %v", err)
	}
	got, err := schema.CompactJSON(wire)
	if err != nil {
		t.Fatalf("compact: %v", err)
	}
	if got != payload {
		t.Fatalf("wire payload drifted:\nwant %s\ngot  %s", payload, got)
	}
}

func TestSetTypeDiscardsNestedShape(t *testing.T) {
	desc := FieldDescriptor{
		Name: "owner",
		Type: schema.KindObject,
		Children: []FieldDescriptor{
			{Name: "name", Type: schema.KindString, ItemType: schema.KindString},
		},
		ItemType: schema.KindString,
	}

	changed := desc.SetType(schema.KindArray)
	if len(changed.Children) != 0 {
		t.Fatalf("expected children discarded on type change, got %v", changed.Children)
	}
	if changed.ItemType != schema.KindString {
		t.Fatalf("expected item type reset to default, got %q", changed.ItemType)
	}
	if len(desc.Children) != 1 {
		t.Fatalf("SetType mutated receiver: %v", desc)
	}

	// No residual shape may survive serialization after the change.
	encoded, err := Encode([]FieldDescriptor{changed})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(encoded[0].Items) != 0 || len(encoded[0].Children) != 0 {
		t.Fatalf("residual nested shape survived serialization: %+v", encoded[0])
	}
}

func TestSetTypeSameKindKeepsShape(t *testing.T) {
	desc := FieldDescriptor{
		Name:     "owner",
		Type:     schema.KindObject,
		ItemType: schema.KindString,
		Children: []FieldDescriptor{{Name: "name", Type: schema.KindString, ItemType: schema.KindString}},
	}
	same := desc.SetType(schema.KindObject)
	if diff := cmp.Diff(desc, same); diff != "" {
		t.Fatalf("same-type change altered descriptor (-want +got):\n%s", diff)
	}
}

func TestSetItemTypeDiscardsItemShapeForPrimitives(t *testing.T) {
	desc := FieldDescriptor{
		Name:     "parts",
		Type:     schema.KindArray,
		ItemType: schema.KindObject,
		Children: []FieldDescriptor{{Name: "sku", Type: schema.KindString, ItemType: schema.KindString}},
	}
	changed := desc.SetItemType(schema.KindNumber)
	if len(changed.Children) != 0 {
		t.Fatalf("expected item shape discarded, got %v", changed.Children)
	}
	if changed.ItemType != schema.KindNumber {
		t.Fatalf("unexpected item type %q", changed.ItemType)
	}
}

func TestEncodeRejectsUnknownTypes(t *testing.T) {
	if _, err := Encode([]FieldDescriptor{{Name: "x", Type: schema.Kind("uuid")}}); err == nil {
		t.Fatal("expected error for unknown descriptor type")
	}
	if _, err := Encode([]FieldDescriptor{{Name: "x", Type: schema.KindArray, ItemType: schema.Kind("uuid")}}); err == nil {
		t.Fatal("expected error for unknown item type")
	}
}
