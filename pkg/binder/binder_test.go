package binder

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/formdeck/formdeck/pkg/schema"
)

func TestAppendArrayItemGrowsByExactlyOne(t *testing.T) {
	b := New(fillStructure())
	doc := b.Initialize()

	grown, err := b.AppendArrayItem(doc, "items")
	if err != nil {
		t.Fatalf("AppendArrayItem returned error: %v", err)
	}

	before := doc["items"].([]any)
	after := grown["items"].([]any)
	if len(after) != len(before)+1 {
		t.Fatalf("expected length %d, got %d", len(before)+1, len(after))
	}
	// Existing items are shared, never mutated.
	beforePtr := reflect.ValueOf(before[0]).Pointer()
	afterPtr := reflect.ValueOf(after[0]).Pointer()
	if beforePtr != afterPtr {
		t.Fatal("expected existing items to be shared")
	}
	want := map[string]any{"sku": "", "qty": ""}
	if diff := cmp.Diff(want, after[len(after)-1]); diff != "" {
		t.Fatalf("unexpected appended item (-want +got):\n%s", diff)
	}
}

func TestAppendArrayItemPrimitiveItems(t *testing.T) {
	b := New(fillStructure())
	doc := b.Initialize()

	grown, err := b.AppendArrayItem(doc, "tags")
	if err != nil {
		t.Fatalf("AppendArrayItem returned error: %v", err)
	}
	after := grown["tags"].([]any)
	if len(after) != 2 || after[1] != "" {
		t.Fatalf("unexpected tags after append: %v", after)
	}
}

func TestAppendArrayItemOnNonArrayIsPathError(t *testing.T) {
	b := New(fillStructure())
	doc := b.Initialize()

	for _, path := range []string{"name", "address", "ghost"} {
		_, err := b.AppendArrayItem(doc, path)
		var pathErr *PathError
		if !errors.As(err, &pathErr) {
			t.Fatalf("AppendArrayItem(%q): expected PathError, got %v", path, err)
		}
	}
}

func TestAddDynamicFieldExtendsStructureAndDocument(t *testing.T) {
	b := New(fillStructure())
	doc := b.Initialize()

	updated := b.AddDynamicField(doc, "nickname", schema.KindString)
	if _, ok := updated["nickname"]; !ok {
		t.Fatal("expected document key for dynamic field")
	}
	if _, ok := b.Structure().Field("nickname"); !ok {
		t.Fatal("expected structure field for dynamic field")
	}
	if _, ok := doc["nickname"]; ok {
		t.Fatal("original document mutated")
	}

	withArray := b.AddDynamicField(updated, "extras", schema.KindArray)
	sequence, ok := withArray["extras"].([]any)
	if !ok || len(sequence) != 1 {
		t.Fatalf("expected dynamic array with one default item, got %v", withArray["extras"])
	}
}

func TestAddDynamicFieldNoOps(t *testing.T) {
	base := fillStructure()

	adminBinder := New(base, WithAdmin(true))
	doc := adminBinder.Initialize()
	if got := adminBinder.AddDynamicField(doc, "nickname", schema.KindString); len(got) != len(doc) {
		t.Fatal("admin session must not add dynamic fields")
	}

	userBinder := New(base)
	if got := userBinder.AddDynamicField(doc, "", schema.KindString); len(got) != len(doc) {
		t.Fatal("empty name must be a no-op")
	}
	if got := userBinder.AddDynamicField(doc, "name", schema.KindString); len(got) != len(doc) {
		t.Fatal("colliding name must be a no-op")
	}
}

func TestRemoveDynamicFieldDropsKeyEntirely(t *testing.T) {
	b := New(fillStructure())
	doc := b.AddDynamicField(b.Initialize(), "age2", schema.KindNumber)

	removed := b.RemoveDynamicField(doc, "age2")
	if _, ok := removed["age2"]; ok {
		t.Fatal("expected key dropped from document")
	}
	if _, ok := b.Structure().Field("age2"); ok {
		t.Fatal("expected field dropped from structure")
	}
	if _, ok := doc["age2"]; !ok {
		t.Fatal("original document mutated")
	}
}

func TestFilterDisabledStripsRecursively(t *testing.T) {
	b := New(fillStructure())
	doc := Document{
		"name":    "widget",
		"age":     "3",
		"address": map[string]any{"city": "Oslo", "zip": "0150"},
		"tags":    []any{"a"},
		"items": []any{
			map[string]any{"sku": "X1", "qty": "2"},
			map[string]any{"sku": "X2", "qty": "5"},
		},
	}

	b.DisableField("age")
	b.DisableField("address.zip")
	b.DisableField("items.qty")

	got := b.FilterDisabled(doc)
	want := Document{
		"name":    "widget",
		"address": map[string]any{"city": "Oslo"},
		"tags":    []any{"a"},
		"items": []any{
			map[string]any{"sku": "X1"},
			map[string]any{"sku": "X2"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected filtered document (-want +got):\n%s", diff)
	}

	// The unfiltered document keeps the disabled values for display.
	if doc["age"] != "3" {
		t.Fatal("FilterDisabled mutated its input")
	}
	if qty := doc["items"].([]any)[0].(map[string]any)["qty"]; qty != "2" {
		t.Fatal("FilterDisabled mutated nested input")
	}
}

func TestDisableFieldAdminAndEnable(t *testing.T) {
	b := New(fillStructure(), WithAdmin(true))
	b.DisableField("age")
	if b.IsDisabled("age") {
		t.Fatal("admin session must not disable fields")
	}

	user := New(fillStructure())
	user.DisableField("age")
	user.DisableField("address.zip")
	if got := user.DisabledFields(); len(got) != 2 || got[0] != "address.zip" {
		t.Fatalf("unexpected disabled fields: %v", got)
	}
	user.EnableField("age")
	if user.IsDisabled("age") {
		t.Fatal("expected field re-enabled")
	}
}
