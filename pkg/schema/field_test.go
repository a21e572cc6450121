package schema

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStructureValidate(t *testing.T) {
	cases := []struct {
		name      string
		structure Structure
		wantErr   string
	}{
		{
			name: "valid",
			structure: Structure{
				{Name: "id", Kind: KindString},
				{Name: "meta", Kind: KindObject, Children: []FieldSpec{{Name: "note", Kind: KindString}}},
				{Name: "tags", Kind: KindArray, ItemKind: KindString},
			},
		},
		{
			name:      "empty name",
			structure: Structure{{Name: "  ", Kind: KindString}},
			wantErr:   "field name is empty",
		},
		{
			name: "duplicate siblings",
			structure: Structure{
				{Name: "id", Kind: KindString},
				{Name: "id", Kind: KindNumber},
			},
			wantErr: "duplicate sibling name",
		},
		{
			name: "duplicate only applies per scope",
			structure: Structure{
				{Name: "id", Kind: KindString},
				{Name: "meta", Kind: KindObject, Children: []FieldSpec{{Name: "id", Kind: KindString}}},
			},
		},
		{
			name:      "array without item kind",
			structure: Structure{{Name: "tags", Kind: KindArray}},
			wantErr:   "missing item kind",
		},
		{
			name:      "primitive with children",
			structure: Structure{{Name: "id", Kind: KindString, Children: []FieldSpec{{Name: "x", Kind: KindString}}}},
			wantErr:   "nested shape",
		},
		{
			name:      "unknown kind",
			structure: Structure{{Name: "id", Kind: Kind("uuid")}},
			wantErr:   "unknown field kind",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.structure.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestIdentifierFieldIsFirstTopLevelField(t *testing.T) {
	s := Structure{
		{Name: "serial", Kind: KindString},
		{Name: "owner", Kind: KindString},
	}
	if got := s.IdentifierField(); got != "serial" {
		t.Fatalf("expected identifier %q, got %q", "serial", got)
	}
	if got := (Structure{}).IdentifierField(); got != "" {
		t.Fatalf("expected empty identifier on empty structure, got %q", got)
	}
}

func TestWithFieldAndWithoutFieldDoNotMutate(t *testing.T) {
	base := Structure{{Name: "id", Kind: KindString}}

	grown := base.WithField(FieldSpec{Name: "age", Kind: KindNumber})
	if len(base) != 1 {
		t.Fatalf("WithField mutated receiver: %v", base)
	}
	if len(grown) != 2 || grown[1].Name != "age" {
		t.Fatalf("unexpected grown structure: %v", grown)
	}

	shrunk := grown.WithoutField("age")
	if len(grown) != 2 {
		t.Fatalf("WithoutField mutated receiver: %v", grown)
	}
	if diff := cmp.Diff(base, shrunk); diff != "" {
		t.Fatalf("unexpected shrunk structure (-want +got):\n%s", diff)
	}
}

func TestItemShape(t *testing.T) {
	objectArray := FieldSpec{Name: "rows", Kind: KindArray, ItemKind: KindObject, Items: []FieldSpec{{Name: "sku", Kind: KindString}}}
	if shape := objectArray.ItemShape(); len(shape) != 1 || shape[0].Name != "sku" {
		t.Fatalf("unexpected item shape: %v", shape)
	}
	primitiveArray := FieldSpec{Name: "tags", Kind: KindArray, ItemKind: KindString}
	if shape := primitiveArray.ItemShape(); shape != nil {
		t.Fatalf("expected nil item shape for primitive array, got %v", shape)
	}
}
