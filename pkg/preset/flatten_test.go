package preset

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/formdeck/formdeck/pkg/binder"
)

func TestFlattenObjectsOnly(t *testing.T) {
	doc := binder.Document{
		"name": "Ada",
		"address": map[string]any{
			"city": "London",
			"geo":  map[string]any{"lat": "51.5"},
		},
		"tags": []any{"a", "b"},
	}

	got := Flatten(doc)
	want := map[string]any{
		"name":            "Ada",
		"address.city":    "London",
		"address.geo.lat": "51.5",
		"tags":            []any{"a", "b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestUnflattenRoundTrip(t *testing.T) {
	doc := binder.Document{
		"name": "Ada",
		"address": map[string]any{
			"city": "London",
			"geo":  map[string]any{"lat": "51.5"},
		},
		"tags": []any{"a", "b"},
	}

	got := Unflatten(Flatten(doc))
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnflattenBuildsIntermediates(t *testing.T) {
	got := Unflatten(map[string]any{"a.b.c": "x", "a.b.d": "y", "e": "z"})
	want := binder.Document{
		"a": map[string]any{"b": map[string]any{"c": "x", "d": "y"}},
		"e": "z",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Unflatten mismatch (-want +got):\n%s", diff)
	}
}

func TestExportFileName(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Customer Intake", "Customer Intake.json"},
		{"", "response.json"},
		{"a/b", "a-b.json"},
	}
	for _, tc := range cases {
		if got := ExportFileName(tc.title); got != tc.want {
			t.Errorf("ExportFileName(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestExportWritesDocument(t *testing.T) {
	dir := t.TempDir()
	path, err := Export(dir, "Intake", binder.Document{"name": "Ada"})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if path != filepath.Join(dir, "Intake.json") {
		t.Errorf("path = %q", path)
	}
}

func TestDraftLifecycle(t *testing.T) {
	drafts := NewDrafts(t.TempDir())

	id, err := drafts.Save(Draft{FormID: 3, Document: binder.Document{"name": "Ada"}})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if id == "" {
		t.Fatal("Save() returned empty id")
	}

	draft, ok, err := drafts.Load(id)
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v, %v", draft, ok, err)
	}
	if draft.FormID != 3 || draft.Document["name"] != "Ada" {
		t.Errorf("loaded draft = %+v", draft)
	}

	listed, err := drafts.List(3)
	if err != nil || len(listed) != 1 {
		t.Fatalf("List(3) = %+v, %v", listed, err)
	}
	if other, err := drafts.List(99); err != nil || len(other) != 0 {
		t.Errorf("List(99) = %+v, %v", other, err)
	}

	if err := drafts.Discard(id); err != nil {
		t.Fatalf("Discard() error = %v", err)
	}
	if _, ok, _ := drafts.Load(id); ok {
		t.Error("draft still present after Discard")
	}
	if err := drafts.Discard(id); err != nil {
		t.Errorf("second Discard() error = %v", err)
	}
}
