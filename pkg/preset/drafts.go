package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/formdeck/formdeck/pkg/binder"
)

// Draft is a partially filled response kept on local disk until the user
// submits or discards it.
type Draft struct {
	ID       string          `json:"id"`
	FormID   int64           `json:"form_id"`
	Document binder.Document `json:"document"`
}

// Drafts stores in-progress response documents under a directory, one JSON
// file per draft, named by a generated UUID.
type Drafts struct {
	dir string
}

// NewDrafts builds a draft store rooted at dir.
func NewDrafts(dir string) *Drafts {
	return &Drafts{dir: dir}
}

// Save persists a draft and returns its id. A draft with an existing id is
// overwritten in place; a blank id gets a fresh UUID.
func (d *Drafts) Save(draft Draft) (string, error) {
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	encoded, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return "", fmt.Errorf("preset: save draft: encode: %w", err)
	}
	if err := os.MkdirAll(d.dir, 0o700); err != nil {
		return "", fmt.Errorf("preset: save draft: %w", err)
	}
	if err := os.WriteFile(d.path(draft.ID), encoded, 0o600); err != nil {
		return "", fmt.Errorf("preset: save draft: %w", err)
	}
	return draft.ID, nil
}

// Load reads one draft by id. ok is false when no such draft exists.
func (d *Drafts) Load(id string) (Draft, bool, error) {
	raw, err := os.ReadFile(d.path(id))
	if os.IsNotExist(err) {
		return Draft{}, false, nil
	}
	if err != nil {
		return Draft{}, false, fmt.Errorf("preset: load draft: %w", err)
	}
	var draft Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return Draft{}, false, fmt.Errorf("preset: load draft: decode: %w", err)
	}
	return draft, true, nil
}

// List returns every stored draft, optionally limited to one form.
// formID <= 0 means all forms.
func (d *Drafts) List(formID int64) ([]Draft, error) {
	entries, err := os.ReadDir(d.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("preset: list drafts: %w", err)
	}
	var drafts []Draft
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		draft, ok, err := d.Load(id)
		if err != nil || !ok {
			continue
		}
		if formID > 0 && draft.FormID != formID {
			continue
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

// Discard deletes a draft. Missing drafts are not an error.
func (d *Drafts) Discard(id string) error {
	err := os.Remove(d.path(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("preset: discard draft: %w", err)
	}
	return nil
}

func (d *Drafts) path(id string) string {
	return filepath.Join(d.dir, id+".json")
}
