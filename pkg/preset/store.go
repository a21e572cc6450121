// Package preset manages saved response documents: a cached list per form,
// free-text search, per-form filtering, and the flattened edit view.
package preset

import (
	"context"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/formdeck/formdeck/pkg/api"
	"github.com/formdeck/formdeck/pkg/binder"
	"github.com/formdeck/formdeck/pkg/schema"
)

// Backend is the slice of the API client the store needs. *api.Client
// satisfies it.
type Backend interface {
	Responses(ctx context.Context, formID int64) ([]api.SavedResponse, error)
	Submit(ctx context.Context, formID int64, doc binder.Document) (api.SavedResponse, error)
	UpdateResponse(ctx context.Context, id int64, doc binder.Document) (api.SavedResponse, error)
	DeleteResponse(ctx context.Context, id int64) error
}

// Store caches the saved responses of one form.
type Store struct {
	backend Backend
	formID  int64
	cached  []api.SavedResponse
}

// NewStore builds a store scoped to a single form.
func NewStore(backend Backend, formID int64) *Store {
	return &Store{backend: backend, formID: formID}
}

// Responses returns the cached list. Call Refresh first.
func (s *Store) Responses() []api.SavedResponse {
	return s.cached
}

// Refresh replaces the cache with the backend's current list.
func (s *Store) Refresh(ctx context.Context) error {
	saved, err := s.backend.Responses(ctx, s.formID)
	if err != nil {
		return fmt.Errorf("preset: refresh: %w", err)
	}
	s.cached = saved
	return nil
}

// Submit strips the disabled fields from the document and persists the rest
// as a new response. The input document is never mutated; the saved response
// is appended to the cache.
func (s *Store) Submit(ctx context.Context, form schema.Form, doc binder.Document, disabled map[string]struct{}) (api.SavedResponse, error) {
	filtered := binder.FilterDisabled(form.Structure, doc, disabled)
	saved, err := s.backend.Submit(ctx, form.ID, filtered)
	if err != nil {
		return api.SavedResponse{}, fmt.Errorf("preset: submit: %w", err)
	}
	s.cached = append(s.cached, saved)
	return saved, nil
}

// Update replaces a stored response's document and refreshes the cached copy.
func (s *Store) Update(ctx context.Context, id int64, doc binder.Document) (api.SavedResponse, error) {
	saved, err := s.backend.UpdateResponse(ctx, id, doc)
	if err != nil {
		return api.SavedResponse{}, fmt.Errorf("preset: update: %w", err)
	}
	for i := range s.cached {
		if s.cached[i].ID == id {
			s.cached[i] = saved
			break
		}
	}
	return saved, nil
}

// Delete removes a response. The cached entry is dropped only after the
// backend confirms the delete.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.backend.DeleteResponse(ctx, id); err != nil {
		return fmt.Errorf("preset: delete: %w", err)
	}
	kept := s.cached[:0]
	for _, saved := range s.cached {
		if saved.ID != id {
			kept = append(kept, saved)
		}
	}
	s.cached = kept
	return nil
}

// Search keeps the responses whose serialized response_data contains term,
// case-insensitively. An empty term returns the input unchanged. Order is
// preserved; no ranking.
func Search(responses []api.SavedResponse, term string) []api.SavedResponse {
	if term == "" {
		return responses
	}
	needle := strings.ToLower(term)
	var matched []api.SavedResponse
	for _, saved := range responses {
		serialized, err := json.Marshal(saved.ResponseData)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(string(serialized)), needle) {
			matched = append(matched, saved)
		}
	}
	return matched
}

// FilterByForm keeps the responses whose owning form has the given title,
// resolved through the form records. An empty title means no filtering.
func FilterByForm(responses []api.SavedResponse, forms []api.FormRecord, title string) []api.SavedResponse {
	if title == "" {
		return responses
	}
	titles := make(map[int64]string, len(forms))
	for _, form := range forms {
		titles[form.ID] = form.Title
	}
	var matched []api.SavedResponse
	for _, saved := range responses {
		if titles[saved.Form] == title {
			matched = append(matched, saved)
		}
	}
	return matched
}
