package api

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/formdeck/formdeck/pkg/binder"
	"github.com/formdeck/formdeck/pkg/schema"
)

// FormRecord is the wire shape of a stored form. FormStructure is kept raw so
// key order survives until the structure codec decodes it.
type FormRecord struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	FormStructure json.RawMessage `json:"form_structure"`
}

// Form decodes the record into the domain model.
func (r FormRecord) Form() (schema.Form, error) {
	structure, err := schema.DecodeStructure(r.FormStructure)
	if err != nil {
		return schema.Form{}, fmt.Errorf("api: decode form %d structure: %w", r.ID, err)
	}
	return schema.Form{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Structure:   structure,
	}, nil
}

// Forms lists every form visible to the authenticated user.
func (c *Client) Forms(ctx context.Context) ([]FormRecord, error) {
	var records []FormRecord
	if err := c.do(ctx, "list forms", "GET", "/api/forms/", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetForm fetches a single form by id.
func (c *Client) GetForm(ctx context.Context, id int64) (FormRecord, error) {
	var record FormRecord
	path := fmt.Sprintf("/api/forms/%d/", id)
	if err := c.do(ctx, "get form", "GET", path, nil, &record); err != nil {
		return FormRecord{}, err
	}
	return record, nil
}

// CreateForm stores a new form definition. The structure is serialized with
// its field order intact.
func (c *Client) CreateForm(ctx context.Context, form schema.Form) (FormRecord, error) {
	payload, err := formPayload(form)
	if err != nil {
		return FormRecord{}, err
	}
	var record FormRecord
	if err := c.do(ctx, "create form", "POST", "/api/forms/", payload, &record); err != nil {
		return FormRecord{}, err
	}
	return record, nil
}

// UpdateForm replaces an existing form definition.
func (c *Client) UpdateForm(ctx context.Context, form schema.Form) (FormRecord, error) {
	payload, err := formPayload(form)
	if err != nil {
		return FormRecord{}, err
	}
	var record FormRecord
	path := fmt.Sprintf("/api/forms/%d/", form.ID)
	if err := c.do(ctx, "update form", "PUT", path, payload, &record); err != nil {
		return FormRecord{}, err
	}
	return record, nil
}

// DeleteForm removes a form and its responses.
func (c *Client) DeleteForm(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/forms/%d/", id)
	return c.do(ctx, "delete form", "DELETE", path, nil, nil)
}

// Submit posts a filled response document for a form.
func (c *Client) Submit(ctx context.Context, formID int64, doc binder.Document) (SavedResponse, error) {
	payload := map[string]any{"response_data": doc}
	var saved SavedResponse
	path := fmt.Sprintf("/api/forms/%d/submit/", formID)
	if err := c.do(ctx, "submit response", "POST", path, payload, &saved); err != nil {
		return SavedResponse{}, err
	}
	return saved, nil
}

func formPayload(form schema.Form) (json.RawMessage, error) {
	structure, err := schema.EncodeStructure(form.Structure)
	if err != nil {
		return nil, fmt.Errorf("api: encode form structure: %w", err)
	}
	body := map[string]any{
		"title":          form.Title,
		"description":    form.Description,
		"form_structure": json.RawMessage(structure),
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("api: encode form payload: %w", err)
	}
	return encoded, nil
}
