package api

import (
	"context"
	"fmt"

	"github.com/formdeck/formdeck/pkg/binder"
)

// SavedResponse is a stored submission for a form.
type SavedResponse struct {
	ID           int64           `json:"id"`
	Form         int64           `json:"form"`
	ResponseData binder.Document `json:"response_data"`
}

// Responses lists every saved response for a form.
func (c *Client) Responses(ctx context.Context, formID int64) ([]SavedResponse, error) {
	var saved []SavedResponse
	path := fmt.Sprintf("/api/responses/?form=%d", formID)
	if err := c.do(ctx, "list responses", "GET", path, nil, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// UpdateResponse replaces the document of an existing response.
func (c *Client) UpdateResponse(ctx context.Context, id int64, doc binder.Document) (SavedResponse, error) {
	payload := map[string]any{"response_data": doc}
	var saved SavedResponse
	path := fmt.Sprintf("/api/responses/%d/", id)
	if err := c.do(ctx, "update response", "PUT", path, payload, &saved); err != nil {
		return SavedResponse{}, err
	}
	return saved, nil
}

// DeleteResponse removes a saved response.
func (c *Client) DeleteResponse(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/responses/%d/", id)
	return c.do(ctx, "delete response", "DELETE", path, nil, nil)
}
