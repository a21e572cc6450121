package api

import (
	"context"
	"fmt"
)

// User is an account record as served by the backend.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

// Users lists all accounts. Admin only.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, "list users", "GET", "/api/users/", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes an account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/users/%d/", id)
	return c.do(ctx, "delete user", "DELETE", path, nil, nil)
}
