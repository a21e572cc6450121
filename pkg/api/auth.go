package api

import "context"

// Credentials is the token pair issued at login.
type Credentials struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges a username/password for a token pair. Login itself is
// unauthenticated.
func (c *Client) Login(ctx context.Context, username, password string) (Credentials, error) {
	payload := map[string]string{"username": username, "password": password}
	var creds Credentials
	if err := c.do(ctx, "login", "POST", "/api/auth/login/", payload, &creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// Logout invalidates the refresh token server-side. Best effort: the caller
// clears its local session regardless of the result.
func (c *Client) Logout(ctx context.Context, refresh string) error {
	payload := map[string]string{"refresh": refresh}
	return c.do(ctx, "logout", "POST", "/api/auth/logout/", payload, nil)
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, username, email, password string, isAdmin bool) error {
	payload := map[string]any{
		"username": username,
		"email":    email,
		"password": password,
		"is_admin": isAdmin,
	}
	return c.do(ctx, "register", "POST", "/api/auth/register/", payload, nil)
}

// ChangePassword rotates the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	payload := map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}
	return c.do(ctx, "change password", "PUT", "/api/auth/change-password/", payload, nil)
}
