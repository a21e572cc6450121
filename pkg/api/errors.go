package api

import (
	"fmt"
	"net/http"
)

// AuthError reports a 401/403 from the backend. Callers must stop the current
// fetch cycle and route the user back to the unauthenticated entry point; the
// client invokes the registered unauthorized hook before returning one.
type AuthError struct {
	Status    int
	Operation string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("api: %s: authentication rejected (%d)", e.Operation, e.Status)
}

// StatusError reports any other non-success response.
type StatusError struct {
	Status    int
	Operation string
	Body      string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("api: %s: unexpected status %d: %s", e.Operation, e.Status, e.Body)
	}
	return fmt.Sprintf("api: %s: unexpected status %d", e.Operation, e.Status)
}

func isAuthStatus(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}
