// Package session holds the authenticated session established at login: the
// access/refresh token pair plus the identity claims decoded from the access
// token. The session has an explicit lifecycle: established on login, cleared
// on logout or when the backend rejects the token.
package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the identity claims formdeck reads from the access token. The
// token signature is verified by the backend; the client decodes claims for
// display and for gating admin-only affordances, not for access control.
type Claims struct {
	UserID   int64
	Username string
	IsAdmin  bool
}

// Session is the client-local authenticated state.
type Session struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	Claims  Claims `json:"-"`
}

// Establish builds a session from a token pair, decoding claims from the
// access token.
func Establish(access, refresh string) (*Session, error) {
	claims, err := DecodeClaims(access)
	if err != nil {
		return nil, err
	}
	return &Session{Access: access, Refresh: refresh, Claims: claims}, nil
}

// Token returns the current access token, reporting false when the session is
// absent.
func (s *Session) Token() (string, bool) {
	if s == nil || s.Access == "" {
		return "", false
	}
	return s.Access, true
}

// DecodeClaims parses the access token without verifying its signature and
// extracts the formdeck identity claims.
func DecodeClaims(access string) (Claims, error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(access, jwt.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("session: parse access token: %w", err)
	}
	mapped, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("session: unexpected claims type %T", token.Claims)
	}

	claims := Claims{}
	if id, ok := numberClaim(mapped["user_id"]); ok {
		claims.UserID = id
	}
	if name, ok := mapped["username"].(string); ok {
		claims.Username = name
	}
	if admin, ok := mapped["is_admin"].(bool); ok {
		claims.IsAdmin = admin
	}
	return claims, nil
}

func numberClaim(value any) (int64, bool) {
	switch v := value.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}
