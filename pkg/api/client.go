// Package api is the HTTP client for the forms backend. Every authenticated
// call attaches a bearer token sourced from the current session; 401/403
// responses surface as AuthError and trigger the registered unauthorized
// hook exactly once per failing call.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// TokenSource supplies the bearer token for authenticated calls.
// *session.Session satisfies it.
type TokenSource interface {
	Token() (string, bool)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithTokenSource attaches the session supplying bearer tokens.
func WithTokenSource(source TokenSource) Option {
	return func(c *Client) {
		c.tokens = source
	}
}

// WithUnauthorizedHook registers a callback invoked whenever the backend
// rejects a call with 401/403. The hook fires before the AuthError returns, so
// the caller can drop its session and abort the fetch cycle.
func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

// WithLogger routes request diagnostics to a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client talks to the forms backend.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	onUnauthorized func()
	logger         *slog.Logger
}

// New constructs a Client for the given base URL.
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// do performs one request. The payload, when non-nil, is JSON-encoded; the
// response body, when out is non-nil, is JSON-decoded into it.
func (c *Client) do(ctx context.Context, op, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("api: %s: encode request: %w", op, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: %s: build request: %w", op, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "operation", op, "error", err)
		return fmt.Errorf("api: %s: %w", op, err)
	}
	defer resp.Body.Close()

	if isAuthStatus(resp.StatusCode) {
		c.logger.Debug("request unauthorized", "operation", op, "status", resp.StatusCode)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &AuthError{Status: resp.StatusCode, Operation: op}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Debug("request rejected", "operation", op, "status", resp.StatusCode)
		return &StatusError{Status: resp.StatusCode, Operation: op, Body: strings.TrimSpace(string(detail))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: %s: decode response: %w", op, err)
	}
	return nil
}
