// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aurexus/aurexus-tui/internal/api"
	"github.com/aurexus/aurexus-tui/internal/logging"
)

// Client is a client for the backend auth endpoints (/api/auth/*).
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates an auth API client for the given base URL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = api.DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: api.DefaultTimeout},
		timeout:    api.DefaultTimeout,
	}
}

// WithHTTPClient substitutes the underlying HTTP client, primarily for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Login exchanges credentials for a bearer token and user record.
//
// Any non-2xx status is reported as ErrInvalidCredentials: the manager
// does not distinguish validation failures from bad passwords, and the
// backend's {detail} body is wrapped for form-level display.
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.postJSON(ctx, "/api/auth/login", req, &resp); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			if apiErr.Detail != "" {
				return nil, fmt.Errorf("%w: %s", api.ErrInvalidCredentials, apiErr.Detail)
			}
			return nil, api.ErrInvalidCredentials
		}
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns the new user record.
//
// The backend does not issue a token on this path: a freshly registered
// caller is still anonymous and must log in explicitly.
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.User, error) {
	var user api.User
	if err := c.postJSON(ctx, "/api/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me resolves the current user for a bearer token.
// A 401 is reported as ErrTokenExpired, which callers treat as a
// forced logout.
func (c *Client) Me(ctx context.Context, token string) (*api.User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var user api.User
	if err := c.do(req, &user); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return nil, api.ErrTokenExpired
		}
		return nil, err
	}
	return &user, nil
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// postJSON performs one POST with a JSON body and decodes a JSON response.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// do executes the request and maps the outcome onto the error taxonomy.
// SECURITY: Never logs bodies or the Authorization header - login and
// register bodies carry passwords.
func (c *Client) do(req *http.Request, out any) error {
	logger := logging.Request()
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	// SECURITY: Drop the Authorization header immediately after the
	// request so the token cannot leak through later logging.
	req.Header.Del("Authorization")

	if err != nil {
		logger.Warn("auth request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Duration("duration", duration))
		if req.Context().Err() != nil {
			return req.Context().Err()
		}
		return fmt.Errorf("%w: %v", api.ErrNetwork, err)
	}
	defer resp.Body.Close()

	logger.Info("auth request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration))

	body, err := io.ReadAll(io.LimitReader(resp.Body, api.MaxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErrorFromBody(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// apiErrorFromBody builds an *api.APIError carrying the backend's
// optional {detail} field.
func apiErrorFromBody(status int, body []byte) error {
	var eb struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &eb); err == nil && eb.Detail != "" {
		return &api.APIError{Status: status, Detail: eb.Detail}
	}
	return &api.APIError{Status: status}
}
