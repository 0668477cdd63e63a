// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/aurexus/aurexus-tui/internal/logging"
)

// Configuration constants for the Aurexus backend API.
const (
	// DefaultBaseURL is the backend used when no configuration is present.
	DefaultBaseURL = "http://127.0.0.1:8000"

	// DefaultTimeout bounds every chat request. The backend has no
	// server-side timeout contract, so the client must enforce one:
	// a request either resolves within this window or fails through
	// the normal errored path.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 4 * 1024 * 1024 // 4MB

	// userAgent identifies this client to the backend.
	userAgent = "aurexus-tui/1.0"
)

// sharedHTTPClient is used for all backend requests.
// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	// No client-level timeout: every request carries a context deadline.
}

// Client is a client for the public (unauthenticated) backend endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration

	// limiter paces requests to the public chat endpoint. The single
	// in-flight rule already serializes sends; the limiter additionally
	// keeps scripted use (ask in a shell loop) polite to the backend.
	limiter *rate.Limiter
}

// NewClient creates a new backend client for the given base URL.
// An empty base URL falls back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: sharedHTTPClient,
		timeout:    DefaultTimeout,
		limiter:    rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
	}
}

// WithTimeout sets the per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	if timeout > 0 {
		c.timeout = timeout
	}
	return c
}

// WithHTTPClient substitutes the underlying HTTP client, primarily for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// PUBLIC CHAT
// =============================================================================

// SendChat posts one user turn to the public chat endpoint.
//
// The call blocks until the backend answers, the timeout elapses, or ctx
// is cancelled. Callers own retry policy; this method performs exactly one
// request. Transport failures are reported as ErrNetwork, non-2xx statuses
// as *APIError.
func (c *Client) SendChat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var resp ChatResponse
	if err := c.postJSON(ctx, "/public/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetQuestionLimit fetches the anonymous question budget for a session.
func (c *Client) GetQuestionLimit(ctx context.Context, sessionID string) (*QuestionLimit, error) {
	var limit QuestionLimit
	path := "/api/auth/public/question-limit/" + url.PathEscape(sessionID)
	if err := c.getJSON(ctx, path, &limit); err != nil {
		return nil, err
	}
	return &limit, nil
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
	req.Header.Set("User-Agent", userAgent)

	return c.do(req, out)
}

// getJSON performs one GET and decodes a JSON response.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	return c.do(req, out)
}

// do executes the request and maps the outcome onto the error taxonomy.
// SECURITY: Only method, path, status and duration are logged - never
// request or response bodies, headers, or credentials.
func (c *Client) do(req *http.Request, out any) error {
	logger := logging.Request()
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		logger.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Duration("duration", duration))
		// Context cancellation and deadline pass through untouched so
		// callers can distinguish user abort from backend trouble.
		if req.Context().Err() != nil {
			return req.Context().Err()
		}
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	logger.Info("request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration))

	body, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// readResponse reads the response body with a size limit.
// SECURITY: Response size limit prevents memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}
