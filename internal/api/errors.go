// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error variables for common backend failures.
var (
	// ErrNetwork indicates a transport-level failure: the request never
	// produced an HTTP status (connection refused, DNS, timeout).
	ErrNetwork = errors.New("network error - please check your connection")

	// ErrInvalidCredentials indicates a rejected login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired indicates the stored bearer token was rejected.
	// The auth manager treats this as a forced logout.
	ErrTokenExpired = errors.New("session expired")

	// ErrEmptyMessage indicates a send was attempted with no content.
	// Rejected locally; never reaches the network.
	ErrEmptyMessage = errors.New("message is empty")
)

// APIError represents a non-2xx response from the backend.
// Detail carries the backend's structured error body when present;
// it is passed through unexamined per the API contract.
type APIError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// errorBody is the backend's standard error response shape.
type errorBody struct {
	Detail string `json:"detail"`
}

// newAPIError builds an APIError from a non-2xx response body.
// The body may or may not be the standard {detail} shape; anything
// unparseable is reported with the status code alone.
func newAPIError(status int, body []byte) *APIError {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Detail != "" {
		return &APIError{Status: status, Detail: eb.Detail}
	}
	return &APIError{Status: status}
}

// IsNetworkError reports whether err is a transport failure rather than
// an HTTP-level error.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}
