// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/aurexus/aurexus-tui/internal/api"
	"github.com/aurexus/aurexus-tui/internal/creds"
	"github.com/aurexus/aurexus-tui/internal/logging"
)

// =============================================================================
// AUTH STATE
// =============================================================================

// State represents the auth session state.
type State int

const (
	// StateResolving is the initial state before the stored token (if
	// any) has been checked against the backend.
	StateResolving State = iota

	// StateAnonymous means no valid credentials are held.
	StateAnonymous

	// StateAuthenticated means a token and resolved user are held.
	StateAuthenticated
)

// String returns the state name for logging and status display.
func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// API is the surface of the backend auth client the manager depends on.
// Tests substitute a fake.
type API interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.User, error)
	Me(ctx context.Context, token string) (*api.User, error)
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager owns the authentication session lifecycle.
//
// All transitions are serialized by an internal mutex; commands issued
// from the UI event loop never interleave mid-transition.
type Manager struct {
	mu     sync.Mutex
	client API
	store  creds.Store

	state State
	user  *api.User
}

// NewManager creates a manager in the resolving state.
// Call ResolveCurrentUser once at startup to settle it.
func NewManager(client API, store creds.Store) *Manager {
	return &Manager{
		client: client,
		store:  store,
		state:  StateResolving,
	}
}

// State returns the current auth state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentUser returns the resolved user record, or nil when anonymous.
func (m *Manager) CurrentUser() *api.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated reports whether a token is held.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// HasRole reports whether the current user holds the given role.
// Admin is a superset: an admin passes every role check. This is the
// single non-hierarchical rule; developer does not imply investor.
func (m *Manager) HasRole(role api.Role) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return false
	}
	return m.user.Role == role || m.user.Role == api.RoleAdmin
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// Login authenticates with the backend and stores the credentials.
//
// On failure the prior state is left untouched: no partial token write,
// no transition. The error is generic (ErrInvalidCredentials, possibly
// wrapping the backend's detail) for form-level display.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.client.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Token first: a stored token with a missing user cache degrades to
	// re-resolution at next startup, the reverse would be a phantom login.
	if err := m.store.SetToken(resp.AccessToken); err != nil {
		return err
	}
	if err := m.store.SetUser(&resp.User); err != nil {
		// Roll back so no partial credential state survives.
		_ = m.store.Clear()
		return err
	}

	u := resp.User
	m.user = &u
	m.state = StateAuthenticated
	logging.App().Info("logged in", zap.String("role", string(u.Role)))
	return nil
}

// Register creates an account. The session stays anonymous: the backend
// does not return a token on this path, and the caller is told to log
// in explicitly rather than the manager guessing at auto-login.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) (*api.User, error) {
	user, err := m.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	logging.App().Info("registered", zap.String("role", string(user.Role)))
	return user, nil
}

// Logout clears stored credentials and transitions to anonymous.
// It has no network effect and cannot fail; a store error is logged
// and swallowed because the in-memory session is gone regardless.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logoutLocked()
}

func (m *Manager) logoutLocked() {
	if err := m.store.Clear(); err != nil {
		logging.App().Warn("credential clear failed", zap.Error(err))
	}
	m.user = nil
	m.state = StateAnonymous
}

// ResolveCurrentUser settles the initial resolving state.
//
// With no stored token it transitions straight to anonymous without a
// network call. With a token it asks the backend; any failure - expired
// token, network trouble, anything - fails closed and behaves exactly
// like Logout.
func (m *Manager) ResolveCurrentUser(ctx context.Context) {
	token, ok := m.store.Token()
	if !ok {
		m.mu.Lock()
		m.user = nil
		m.state = StateAnonymous
		m.mu.Unlock()
		return
	}

	user, err := m.client.Me(ctx, token)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		logging.App().Info("stored token rejected, forcing logout", zap.Error(err))
		m.logoutLocked()
		return
	}

	if err := m.store.SetUser(user); err != nil {
		logging.App().Warn("user cache write failed", zap.Error(err))
	}
	u := *user
	m.user = &u
	m.state = StateAuthenticated
}
