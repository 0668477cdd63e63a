// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package creds provides durable storage for the bearer token and the
// cached user record.
//
// The Store interface is injectable so tests substitute MemoryStore for
// the real file-backed implementation. All accessors degrade gracefully:
// a missing or unreadable key reads as absent, never as an error the
// caller must handle.
//
// The on-disk format is deliberately plain (the token in its own file,
// the user record as JSON); protecting credentials beyond 0600 file
// permissions is out of scope for this client.
package creds

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aurexus/aurexus-tui/internal/api"
	"github.com/aurexus/aurexus-tui/internal/util"
)

// File names under the credentials directory. The names mirror the
// storage keys used by the Aurexus web client.
const (
	tokenFile = "aurexus_token"
	userFile  = "aurexus_user.json"
)

// Store is durable key-value storage for auth state.
//
// Writes are last-write-wins: two running instances sharing the same
// directory can race, which is an accepted limitation of the design.
type Store interface {
	// Token returns the stored bearer token, if any.
	Token() (string, bool)

	// SetToken stores the bearer token.
	SetToken(token string) error

	// User returns the cached user record, if any.
	User() (*api.User, bool)

	// SetUser caches the user record.
	SetUser(user *api.User) error

	// Clear removes the token and cached user. It must succeed even
	// when nothing is stored.
	Clear() error
}

// =============================================================================
// FILE STORE
// =============================================================================

// FileStore persists credentials under a directory (default ~/.aurexus).
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir.
// An empty dir defaults to ~/.aurexus.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".aurexus")
	}
	return &FileStore{dir: dir}, nil
}

// Token returns the stored bearer token, if any.
func (s *FileStore) Token() (string, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	return token, token != ""
}

// SetToken stores the bearer token.
// SECURITY: 0600 permissions, atomic write so a crash never leaves a
// truncated credential on disk.
func (s *FileStore) SetToken(token string) error {
	path := filepath.Join(s.dir, tokenFile)
	return util.AtomicWriteFileWithDir(path, []byte(token), 0600, 0700)
}

// User returns the cached user record, if any.
// A corrupt cache reads as absent: the auth manager re-resolves from
// the backend rather than failing startup.
func (s *FileStore) User() (*api.User, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil, false
	}
	var user api.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, false
	}
	return &user, true
}

// SetUser caches the user record.
func (s *FileStore) SetUser(user *api.User) error {
	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, userFile)
	return util.AtomicWriteFileWithDir(path, data, 0600, 0700)
}

// Clear removes the token and cached user.
func (s *FileStore) Clear() error {
	var firstErr error
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// =============================================================================
// MEMORY STORE
// =============================================================================

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	user  *api.User
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Token returns the stored bearer token, if any.
func (s *MemoryStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// SetToken stores the bearer token.
func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// User returns the cached user record, if any.
func (s *MemoryStore) User() (*api.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}

// SetUser caches the user record.
func (s *MemoryStore) SetUser(user *api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.user = &u
	return nil
}

// Clear removes the token and cached user.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	return nil
}
