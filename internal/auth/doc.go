// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth owns the authentication session: login, registration,
// logout, startup token resolution, and the role predicate that gates
// authenticated views.
//
// The Manager is a small state machine (resolving -> authenticated |
// anonymous) layered over an injectable credential store and the backend
// auth API. It fails closed: any failure to resolve a stored token is
// treated exactly like a logout, so the client never runs with stale
// credentials.
package auth
