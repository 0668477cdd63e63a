// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the Aurexus backend.
//
// Two endpoint groups are covered here:
//   - POST /public/chat: the public inference endpoint the conversation
//     state machine sends user turns to
//   - GET /api/auth/public/question-limit/{sessionId}: the per-session
//     question budget for anonymous users
//
// The authenticated endpoints (/api/auth/*) live in package auth, which
// shares this package's wire types and error taxonomy.
//
// Errors follow a small taxonomy: ErrNetwork for transport failures,
// *APIError for any non-2xx response (carrying the backend's optional
// {detail} body), and validation sentinels that are rejected before any
// request is made.
package api
