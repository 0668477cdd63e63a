// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the TUI.
//
// The Model follows the Bubble Tea architecture: all state lives in
// the model, messages drive updates, and the network round trip runs
// inside a tea.Cmd so the event loop never blocks. The conversation
// session enforces the single in-flight rule itself; this layer only
// reflects its state.
package chat
