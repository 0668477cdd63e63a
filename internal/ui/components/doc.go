// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the Aurexus TUI.
//
// Components are plain renderers: they take state and a theme and
// return styled strings. The chat model owns all mutable state and
// feeds it in on every frame.
package components
