// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and command handlers for
// the Aurexus terminal client.
//
// Running with no arguments starts the TUI. Everything else is a
// subcommand: one-shot questions, a plain readline chat mode for
// terminals where the TUI is unwanted, and account management.
package cli
