// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation implements the chat session state machine.
//
// A Session holds the append-only transcript for one conversation and
// enforces the single in-flight request rule through a guarded
// transition table: idle -> pending -> idle or errored. A send in the
// errored state is still accepted; only pending blocks. The user's
// message is appended before the network round trip so the transcript
// always shows what was asked, and a failed round trip surfaces as a
// fixed assistant apology turn rather than a silent drop.
package conversation
