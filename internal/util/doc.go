// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the aurexus terminal client.
//
// This package contains common helpers used throughout the application for
// UTF-8 safe string manipulation and crash-safe file writing.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth: display-width aware truncation (CJK safe)
//   - WrapWidth: display-width aware word wrapping
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
