// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package provider holds the static catalog of answer backends the
// assistant can route to, and the user's preferred selection.
//
// The catalog is fixed at compile time. Only available providers can be
// selected; Select rejects unknown or unavailable entries and leaves
// the previous preference in place.
package provider
