// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// Aurexus terminal client.
//
// Configuration comes from ~/.aurexus/config.toml with built-in
// defaults filled in for anything missing and AUREXUS_* environment
// variables applied last. Absence of the file is not an error; the
// defaults alone are a working configuration.
package config
