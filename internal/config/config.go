// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aurexus/aurexus-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete client configuration.
type Config struct {
	// API settings
	API APIConfig `toml:"api"`

	// Chat settings
	Chat ChatConfig `toml:"chat"`

	// UI settings
	UI UIConfig `toml:"ui"`
}

// APIConfig contains backend connection settings.
type APIConfig struct {
	// BaseURL is the backend base URL
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs"`
}

// ChatConfig contains conversation settings.
type ChatConfig struct {
	// Provider is the selected answer backend ID
	Provider string `toml:"provider"`
	// ConsentDataUsage permits the backend to use questions for improvement
	ConsentDataUsage bool `toml:"consent_data_usage"`
	// ConsentContact permits follow-up contact
	ConsentContact bool `toml:"consent_contact"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is "dark" or "light"
	Theme string `toml:"theme"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "http://127.0.0.1:8000",
			TimeoutSecs: 30,
		},
		Chat: ChatConfig{
			Provider:         "mock",
			ConsentDataUsage: true,
			ConsentContact:   false,
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// SetDefaults fills empty fields from the defaults. Booleans are left
// alone: false is a valid stored value, not an absence marker.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.TimeoutSecs == 0 {
		c.API.TimeoutSecs = defaults.API.TimeoutSecs
	}
	if c.Chat.Provider == "" {
		c.Chat.Provider = defaults.Chat.Provider
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the aurexus configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".aurexus"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
// SECURITY: The directory also holds the bearer token, so group and
// world access are stripped.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// ensureSecurePermissions checks and fixes permissions on the config file.
// SECURITY: Config files should be 0600 (owner read/write only).
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default config file, falling back
// to defaults when the file is absent. Environment overrides are
// applied last, then the result is validated.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads configuration from a specific file path. A missing
// file degrades to defaults rather than failing.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err := ensureSecurePermissions(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	cfg.SetDefaults()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo saves the configuration to a TOML file.
// SECURITY: 0600 permissions, owner read/write only.
// RELIABILITY: Atomic write with fsync prevents data loss on crash.
func SaveTo(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# aurexus configuration file")
	fmt.Fprintln(&buf, "# Generated by aurexus - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFileWithDir(path, buf.Bytes(), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("invalid URL '%s'", c.API.BaseURL),
		})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("unsupported scheme '%s', must be http or https", u.Scheme),
		})
	}

	if c.API.TimeoutSecs < 1 || c.API.TimeoutSecs > 300 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout_secs",
			Message: fmt.Sprintf("timeout %d out of range, must be 1-300 seconds", c.API.TimeoutSecs),
		})
	}

	switch strings.ToLower(c.UI.Theme) {
	case "dark", "light":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light", c.UI.Theme),
		})
	}

	// Chat.Provider is not validated here: the provider catalog owns
	// that check and falls back to the default for stale values.

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - AUREXUS_BASE_URL: overrides api.base_url
//   - AUREXUS_TIMEOUT_SECS: overrides api.timeout_secs
//   - AUREXUS_PROVIDER: overrides chat.provider
//   - AUREXUS_THEME: overrides ui.theme
//   - AUREXUS_CONSENT_DATA_USAGE: "1"/"true" or "0"/"false"
//   - AUREXUS_CONSENT_CONTACT: "1"/"true" or "0"/"false"
func (c *Config) ApplyEnvOverrides() {
	if base := os.Getenv("AUREXUS_BASE_URL"); base != "" {
		c.API.BaseURL = base
	}
	if secs := os.Getenv("AUREXUS_TIMEOUT_SECS"); secs != "" {
		if n, err := strconv.Atoi(secs); err == nil {
			c.API.TimeoutSecs = n
		}
	}
	if prov := os.Getenv("AUREXUS_PROVIDER"); prov != "" {
		c.Chat.Provider = prov
	}
	if theme := os.Getenv("AUREXUS_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if v := os.Getenv("AUREXUS_CONSENT_DATA_USAGE"); v != "" {
		c.Chat.ConsentDataUsage = envBool(v)
	}
	if v := os.Getenv("AUREXUS_CONSENT_CONTACT"); v != "" {
		c.Chat.ConsentContact = envBool(v)
	}
}

func envBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}
