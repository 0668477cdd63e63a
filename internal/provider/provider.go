// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"fmt"
	"sync"
)

// =============================================================================
// CATALOG
// =============================================================================

// Provider describes one answer backend.
type Provider struct {
	ID          string
	Name        string
	Description string
	Available   bool
}

// Sentinel errors for preference changes.
var (
	ErrUnknownProvider     = fmt.Errorf("unknown provider")
	ErrProviderUnavailable = fmt.Errorf("provider not yet available")
)

// catalog is the fixed provider list, in display order. Only the mock
// backend is live today; the rest are advertised as coming soon.
var catalog = []Provider{
	{ID: "mock", Name: "Aurexus Demo", Description: "Built-in demo assistant", Available: true},
	{ID: "openai", Name: "OpenAI", Description: "GPT models (coming soon)", Available: false},
	{ID: "anthropic", Name: "Anthropic", Description: "Claude models (coming soon)", Available: false},
	{ID: "google", Name: "Google", Description: "Gemini models (coming soon)", Available: false},
	{ID: "mistral", Name: "Mistral", Description: "Mistral models (coming soon)", Available: false},
	{ID: "cohere", Name: "Cohere", Description: "Command models (coming soon)", Available: false},
	{ID: "openrouter", Name: "OpenRouter", Description: "Multi-model routing (coming soon)", Available: false},
	{ID: "perplexity", Name: "Perplexity", Description: "Search-grounded answers (coming soon)", Available: false},
	{ID: "bedrock", Name: "AWS Bedrock", Description: "Bedrock-hosted models (coming soon)", Available: false},
}

// All returns the full catalog in display order. The slice is a copy.
func All() []Provider {
	out := make([]Provider, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for an ID.
func Lookup(id string) (Provider, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}

// DefaultID returns the ID of the first available provider.
func DefaultID() string {
	for _, p := range catalog {
		if p.Available {
			return p.ID
		}
	}
	// The catalog always carries at least one available entry.
	return catalog[0].ID
}

// =============================================================================
// PREFERENCE
// =============================================================================

// PersistFunc stores a provider selection durably. Implementations
// must be safe to call from any goroutine.
type PersistFunc func(id string) error

// Preference tracks the user's selected provider. The zero value is
// not usable; construct with NewPreference.
type Preference struct {
	mu      sync.Mutex
	id      string
	persist PersistFunc
}

// NewPreference creates a preference seeded from the given ID. An
// unknown or unavailable seed (for instance a stale config value)
// silently falls back to the default provider.
func NewPreference(id string) *Preference {
	p := &Preference{id: DefaultID()}
	if cur, ok := Lookup(id); ok && cur.Available {
		p.id = cur.ID
	}
	return p
}

// SetPersist attaches a durable store for selections. Seeding via
// NewPreference never persists; only explicit Select calls do.
func (p *Preference) SetPersist(fn PersistFunc) {
	p.mu.Lock()
	p.persist = fn
	p.mu.Unlock()
}

// Current returns the selected provider.
func (p *Preference) Current() Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	cur, _ := Lookup(p.id)
	return cur
}

// Select switches the preference to the given provider ID.
// Unknown or unavailable IDs are rejected and the previous selection
// stands.
func (p *Preference) Select(id string) error {
	target, ok := Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, id)
	}
	if !target.Available {
		return fmt.Errorf("%w: %s", ErrProviderUnavailable, target.Name)
	}
	p.mu.Lock()
	if p.id == target.ID {
		p.mu.Unlock()
		return nil
	}
	p.id = target.ID
	persist := p.persist
	p.mu.Unlock()

	// The in-memory switch stands even if the durable write fails;
	// the caller decides what to surface.
	if persist != nil {
		if err := persist(target.ID); err != nil {
			return fmt.Errorf("selection not saved: %w", err)
		}
	}
	return nil
}
