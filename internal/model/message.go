// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation transcript.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Aurexus"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in the conversation transcript.
//
// The transcript is append-only: once appended, a message's content is
// never mutated. Topic, Provider, LatencyMs and Allowed are annotations
// present only on assistant messages.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string `json:"content"`

	// Assistant annotations
	Topic     string `json:"topic,omitempty"`
	Provider  string `json:"provider,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`

	// Allowed reports the backend compliance verdict for an assistant
	// turn. Nil on user messages and on assistant turns with no verdict.
	// A false value renders the message in a blocked state; the message
	// itself stays in the transcript.
	Allowed *bool `json:"allowed,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates an assistant message with backend annotations.
func NewAssistantMessage(content, topic, provider string, allowed bool, latency time.Duration) *Message {
	msg := NewMessage(RoleAssistant, content)
	msg.Topic = topic
	msg.Provider = provider
	msg.Allowed = &allowed
	msg.LatencyMs = latency.Milliseconds()
	return msg
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// IsBlocked reports whether the backend flagged this message.
// Blocked messages are rendered in a flagged visual state but are
// never dropped from the transcript.
func (m *Message) IsBlocked() bool {
	return m.Allowed != nil && !*m.Allowed
}

// Preview returns a truncated single-line preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}
