// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("hello")

	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want %q", msg.Role, RoleUser)
	}
	if msg.Content != "hello" {
		t.Errorf("Content = %q, want %q", msg.Content, "hello")
	}
	if msg.ID == "" {
		t.Error("ID should be generated")
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
	if msg.Allowed != nil {
		t.Error("user messages should carry no compliance verdict")
	}
}

func TestNewAssistantMessage(t *testing.T) {
	msg := NewAssistantMessage("answer", "market", "mock", true, 420*time.Millisecond)

	if msg.Role != RoleAssistant {
		t.Errorf("Role = %q, want %q", msg.Role, RoleAssistant)
	}
	if msg.Topic != "market" {
		t.Errorf("Topic = %q, want %q", msg.Topic, "market")
	}
	if msg.Provider != "mock" {
		t.Errorf("Provider = %q, want %q", msg.Provider, "mock")
	}
	if msg.LatencyMs != 420 {
		t.Errorf("LatencyMs = %d, want 420", msg.LatencyMs)
	}
	if msg.Allowed == nil || !*msg.Allowed {
		t.Error("Allowed should be true")
	}
}

func TestMessage_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		msg := NewUserMessage("x")
		if seen[msg.ID] {
			t.Fatalf("duplicate message ID %q", msg.ID)
		}
		seen[msg.ID] = true
	}
}

func TestMessage_IsBlocked(t *testing.T) {
	blocked := NewAssistantMessage("no", "offtopic", "mock", false, 0)
	if !blocked.IsBlocked() {
		t.Error("message with allowed=false should be blocked")
	}

	allowed := NewAssistantMessage("yes", "market", "mock", true, 0)
	if allowed.IsBlocked() {
		t.Error("message with allowed=true should not be blocked")
	}

	user := NewUserMessage("question")
	if user.IsBlocked() {
		t.Error("user message should never be blocked")
	}
}

func TestMessage_Preview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		maxLen  int
		want    string
	}{
		{"short content unchanged", "hi", 10, "hi"},
		{"long content truncated", "a very long message body", 10, "a very ..."},
		{"multibyte safe", "日本語のメッセージ本文です", 6, "日本語..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg := NewUserMessage(tc.content)
			if got := msg.Preview(tc.maxLen); got != tc.want {
				t.Errorf("Preview(%d) = %q, want %q", tc.maxLen, got, tc.want)
			}
		})
	}
}

func TestRole_DisplayName(t *testing.T) {
	if RoleUser.DisplayName() != "You" {
		t.Errorf("RoleUser.DisplayName() = %q", RoleUser.DisplayName())
	}
	if RoleAssistant.DisplayName() != "Aurexus" {
		t.Errorf("RoleAssistant.DisplayName() = %q", RoleAssistant.DisplayName())
	}
}
