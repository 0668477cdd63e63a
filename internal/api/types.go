// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// =============================================================================
// CHAT WIRE TYPES
// =============================================================================

// ChatRequest is the request body for POST /public/chat.
//
// SessionID correlates all turns of one client session at the backend.
// Source identifies the client surface; this client always sends
// SourceTerminal. The consent flags are forwarded verbatim from local
// configuration and are never defaulted server-side.
type ChatRequest struct {
	SessionID        string `json:"session_id"`
	Message          string `json:"message"`
	Source           string `json:"source"`
	ConsentDataUsage bool   `json:"consent_data_usage"`
	ConsentContact   bool   `json:"consent_contact"`
}

// SourceTerminal is the source tag this client stamps on chat requests.
const SourceTerminal = "terminal"

// ChatResponse is the response body from POST /public/chat.
//
// Allowed reports whether the backend's compliance layer permitted the
// answer; a false value means the UI must render the turn in a blocked
// state, but the message is still part of the transcript.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
	Topic     string `json:"topic"`
	Allowed   bool   `json:"allowed"`
}

// QuestionLimit is the response from
// GET /api/auth/public/question-limit/{sessionId}.
type QuestionLimit struct {
	QuestionsAsked     int  `json:"questions_asked"`
	QuestionsRemaining int  `json:"questions_remaining"`
	RequiresSignup     bool `json:"requires_signup"`
}

// =============================================================================
// AUTH WIRE TYPES
// =============================================================================

// Role is an account role as reported by the backend.
type Role string

const (
	RolePublic    Role = "public"
	RoleDeveloper Role = "developer"
	RoleInvestor  Role = "investor"
	RoleAdmin     Role = "admin"
)

// Valid reports whether the role is one of the known backend roles.
func (r Role) Valid() bool {
	switch r {
	case RolePublic, RoleDeveloper, RoleInvestor, RoleAdmin:
		return true
	}
	return false
}

// User is the account record returned by the auth endpoints.
type User struct {
	ID                  int    `json:"id"`
	Email               string `json:"email"`
	Role                Role   `json:"role"`
	FirstName           string `json:"first_name,omitempty"`
	LastName            string `json:"last_name,omitempty"`
	Company             string `json:"company,omitempty"`
	IsActive            bool   `json:"is_active"`
	IsVerified          bool   `json:"is_verified"`
	TotalQuestionsAsked int    `json:"total_questions_asked"`
	LastLogin           string `json:"last_login,omitempty"`
	CreatedAt           string `json:"created_at"`
}

// DisplayName returns the user's name for display, falling back to email.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// LoginRequest is the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the request body for POST /api/auth/register.
// Email, Password and Role are required; the profile fields are optional.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Company   string `json:"company,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      Role   `json:"role"`
}

// AuthResponse is the response body from POST /api/auth/login.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
}
