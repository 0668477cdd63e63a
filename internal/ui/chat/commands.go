// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aurexus/aurexus-tui/internal/api"
	"github.com/aurexus/aurexus-tui/internal/conversation"
	"github.com/aurexus/aurexus-tui/internal/export"
	"github.com/aurexus/aurexus-tui/internal/provider"
)

// =============================================================================
// ASYNC MESSAGES
// =============================================================================

// LimitAPI is the question-limit surface the chat view polls.
type LimitAPI interface {
	GetQuestionLimit(ctx context.Context, sessionID string) (*api.QuestionLimit, error)
}

// sendResultMsg reports a resolved send. The session already holds the
// outcome; err is informational only.
type sendResultMsg struct {
	err error
}

// limitMsg carries a question-limit snapshot.
type limitMsg struct {
	limit *api.QuestionLimit
	err   error
}

// refreshMsg forces a transcript re-render.
type refreshMsg struct{}

type limitSnapshot struct {
	value *api.QuestionLimit
}

// sendCmd runs the blocking send on a command goroutine.
func (m Model) sendCmd(text string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		err := session.SendMessage(context.Background(), text)
		return sendResultMsg{err: err}
	}
}

// fetchLimitCmd fetches the current question-limit status.
func (m Model) fetchLimitCmd() tea.Cmd {
	if m.limits == nil || m.authMgr.IsAuthenticated() {
		// Signed-in accounts are not rate limited by session.
		return nil
	}
	limits := m.limits
	sessionID := m.session.ID()
	return func() tea.Msg {
		limit, err := limits.GetQuestionLimit(context.Background(), sessionID)
		return limitMsg{limit: limit, err: err}
	}
}

func refreshCmd() tea.Cmd {
	return func() tea.Msg { return refreshMsg{} }
}

// =============================================================================
// COMMAND HANDLER REGISTRY
// =============================================================================

// CommandHandler handles one slash command.
type CommandHandler func(m *Model, args []string) (tea.Model, tea.Cmd)

var commandHandlers = map[string]CommandHandler{
	"help": handleHelpCommand,
	"h":    handleHelpCommand,
	"?":    handleHelpCommand,
	"quit": handleQuitCommand,
	"q":    handleQuitCommand,
	"exit": handleQuitCommand,

	"new": handleNewCommand,
	"n":   handleNewCommand,

	"providers": handleProvidersCommand,
	"provider":  handleProviderCommand,
	"p":         handleProviderCommand,

	"whoami": handleWhoamiCommand,
	"status": handleStatusCommand,

	"export": handleExportCommand,
}

// handleCommand processes slash commands via the registry.
func (m Model) handleCommand(content string) (tea.Model, tea.Cmd) {
	m.input.Reset()

	parts := strings.Fields(content)
	if len(parts) == 0 {
		return m, nil
	}
	name := strings.ToLower(strings.TrimPrefix(parts[0], "/"))

	handler, ok := commandHandlers[name]
	if !ok {
		m.statusMsg = fmt.Sprintf("Unknown command /%s - try /help", name)
		return m, nil
	}
	return handler(&m, parts[1:])
}

// =============================================================================
// HANDLERS
// =============================================================================

func handleHelpCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	m.statusMsg = "/new start over  /providers list  /provider <id> switch  /whoami account  /status limits  /export save  /quit"
	return *m, nil
}

func handleQuitCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	m.session.Close()
	return *m, tea.Quit
}

func handleNewCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	if m.session.State() == conversation.StatePending {
		m.statusMsg = "Wait for the current answer before starting over."
		return *m, nil
	}
	m.session.Close()
	m.session = m.newSession()
	m.limit = nil
	m.statusMsg = "Started a new conversation."
	m.refreshTranscript()
	return *m, m.fetchLimitCmd()
}

func handleProvidersCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	var parts []string
	for _, p := range provider.All() {
		marker := " "
		if p.ID == m.pref.Current().ID {
			marker = "*"
		}
		if p.Available {
			parts = append(parts, fmt.Sprintf("%s%s", marker, p.ID))
		} else {
			parts = append(parts, fmt.Sprintf("%s%s (soon)", marker, p.ID))
		}
	}
	m.statusMsg = "Providers: " + strings.Join(parts, "  ")
	return *m, nil
}

func handleProviderCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	if len(args) != 1 {
		m.statusMsg = "Usage: /provider <id>"
		return *m, nil
	}
	if err := m.pref.Select(args[0]); err != nil {
		m.statusMsg = err.Error()
		return *m, nil
	}
	m.statusMsg = fmt.Sprintf("Provider set to %s.", m.pref.Current().Name)
	return *m, nil
}

func handleWhoamiCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	if user := m.authMgr.CurrentUser(); user != nil {
		m.statusMsg = fmt.Sprintf("Signed in as %s (%s)", user.DisplayName(), user.Role)
	} else {
		m.statusMsg = "Anonymous session - run 'aurexus login' to sign in."
	}
	return *m, nil
}

func handleExportCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	var exporter export.Exporter = export.NewMarkdownExporter(nil)
	if len(args) == 1 && strings.EqualFold(args[0], "json") {
		exporter = export.NewJSONExporter(nil)
	}

	path, err := export.ToFile(&export.Transcript{
		SessionID: m.session.ID(),
		Messages:  m.session.Messages(),
	}, exporter, nil)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Export failed: %v", err)
		return *m, nil
	}
	m.statusMsg = fmt.Sprintf("Saved to %s", path)
	return *m, nil
}

func handleStatusCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	if m.authMgr.IsAuthenticated() {
		m.statusMsg = "Signed in - no per-session question limit."
		return *m, nil
	}
	if m.limit == nil || m.limit.value == nil {
		m.statusMsg = "Fetching question limit..."
		return *m, m.fetchLimitCmd()
	}
	l := m.limit.value
	if l.RequiresSignup {
		m.statusMsg = "Question limit reached - sign up to keep asking."
	} else {
		m.statusMsg = fmt.Sprintf("%d asked, %d remaining this session.", l.QuestionsAsked, l.QuestionsRemaining)
	}
	return *m, nil
}
