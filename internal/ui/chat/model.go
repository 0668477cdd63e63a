// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aurexus/aurexus-tui/internal/auth"
	"github.com/aurexus/aurexus-tui/internal/conversation"
	"github.com/aurexus/aurexus-tui/internal/provider"
	"github.com/aurexus/aurexus-tui/internal/ui/components"
	"github.com/aurexus/aurexus-tui/internal/ui/styles"
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the chat view's Bubble Tea model.
type Model struct {
	theme *styles.Theme

	// Collaborators
	session    *conversation.Session
	newSession func() *conversation.Session
	authMgr    *auth.Manager
	pref       *provider.Preference
	limits     LimitAPI

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  components.Spinner
	keyMap   KeyMap

	// Layout
	width  int
	height int
	ready  bool

	// Latest question-limit snapshot, nil until first fetch resolves.
	limit *limitSnapshot

	// Transient notice line shown above the input (command feedback).
	statusMsg string
}

// New creates the chat model. newSession builds a replacement session
// for the /new command.
func New(session *conversation.Session, newSession func() *conversation.Session, authMgr *auth.Manager, pref *provider.Preference, limits LimitAPI, theme *styles.Theme) Model {
	input := textinput.New()
	input.Placeholder = "Ask about the market, suburbs, strategies..."
	input.Prompt = "> "
	input.CharLimit = 2000
	input.Focus()

	return Model{
		theme:      theme,
		session:    session,
		newSession: newSession,
		authMgr:    authMgr,
		pref:       pref,
		limits:     limits,
		input:      input,
		spinner:    components.NewSpinner(),
		keyMap:     DefaultKeyMap(),
	}
}

// Init starts the first question-limit fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetchLimitCmd())
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.layoutViewport()
		m.refreshTranscript()
		m.ready = true

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			m.session.Close()
			return m, tea.Quit

		case key.Matches(msg, m.keyMap.Dismiss):
			m.session.AcknowledgeError()
			m.statusMsg = ""
			m.refreshTranscript()

		case key.Matches(msg, m.keyMap.Submit):
			return m.handleSubmit()

		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}

		// Scrolling keys go to the viewport.
		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		cmds = append(cmds, vpCmd)

	case sendResultMsg:
		m.spinner.Stop()
		m.refreshTranscript()
		m.viewport.GotoBottom()
		// Refresh the limit after every resolved send; the backend
		// counts the question either way.
		cmds = append(cmds, m.fetchLimitCmd())

	case limitMsg:
		if msg.err == nil {
			m.limit = &limitSnapshot{value: msg.limit}
		}

	case refreshMsg:
		m.refreshTranscript()

	default:
		if cmd := m.spinner.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleSubmit dispatches the input line: slash commands run inline,
// anything else becomes a send.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	content := strings.TrimSpace(m.input.Value())
	if content == "" {
		return m, nil
	}

	if strings.HasPrefix(content, "/") {
		return m.handleCommand(content)
	}

	if m.session.State() == conversation.StatePending {
		m.statusMsg = "Still waiting on the last answer..."
		return m, nil
	}

	m.input.Reset()
	m.statusMsg = ""
	tick := m.spinner.Start()

	send := m.sendCmd(content)
	// Render the optimistic user turn on the next frame; the send
	// command appends it before the request goes out.
	return m, tea.Batch(tick, send, refreshCmd())
}

func (m *Model) layoutViewport() {
	headerH := lipgloss.Height(m.renderHeader())
	footerH := lipgloss.Height(m.renderFooter())
	vpHeight := m.height - headerH - footerH
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
}

// refreshTranscript re-renders the message log into the viewport.
func (m *Model) refreshTranscript() {
	width := m.width
	if width == 0 {
		width = 80
	}
	m.viewport.SetContent(components.RenderTranscript(m.session.Messages(), width, m.theme))
	m.viewport.GotoBottom()
}
