// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/aurexus/aurexus-tui/internal/conversation"
	"github.com/aurexus/aurexus-tui/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the full chat screen.
func (m Model) View() string {
	if !m.ready {
		return "Starting Aurexus..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("Aurexus")
	subtitle := m.theme.HeaderSubtitle.Render("Real Estate AI Assistant")
	return m.theme.Header.Width(max(m.width, 1)).Render(title + "  " + subtitle)
}

func (m Model) renderFooter() string {
	var b strings.Builder

	if m.session.State() == conversation.StateErrored {
		if banner := components.RenderErrorBanner(m.session.LastError(), m.width, m.theme); banner != "" {
			b.WriteString(banner)
			b.WriteString("\n")
		}
	}

	if sp := m.spinner.View(m.theme); sp != "" {
		b.WriteString(sp)
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		b.WriteString(m.theme.ThinkingText.Render(m.statusMsg))
		b.WriteString("\n")
	}

	input := m.theme.InputContainer.Width(max(m.width-2, 10)).Render(m.input.View())
	b.WriteString(input)
	b.WriteString("\n")

	info := components.StatusInfo{
		State:    m.session.State().String(),
		Provider: m.pref.Current().Name,
	}
	if user := m.authMgr.CurrentUser(); user != nil {
		info.Account = user.DisplayName()
	}
	if m.limit != nil {
		info.Limit = m.limit.value
	}
	b.WriteString(components.RenderStatusBar(info, max(m.width, 1), m.theme))

	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
