// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/aurexus/aurexus-tui/internal/model"
	"github.com/aurexus/aurexus-tui/internal/ui/styles"
	"github.com/aurexus/aurexus-tui/internal/util"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

var (
	rendererMu   sync.Mutex
	renderer     *glamour.TermRenderer
	rendererCols int
)

// renderMarkdown renders assistant markdown for terminal display.
// Returns the original content if rendering fails.
func renderMarkdown(content string, width int) string {
	if width < 20 {
		width = 20
	}

	rendererMu.Lock()
	if renderer == nil || rendererCols != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			rendererMu.Unlock()
			return content
		}
		renderer = r
		rendererCols = width
	}
	r := renderer
	rendererMu.Unlock()

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// =============================================================================
// MESSAGE RENDERING
// =============================================================================

// RenderMessage renders one transcript message at the given width.
//
// User messages are word-wrapped plain text. Assistant messages go
// through the markdown renderer; a blocked answer additionally carries
// a badge so compliance refusals are visually distinct from answers.
func RenderMessage(m *model.Message, width int, theme *styles.Theme) string {
	var b strings.Builder

	label := m.Role.DisplayName()
	ts := theme.Timestamp.Render(m.Timestamp.Format("15:04"))

	switch m.Role {
	case model.RoleUser:
		b.WriteString(theme.UserLabel.Render(label))
		b.WriteString(" ")
		b.WriteString(ts)
		b.WriteString("\n")
		b.WriteString(theme.UserBubble.Render(util.WrapWidth(m.Content, width-2)))
	default:
		header := theme.AssistantLabel.Render(label)
		if m.Topic != "" {
			header += " " + theme.TopicBadge.Render(fmt.Sprintf("[%s]", m.Topic))
		}
		if m.IsBlocked() {
			header += " " + theme.BlockedBadge.Render("[blocked]")
		}
		b.WriteString(header)
		b.WriteString(" ")
		b.WriteString(ts)
		b.WriteString("\n")
		b.WriteString(theme.AssistantBubble.Render(renderMarkdown(m.Content, width-2)))
	}

	return b.String()
}

// RenderTranscript renders the full message log separated by blank lines.
func RenderTranscript(msgs []model.Message, width int, theme *styles.Theme) string {
	parts := make([]string, 0, len(msgs))
	for i := range msgs {
		parts = append(parts, RenderMessage(&msgs[i], width, theme))
	}
	return strings.Join(parts, "\n\n")
}
