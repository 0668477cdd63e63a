// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/aurexus/aurexus-tui/internal/api"
	"github.com/aurexus/aurexus-tui/internal/ui/styles"
	"github.com/aurexus/aurexus-tui/internal/util"
)

// RenderErrorBanner renders the dismissible error banner shown while
// the conversation is in the errored state.
func RenderErrorBanner(err error, width int, theme *styles.Theme) string {
	if err == nil {
		return ""
	}

	title := "Request failed"
	tip := "Press Esc to dismiss, or just send another message."
	if api.IsNetworkError(err) {
		title = "Connection trouble"
		tip = "Check your network, then send again. Esc dismisses this banner."
	}

	var b strings.Builder
	b.WriteString(theme.ErrorTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(theme.ErrorMessage.Render(util.WrapWidth(err.Error(), width-4)))
	b.WriteString("\n")
	b.WriteString(theme.ErrorTip.Render(tip))
	return theme.ErrorBox.Width(width - 2).Render(b.String())
}
