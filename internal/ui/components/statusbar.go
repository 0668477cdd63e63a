// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/aurexus/aurexus-tui/internal/api"
	"github.com/aurexus/aurexus-tui/internal/ui/styles"
	"github.com/aurexus/aurexus-tui/internal/util"
)

// StatusInfo is everything the status bar displays.
type StatusInfo struct {
	// State is the conversation state name ("idle", "pending", "errored").
	State string
	// Provider is the selected provider display name.
	Provider string
	// Account is the signed-in user's display name, empty when anonymous.
	Account string
	// Limit is the latest question-limit snapshot, nil when unknown.
	Limit *api.QuestionLimit
}

// RenderStatusBar renders the one-line status bar at the given width.
func RenderStatusBar(info StatusInfo, width int, theme *styles.Theme) string {
	var parts []string

	switch info.State {
	case "pending":
		parts = append(parts, theme.StatusBusy.Render("● "+info.State))
	case "errored":
		parts = append(parts, theme.StatusError.Render("● "+info.State))
	default:
		parts = append(parts, theme.StatusIdle.Render("● "+info.State))
	}

	if info.Provider != "" {
		parts = append(parts, info.Provider)
	}

	if info.Account != "" {
		parts = append(parts, info.Account)
	} else {
		parts = append(parts, "anonymous")
	}

	if info.Limit != nil {
		if info.Limit.RequiresSignup {
			parts = append(parts, theme.StatusNudge.Render("question limit reached - sign up to continue"))
		} else {
			parts = append(parts, fmt.Sprintf("%d questions left", info.Limit.QuestionsRemaining))
		}
	}

	line := strings.Join(parts, "  |  ")
	if util.StringWidth(line) > width && width > 1 {
		line = util.TruncateWidth(line, width-1)
	}
	return theme.StatusBar.Width(width).Render(line)
}
