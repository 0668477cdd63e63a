// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"

	"github.com/aurexus/aurexus-tui/internal/conversation"
	"github.com/aurexus/aurexus-tui/internal/provider"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// renderMarkdown renders markdown for terminal display, falling back
// to the raw content when rendering fails or colors are off.
func renderMarkdown(content string) string {
	if !ColorsEnabled() {
		return content
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAsk sends one question and prints the answer.
func HandleAsk(args Args) int {
	if args.Query == "" {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "Usage: aurexus ask \"your question\""))
		return 1
	}

	deps, err := BuildDeps(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
		return 1
	}
	deps.AuthMgr.ResolveCurrentUser(context.Background())

	pref := provider.NewPreference(deps.Config.Chat.Provider)
	session := conversation.NewSession(deps.ChatClient, conversation.Consent{
		DataUsage: deps.Config.Chat.ConsentDataUsage,
		Contact:   deps.Config.Chat.ConsentContact,
	}, func() string { return pref.Current().ID })
	defer session.Close()

	if err := session.SendMessage(context.Background(), args.Query); err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
		return 1
	}

	msgs := session.Messages()
	answer := msgs[len(msgs)-1]
	if answer.IsBlocked() && !args.Quiet {
		fmt.Println(styled(warnStyle, "(The assistant declined this topic.)"))
	}
	fmt.Println(renderMarkdown(answer.Content))
	return 0
}
