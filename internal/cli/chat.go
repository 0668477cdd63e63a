// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Plain readline chat mode for terminals where the full TUI
// is unwanted (ssh sessions, screen readers, scripts driving a pty).
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/aurexus/aurexus-tui/internal/config"
	"github.com/aurexus/aurexus-tui/internal/conversation"
	"github.com/aurexus/aurexus-tui/internal/export"
	"github.com/aurexus/aurexus-tui/internal/provider"
)

// =============================================================================
// READLINE WRAPPER
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
// USABILITY: Supports arrow keys for history navigation and line editing.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	cli.loadHistory()
	return cli
}

func (c *ChatCLI) loadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

func (c *ChatCLI) saveHistory() {
	f, err := os.OpenFile(c.historyFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// ReadInput reads a line with the given prompt and records it in history.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.saveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

// HandleChat runs the plain interactive chat loop.
func HandleChat(args Args) int {
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

	if !args.Quiet {
		fmt.Println(styled(welcomeStyle, "Aurexus"))
		fmt.Println(renderMarkdown(conversation.WelcomeText))
		fmt.Println(styled(infoStyle, "Type your question, /export to save, or /quit to leave."))
		fmt.Println()
	}

	cli := NewChatCLI()
	defer cli.Close()

	for {
		input, err := cli.ReadInput(styled(promptStyle, "> "))
		if err != nil {
			// Ctrl-C or EOF ends the session.
			fmt.Println()
			return 0
		}

		input = strings.TrimSpace(input)
		switch input {
		case "":
			continue
		case "/quit", "/exit", "/q":
			return 0
		case "/export", "/export json":
			exportTranscript(session, strings.HasSuffix(input, "json"))
			continue
		}

		if err := session.SendMessage(context.Background(), input); err != nil {
			// The transcript already carries the apology turn; print it
			// along with the cause.
			fmt.Println(styled(errorStyle, conversation.ApologyText))
			if !args.Quiet {
				fmt.Println(styled(infoStyle, "("+err.Error()+")"))
			}
			session.AcknowledgeError()
			continue
		}

		msgs := session.Messages()
		answer := msgs[len(msgs)-1]
		if answer.IsBlocked() {
			fmt.Println(styled(warnStyle, "(The assistant declined this topic.)"))
		}
		fmt.Println(renderMarkdown(answer.Content))
	}
}

// exportTranscript saves the current conversation to the working directory.
func exportTranscript(session *conversation.Session, asJSON bool) {
	var exporter export.Exporter = export.NewMarkdownExporter(nil)
	if asJSON {
		exporter = export.NewJSONExporter(nil)
	}
	path, err := export.ToFile(&export.Transcript{
		SessionID: session.ID(),
		Messages:  session.Messages(),
	}, exporter, nil)
	if err != nil {
		fmt.Println(styled(errorStyle, "Export failed: ") + err.Error())
		return
	}
	fmt.Println(styled(successStyle, "Saved to ") + path)
}
