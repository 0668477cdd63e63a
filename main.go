// aurexus TUI - A terminal client for the Aurexus real estate AI assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/aurexus/aurexus-tui/internal/cli"
	"github.com/aurexus/aurexus-tui/internal/config"
	"github.com/aurexus/aurexus-tui/internal/conversation"
	"github.com/aurexus/aurexus-tui/internal/logging"
	"github.com/aurexus/aurexus-tui/internal/provider"
	"github.com/aurexus/aurexus-tui/internal/ui/chat"
	"github.com/aurexus/aurexus-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	// A local .env is optional; absence is the normal case.
	_ = godotenv.Load()

	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		os.Exit(runTUI(args))
	case cli.CmdAsk:
		os.Exit(cli.HandleAsk(args))
	case cli.CmdChat:
		os.Exit(cli.HandleChat(args))
	case cli.CmdLogin:
		os.Exit(cli.HandleLogin(args))
	case cli.CmdRegister:
		os.Exit(cli.HandleRegister(args))
	case cli.CmdLogout:
		os.Exit(cli.HandleLogout(args))
	case cli.CmdWhoami:
		os.Exit(cli.HandleWhoami(args))
	case cli.CmdProviders:
		os.Exit(cli.HandleProviders(args))
	case cli.CmdStatus:
		os.Exit(cli.HandleStatus(args))
	case cli.CmdConfig:
		os.Exit(cli.HandleConfig(args))
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		cli.PrintUsage()
		os.Exit(1)
	}
}

// runTUI wires up the full-screen chat interface.
func runTUI(args cli.Args) int {
	deps, err := cli.BuildDeps(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if dir, err := config.ConfigDir(); err == nil {
		if err := logging.Init(filepath.Join(dir, "logs")); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
		}
		defer logging.Sync()
	}

	deps.AuthMgr.ResolveCurrentUser(context.Background())

	pref := provider.NewPreference(deps.Config.Chat.Provider)
	pref.SetPersist(func(id string) error {
		deps.Config.Chat.Provider = id
		return config.Save(deps.Config)
	})
	consent := conversation.Consent{
		DataUsage: deps.Config.Chat.ConsentDataUsage,
		Contact:   deps.Config.Chat.ConsentContact,
	}
	providerID := func() string { return pref.Current().ID }

	newSession := func() *conversation.Session {
		return conversation.NewSession(deps.ChatClient, consent, providerID)
	}
	session := newSession()
	defer session.Close()

	theme := styles.NewTheme(deps.Config.UI.Theme)
	model := chat.New(session, newSession, deps.AuthMgr, pref, deps.ChatClient, theme)

	// Live-reload base URL and theme-independent settings while the
	// TUI runs; a restart picks up the rest.
	if path, err := config.ConfigPath(); err == nil {
		if w, werr := config.NewWatcher(path, func(cfg *config.Config) {
			timeout := time.Duration(cfg.API.TimeoutSecs) * time.Second
			deps.ChatClient.WithTimeout(timeout)
			// A stale provider keeps the previous valid selection.
			_ = pref.Select(cfg.Chat.Provider)
		}); werr == nil {
			if werr := w.Watch(); werr == nil {
				defer w.Close()
			}
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
