// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/aurexus/aurexus-tui/internal/api"
	"github.com/aurexus/aurexus-tui/internal/auth"
	"github.com/aurexus/aurexus-tui/internal/config"
	"github.com/aurexus/aurexus-tui/internal/creds"
)

// =============================================================================
// SHARED COMMAND DEPENDENCIES
// =============================================================================

// Deps bundles the collaborators every handler needs.
type Deps struct {
	Config     *config.Config
	Creds      creds.Store
	ChatClient *api.Client
	AuthMgr    *auth.Manager
}

// BuildDeps loads config, opens the credential store, and constructs
// the API clients. The stored token, if any, is resolved immediately
// so handlers see a settled auth state.
func BuildDeps(args Args) (*Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if args.BaseURL != "" {
		cfg.API.BaseURL = args.BaseURL
	}

	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	store, err := creds.NewFileStore(dir)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.API.TimeoutSecs) * time.Second
	chatClient := api.NewClient(cfg.API.BaseURL).WithTimeout(timeout)
	authMgr := auth.NewManager(auth.NewClient(cfg.API.BaseURL), store)

	return &Deps{
		Config:     cfg,
		Creds:      store,
		ChatClient: chatClient,
		AuthMgr:    authMgr,
	}, nil
}

// =============================================================================
// PROMPT HELPERS
// =============================================================================

// promptLine reads one line of input with a visible prompt.
func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing.
// SECURITY: Hidden input keeps passwords out of scrollback.
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(pw)), nil
}
