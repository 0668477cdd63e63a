// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/aurexus/aurexus-tui/internal/config"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantCmd Command
	}{
		{"no args starts tui", nil, CmdTUI},
		{"explicit tui", []string{"tui"}, CmdTUI},
		{"ask", []string{"ask", "how", "are", "prices"}, CmdAsk},
		{"chat", []string{"chat"}, CmdChat},
		{"login", []string{"login"}, CmdLogin},
		{"register", []string{"register"}, CmdRegister},
		{"signup alias", []string{"signup"}, CmdRegister},
		{"logout", []string{"logout"}, CmdLogout},
		{"whoami", []string{"whoami"}, CmdWhoami},
		{"me alias", []string{"me"}, CmdWhoami},
		{"providers", []string{"providers"}, CmdProviders},
		{"status", []string{"status"}, CmdStatus},
		{"status alias", []string{"s"}, CmdStatus},
		{"config", []string{"config"}, CmdConfig},
		{"version", []string{"version"}, CmdVersion},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"bare question falls back to ask", []string{"how", "is", "brisbane"}, CmdAsk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := ParseArgs(tt.argv)
			if cmd != tt.wantCmd {
				t.Errorf("ParseArgs(%v) = %v, want %v", tt.argv, cmd, tt.wantCmd)
			}
		})
	}
}

func TestParseAskQuery(t *testing.T) {
	_, args := ParseArgs([]string{"ask", "how", "is", "brisbane"})
	if args.Query != "how is brisbane" {
		t.Errorf("Query = %q", args.Query)
	}

	_, args = ParseArgs([]string{"what", "about", "units"})
	if args.Query != "what about units" {
		t.Errorf("fallback Query = %q", args.Query)
	}
}

func TestParseGlobalFlags(t *testing.T) {
	cmd, args := ParseArgs([]string{"--quiet", "--json", "--base-url", "https://x.test", "status"})
	if cmd != CmdStatus {
		t.Errorf("cmd = %v", cmd)
	}
	if !args.Quiet || !args.JSON {
		t.Errorf("flags = %+v", args)
	}
	if args.BaseURL != "https://x.test" {
		t.Errorf("BaseURL = %q", args.BaseURL)
	}
}

func TestParseAccountFlags(t *testing.T) {
	_, args := ParseArgs([]string{"register", "--email", "dev@x.test", "--role", "developer"})
	if args.Email != "dev@x.test" || args.Role != "developer" {
		t.Errorf("args = %+v", args)
	}
}

func TestParseConfigArgs(t *testing.T) {
	_, args := ParseArgs([]string{"config"})
	if args.Subcommand != "show" {
		t.Errorf("default subcommand = %q", args.Subcommand)
	}

	_, args = ParseArgs([]string{"config", "set", "ui.theme", "light"})
	if args.Subcommand != "set" || args.ConfigKey != "ui.theme" || args.ConfigVal != "light" {
		t.Errorf("args = %+v", args)
	}
}

func TestSetConfigKey(t *testing.T) {
	cfg := config.Default()

	if err := setConfigKey(cfg, "ui.theme", "light"); err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q", cfg.UI.Theme)
	}

	if err := setConfigKey(cfg, "api.timeout_secs", "abc"); err == nil {
		t.Error("non-numeric timeout accepted")
	}
	if err := setConfigKey(cfg, "nope.key", "x"); err == nil {
		t.Error("unknown key accepted")
	}
}
