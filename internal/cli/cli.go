// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for aurexus.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdLogin
	CmdRegister
	CmdLogout
	CmdWhoami
	CmdProviders
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	JSON    bool
	BaseURL string

	// Command-specific
	Query      string
	Email      string
	Role       string
	Provider   string
	ConfigKey  string
	ConfigVal  string
	Subcommand string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `aurexus - Real estate AI assistant for the terminal

Aurexus answers questions about macro trends, suburb analytics,
housing market insights, and real estate investment strategies.

Usage:
  aurexus                    Start TUI (default)
  aurexus ask "question"     Ask a single question
  aurexus chat               Plain readline chat (no TUI)
  aurexus login              Sign in to your account
  aurexus register           Create an account
  aurexus logout             Sign out and clear stored credentials
  aurexus whoami             Show the signed-in account
  aurexus providers          List answer providers
  aurexus status             Show connection and question-limit status
  aurexus config [show|set]  Configuration
  aurexus version            Show version information
  aurexus help               Show this help

Global flags:
  --base-url URL   Override the backend base URL
  --quiet, -q      Suppress informational output
  --json           Machine-readable output where supported

Examples:
  aurexus ask "How is the Brisbane market trending?"
  aurexus config set ui.theme light
  aurexus register --email dev@example.com --role developer

Config file: ~/.aurexus/config.toml
Environment: AUREXUS_BASE_URL, AUREXUS_THEME, AUREXUS_PROVIDER

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("aurexus version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses os.Args and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given argument list.
func ParseArgs(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, args

	case "ask":
		args.Query = strings.TrimSpace(strings.Join(remaining, " "))
		return CmdAsk, args

	case "chat":
		return CmdChat, args

	case "login":
		parseAccountFlags(&args, remaining)
		return CmdLogin, args

	case "register", "signup":
		parseAccountFlags(&args, remaining)
		return CmdRegister, args

	case "logout":
		return CmdLogout, args

	case "whoami", "me":
		return CmdWhoami, args

	case "providers", "provider":
		if len(remaining) > 0 {
			args.Provider = remaining[0]
		}
		return CmdProviders, args

	case "status", "s":
		return CmdStatus, args

	case "config", "cfg":
		parseConfigArgs(&args, remaining)
		return CmdConfig, args

	case "version", "ver", "--version", "-v":
		return CmdVersion, args

	case "help", "--help", "-h":
		return CmdHelp, args

	default:
		// Unknown word: treat the whole tail as an ask query, which
		// keeps `aurexus how are prices doing` working.
		args.Query = strings.TrimSpace(strings.Join(append([]string{cmd}, remaining...), " "))
		return CmdAsk, args
	}
}

// parseGlobalFlags extracts global flags, returning remaining args.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var args Args
	var remaining []string

	for i := 0; i < len(argv); i++ {
		switch argv[i] {
		case "--quiet", "-q":
			args.Quiet = true
		case "--json":
			args.JSON = true
		case "--base-url":
			if i+1 < len(argv) {
				i++
				args.BaseURL = argv[i]
			}
		default:
			remaining = append(remaining, argv[i])
		}
	}
	return remaining, args
}

func parseAccountFlags(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		switch remaining[i] {
		case "--email":
			if i+1 < len(remaining) {
				i++
				args.Email = remaining[i]
			}
		case "--role":
			if i+1 < len(remaining) {
				i++
				args.Role = remaining[i]
			}
		}
	}
}

func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) == 0 {
		args.Subcommand = "show"
		return
	}
	args.Subcommand = strings.ToLower(remaining[0])
	if args.Subcommand == "set" && len(remaining) >= 3 {
		args.ConfigKey = remaining[1]
		args.ConfigVal = remaining[2]
	}
}
