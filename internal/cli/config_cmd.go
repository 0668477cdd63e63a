// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration show/set commands.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aurexus/aurexus-tui/internal/config"
)

// HandleConfig shows or updates configuration.
func HandleConfig(args Args) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
		return 1
	}

	switch args.Subcommand {
	case "", "show":
		path, _ := config.ConfigPath()
		fmt.Println(styled(infoStyle, "# "+path))
		fmt.Printf("api.base_url           = %s\n", cfg.API.BaseURL)
		fmt.Printf("api.timeout_secs       = %d\n", cfg.API.TimeoutSecs)
		fmt.Printf("chat.provider          = %s\n", cfg.Chat.Provider)
		fmt.Printf("chat.consent_data_usage = %t\n", cfg.Chat.ConsentDataUsage)
		fmt.Printf("chat.consent_contact   = %t\n", cfg.Chat.ConsentContact)
		fmt.Printf("ui.theme               = %s\n", cfg.UI.Theme)
		return 0

	case "set":
		if args.ConfigKey == "" {
			fmt.Fprintln(os.Stderr, styled(errorStyle, "Usage: aurexus config set <key> <value>"))
			return 1
		}
		if err := setConfigKey(cfg, args.ConfigKey, args.ConfigVal); err != nil {
			fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
			return 1
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
			return 1
		}
		if err := config.Save(cfg); err != nil {
			fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
			return 1
		}
		fmt.Println(styled(successStyle, "Saved ") + args.ConfigKey + " = " + args.ConfigVal)
		return 0

	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
			return 1
		}
		fmt.Println(path)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown config subcommand %q\n", styled(errorStyle, "Error"), args.Subcommand)
		return 1
	}
}

func setConfigKey(cfg *config.Config, key, value string) error {
	switch key {
	case "api.base_url":
		cfg.API.BaseURL = value
	case "api.timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeout must be a number: %w", err)
		}
		cfg.API.TimeoutSecs = n
	case "chat.provider":
		cfg.Chat.Provider = value
	case "chat.consent_data_usage":
		cfg.Chat.ConsentDataUsage = value == "true" || value == "1"
	case "chat.consent_contact":
		cfg.Chat.ConsentContact = value == "true" || value == "1"
	case "ui.theme":
		cfg.UI.Theme = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}
