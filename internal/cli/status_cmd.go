// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status_cmd.go - Provider listing and backend status commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/aurexus/aurexus-tui/internal/config"
	"github.com/aurexus/aurexus-tui/internal/provider"
)

// HandleProviders lists the provider catalog, or switches the
// persisted selection when an ID is given.
func HandleProviders(args Args) int {
	deps, err := BuildDeps(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
		return 1
	}

	pref := provider.NewPreference(deps.Config.Chat.Provider)

	if args.Provider != "" {
		if err := pref.Select(args.Provider); err != nil {
			fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
			return 1
		}
		deps.Config.Chat.Provider = pref.Current().ID
		if err := config.Save(deps.Config); err != nil {
			fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
			return 1
		}
		fmt.Println(styled(successStyle, "Provider set to ") + pref.Current().Name)
		return 0
	}

	current := pref.Current().ID
	for _, p := range provider.All() {
		marker := "  "
		if p.ID == current {
			marker = styled(successStyle, "* ")
		}
		status := styled(successStyle, "available")
		if !p.Available {
			status = styled(infoStyle, "coming soon")
		}
		fmt.Printf("%s%-12s %-14s %s\n", marker, p.ID, status, styled(infoStyle, p.Description))
	}
	return 0
}

// HandleStatus shows the backend connection and question-limit status.
func HandleStatus(args Args) int {
	deps, err := BuildDeps(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
		return 1
	}
	deps.AuthMgr.ResolveCurrentUser(context.Background())

	fmt.Printf("Backend:  %s\n", deps.ChatClient.BaseURL())

	if user := deps.AuthMgr.CurrentUser(); user != nil {
		fmt.Printf("Account:  %s (%s)\n", user.DisplayName(), user.Role)
		fmt.Println("Limit:    none (signed in)")
		return 0
	}
	fmt.Println("Account:  anonymous")

	// The limit endpoint is keyed by session; a fresh ID reports the
	// untouched allowance and proves the backend is reachable.
	limit, err := deps.ChatClient.GetQuestionLimit(context.Background(), uuid.NewString())
	if err != nil {
		fmt.Printf("Limit:    %s\n", styled(errorStyle, "unreachable ("+err.Error()+")"))
		return 1
	}
	if limit.RequiresSignup {
		fmt.Println("Limit:    " + styled(warnStyle, "reached - sign up to continue"))
	} else {
		fmt.Printf("Limit:    %d questions per anonymous session\n", limit.QuestionsRemaining)
	}
	return 0
}
