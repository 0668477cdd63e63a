// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - Account management commands (login, register, logout, whoami).
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aurexus/aurexus-tui/internal/api"
)

// HandleLogin signs in and stores the bearer token.
func HandleLogin(args Args) int {
	if !IsTTY() && args.Email == "" {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "login requires a terminal or --email"))
		return 1
	}

	deps, err := BuildDeps(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
		return 1
	}

	email := args.Email
	if email == "" {
		if email, err = promptLine("Email: "); err != nil {
			return 1
		}
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
		return 1
	}

	if err := deps.AuthMgr.Login(context.Background(), email, password); err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "Login failed: ")+err.Error())
		return 1
	}

	user := deps.AuthMgr.CurrentUser()
	fmt.Println(styled(successStyle, "Signed in as ") + user.DisplayName() + styled(infoStyle, " ("+string(user.Role)+")"))
	return 0
}

// HandleRegister creates an account. The session stays anonymous; the
// user logs in explicitly afterwards.
func HandleRegister(args Args) int {
	if !IsTTY() && args.Email == "" {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "register requires a terminal or --email"))
		return 1
	}

	deps, err := BuildDeps(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
		return 1
	}

	email := args.Email
	if email == "" {
		if email, err = promptLine("Email: "); err != nil {
			return 1
		}
	}

	role := api.Role(args.Role)
	if role == "" {
		role = api.RolePublic
	}
	if !role.Valid() {
		fmt.Fprintf(os.Stderr, "%s: role must be one of public, developer, investor, admin\n",
			styled(errorStyle, "Invalid role"))
		return 1
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
		return 1
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
		return 1
	}
	if password != confirm {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "Passwords do not match."))
		return 1
	}

	firstName, _ := promptLine("First name (optional): ")
	lastName, _ := promptLine("Last name (optional): ")

	user, err := deps.AuthMgr.Register(context.Background(), api.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "Registration failed: ")+err.Error())
		return 1
	}

	fmt.Println(styled(successStyle, "Account created for ") + user.Email)
	fmt.Println(styled(infoStyle, "Run 'aurexus login' to sign in."))
	return 0
}

// HandleLogout clears stored credentials.
func HandleLogout(args Args) int {
	deps, err := BuildDeps(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
		return 1
	}
	deps.AuthMgr.Logout()
	if !args.Quiet {
		fmt.Println(styled(successStyle, "Signed out."))
	}
	return 0
}

// HandleWhoami shows the current account.
func HandleWhoami(args Args) int {
	deps, err := BuildDeps(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "Error: ")+err.Error())
		return 1
	}
	deps.AuthMgr.ResolveCurrentUser(context.Background())

	user := deps.AuthMgr.CurrentUser()
	if user == nil {
		fmt.Println("Not signed in.")
		return 0
	}

	if args.JSON {
		out, _ := json.MarshalIndent(user, "", "  ")
		fmt.Println(string(out))
		return 0
	}

	fmt.Printf("%s <%s>\n", user.DisplayName(), user.Email)
	fmt.Printf("  Role: %s\n", user.Role)
	if user.Company != "" {
		fmt.Printf("  Company: %s\n", user.Company)
	}
	fmt.Printf("  Questions asked: %d\n", user.TotalQuestionsAsked)
	return 0
}
