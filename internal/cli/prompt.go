// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// prompt.go - Interactive credential prompts for the CLI commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/jeranaias/quizcards-tui/internal/api"
	"github.com/jeranaias/quizcards-tui/internal/config"
)

// =============================================================================
// CREDENTIALS
// =============================================================================

// resolveCredentials returns the login email and password, preferring
// explicit flags, then environment variables, then interactive
// prompts. The password never comes from a flag.
func resolveCredentials(flagEmail string, cfg *config.Config) (string, string, error) {
	email := flagEmail
	if email == "" {
		email = os.Getenv("QUIZCARDS_EMAIL")
	}
	if email == "" {
		email = cfg.Backend.Email
	}
	if email == "" {
		var err error
		email, err = promptLine("Correo: ")
		if err != nil {
			return "", "", err
		}
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return "", "", errors.New("se requiere un correo")
	}

	password := os.Getenv("QUIZCARDS_PASSWORD")
	if password == "" {
		var err error
		password, err = readPassword("Contraseña: ")
		if err != nil {
			return "", "", err
		}
	}
	if password == "" {
		return "", "", errors.New("se requiere una contraseña")
	}

	return email, password, nil
}

// login authenticates against the backend and returns the session.
func login(ctx context.Context, client *api.Client, flagEmail string, cfg *config.Config) (*api.User, error) {
	email, password, err := resolveCredentials(flagEmail, cfg)
	if err != nil {
		return nil, err
	}

	user, err := client.Login(ctx, email, password)
	if err != nil {
		var clientErr *api.ClientError
		if errors.As(err, &clientErr) && clientErr.Message != "" {
			return nil, errors.New(clientErr.Message)
		}
		return nil, err
	}
	return user, nil
}

// promptLine reads one line with editing support.
func promptLine(prompt string) (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	input, err := line.Prompt(prompt)
	if err != nil {
		if err == liner.ErrPromptAborted {
			return "", errors.New("entrada cancelada")
		}
		return "", err
	}
	return input, nil
}

// readPassword reads a password from stdin without echoing.
// Uses golang.org/x/term for secure cross-platform password input.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(passBytes)), nil
}

// IsStdoutTTY reports whether stdout is a terminal. Markdown rendering
// is skipped for piped output.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
