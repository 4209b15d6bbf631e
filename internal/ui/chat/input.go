// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file contains input submission: slash command dispatch and the
// question generation send flow.
package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/quizcards-tui/internal/model"
	"github.com/jeranaias/quizcards-tui/internal/ui/components"
)

// =============================================================================
// INPUT SUBMISSION
// =============================================================================

// submitInput is the entry point for a submitted prompt. Commands are
// dispatched first; anything else starts the generation pipeline.
func (m Model) submitInput() (Model, tea.Cmd) {
	content := strings.TrimSpace(m.input.Value())
	if content == "" {
		return m, nil
	}

	if strings.HasPrefix(content, "/") {
		return m.handleCommand(content)
	}

	if m.generating {
		m.toasts.AddStatus("Espera a que termine la generación actual")
		return m, components.ToastTickCmd()
	}

	m.input.Reset()

	// The user bubble appears immediately; the backend round trip
	// resolves into either a question set or the failure notice.
	m.history = append(m.history, model.NewUserMessage(content))
	m.generating = true
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.spinner.Start(),
		m.generateCmd(content),
	)
}
