// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file implements the slash command registry. Each command is an
// individual handler so commands stay independently testable.
package chat

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/quizcards-tui/internal/api"
	"github.com/jeranaias/quizcards-tui/internal/model"
	"github.com/jeranaias/quizcards-tui/internal/ui/components"
)

// =============================================================================
// COMMAND HANDLER REGISTRY
// =============================================================================

// CommandHandler handles one slash command. It receives the model and
// the command arguments and returns the updated model and command.
type CommandHandler func(m *Model, args []string) (Model, tea.Cmd)

// commandHandlers maps command names to their handler functions.
var commandHandlers = map[string]CommandHandler{
	// Help & Meta
	"help": handleHelpCommand,
	"h":    handleHelpCommand,
	"?":    handleHelpCommand,
	"quit": handleQuitCommand,
	"q":    handleQuitCommand,
	"exit": handleQuitCommand,

	// Conversation
	"new":   handleNewCommand,
	"n":     handleNewCommand,
	"clear": handleClearCommand,
	"c":     handleClearCommand,

	// Generation
	"num": handleNumCommand,

	// Question bank
	"save": handleSaveCommand,
	"s":    handleSaveCommand,
	"sync": handleSyncCommand,

	// Export
	"export": handleExportCommand,
	"e":      handleExportCommand,

	// Appearance
	"theme":   handleThemeCommand,
	"sidebar": handleSidebarCommand,
	"sb":      handleSidebarCommand,

	// Session
	"logout": handleLogoutCommand,
}

// handleCommand dispatches a slash command through the registry.
func (m Model) handleCommand(content string) (Model, tea.Cmd) {
	m.input.Reset()

	parts := strings.Fields(content)
	if len(parts) == 0 {
		return m, nil
	}

	cmdName := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	args := parts[1:]

	if handler, ok := commandHandlers[cmdName]; ok {
		return handler(&m, args)
	}

	m.toasts.AddError("Comando desconocido: " + parts[0] + " (usa /help)")
	return m, components.ToastTickCmd()
}

// =============================================================================
// HELP AND META COMMANDS
// =============================================================================

const helpText = `Comandos disponibles:
  /new          crear un chat nuevo
  /clear        limpiar la vista del chat actual
  /num <n>      preguntas por generación (1-20)
  /save [tema]  guardar las últimas preguntas en el banco local
  /sync         sincronizar el banco local con el servidor
  /export       exportar la conversación a Markdown
  /theme        alternar tema claro/oscuro
  /sidebar      mostrar u ocultar la lista de chats
  /logout       cerrar sesión
  /quit         salir

Atajos: Ctrl+B barra lateral, Ctrl+T tema, Tab siguiente chat, Ctrl+Q salir.`

func handleHelpCommand(m *Model, args []string) (Model, tea.Cmd) {
	m.history = append(m.history, model.NewAssistantText(helpText))
	m.updateViewport()
	m.viewport.GotoBottom()
	return *m, nil
}

func handleQuitCommand(m *Model, args []string) (Model, tea.Cmd) {
	return *m, tea.Quit
}

// =============================================================================
// CONVERSATION COMMANDS
// =============================================================================

func handleNewCommand(m *Model, args []string) (Model, tea.Cmd) {
	if m.generating {
		m.toasts.AddStatus("Espera a que termine la generación actual")
		return *m, components.ToastTickCmd()
	}
	return *m, m.createChatCmd()
}

// handleClearCommand clears the local transcript view. The stored
// history on the server is untouched; reselecting the chat restores it.
func handleClearCommand(m *Model, args []string) (Model, tea.Cmd) {
	m.history = nil
	m.updateViewport()
	return *m, nil
}

// =============================================================================
// GENERATION COMMANDS
// =============================================================================

func handleNumCommand(m *Model, args []string) (Model, tea.Cmd) {
	if len(args) != 1 {
		m.toasts.AddStatus("Uso: /num <1-20>")
		return *m, components.ToastTickCmd()
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > 20 {
		m.toasts.AddError("Número de preguntas fuera de rango (1-20)")
		return *m, components.ToastTickCmd()
	}
	m.numQuestions = n
	m.toasts.AddSuccess("Generando " + args[0] + " preguntas por tema")
	return *m, components.ToastTickCmd()
}

// =============================================================================
// QUESTION BANK COMMANDS
// =============================================================================

func handleSaveCommand(m *Model, args []string) (Model, tea.Cmd) {
	questions, topic := m.latestQuestionSet()
	if len(questions) == 0 {
		m.toasts.AddStatus("No hay preguntas que guardar todavía")
		return *m, components.ToastTickCmd()
	}
	if len(args) > 0 {
		topic = strings.Join(args, " ")
	}
	return *m, m.saveToBankCmd(topic, questions)
}

func handleSyncCommand(m *Model, args []string) (Model, tea.Cmd) {
	if m.bank == nil {
		m.toasts.AddError("El banco de preguntas está desactivado")
		return *m, components.ToastTickCmd()
	}
	m.toasts.AddStatus("Sincronizando con el servidor...")
	return *m, tea.Batch(components.ToastTickCmd(), m.syncBankCmd())
}

// latestQuestionSet finds the most recent assistant question set and
// the user prompt that produced it.
func (m *Model) latestQuestionSet() ([]api.Question, string) {
	for i := len(m.history) - 1; i >= 0; i-- {
		if !m.history[i].HasQuestions() {
			continue
		}
		topic := ""
		if i > 0 && m.history[i-1].Role == model.RoleUser {
			topic = m.history[i-1].Text
		}
		return m.history[i].Questions, topic
	}
	return nil, ""
}

// =============================================================================
// EXPORT COMMAND
// =============================================================================

func handleExportCommand(m *Model, args []string) (Model, tea.Cmd) {
	if len(m.history) == 0 {
		m.toasts.AddStatus("No hay conversación que exportar")
		return *m, components.ToastTickCmd()
	}
	return *m, m.exportTranscriptCmd()
}

// =============================================================================
// APPEARANCE COMMANDS
// =============================================================================

func handleThemeCommand(m *Model, args []string) (Model, tea.Cmd) {
	cmd := m.toggleTheme()
	return *m, cmd
}

func handleSidebarCommand(m *Model, args []string) (Model, tea.Cmd) {
	result, cmd := m.toggleSidebar()
	return result, cmd
}

// =============================================================================
// SESSION COMMANDS
// =============================================================================

func handleLogoutCommand(m *Model, args []string) (Model, tea.Cmd) {
	return *m, logout()
}
