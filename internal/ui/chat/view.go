// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/quizcards-tui/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the full chat screen.
func (m Model) View() string {
	if !m.ready {
		return "Cargando..."
	}

	var sections []string
	if m.compact {
		sections = append(sections, m.header.ViewCompact())
	} else {
		sections = append(sections, m.header.View())
	}

	body := m.viewport.View()
	if m.showSidebar {
		body = m.sidebar.Place(body)
	}
	sections = append(sections, body)

	sections = append(sections, m.spinnerLine())
	sections = append(sections, m.inputView())
	sections = append(sections, m.statusBar())

	screen := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.toasts.HasToasts() {
		overlay := components.RenderToastStack(m.toasts.GetToasts(), m.width, m.height)
		if overlay != "" {
			screen = screen + "\n" + overlay
		}
	}
	return screen
}

// spinnerLine renders the generation indicator, or a blank line so the
// layout does not jump when generation starts.
func (m Model) spinnerLine() string {
	if m.generating {
		return " " + m.spinner.View()
	}
	return ""
}

// inputView renders the prompt input with its container border.
func (m Model) inputView() string {
	return m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())
}

// statusBar renders the bottom shortcut bar.
func (m Model) statusBar() string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "generar"},
		{"Tab", "chat"},
		{"Ctrl+B", "lista"},
		{"Ctrl+T", "tema"},
		{"/help", "ayuda"},
		{"Ctrl+Q", "salir"},
	}

	parts := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		parts = append(parts,
			m.theme.ShortcutKey.Render(s.key)+" "+m.theme.ShortcutDesc.Render(s.desc))
	}
	bar := strings.Join(parts, "  ")
	return m.theme.StatusBar.Width(m.width).Render(bar)
}
