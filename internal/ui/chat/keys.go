// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// KEY HANDLING
// =============================================================================

// handleKey routes key presses. Generation in flight blocks submission
// but never navigation or quitting.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+q":
		return m, tea.Quit

	case "enter":
		return m.submitInput()

	case "esc":
		m.input.Reset()
		return m, nil

	case "ctrl+b":
		return m.toggleSidebar()

	case "ctrl+t":
		cmd := m.toggleTheme()
		return m, cmd

	case "ctrl+n", "tab":
		return m.selectChat(m.sidebar.SelectNext())

	case "ctrl+p", "shift+tab":
		return m.selectChat(m.sidebar.SelectPrev())

	case "pgup":
		m.viewport.ViewUp()
		return m, nil

	case "pgdown":
		m.viewport.ViewDown()
		return m, nil

	case "ctrl+u":
		m.viewport.HalfViewUp()
		return m, nil

	case "ctrl+d":
		m.viewport.HalfViewDown()
		return m, nil

	case "home":
		m.viewport.GotoTop()
		return m, nil

	case "end":
		m.viewport.GotoBottom()
		return m, nil
	}

	return m.updateInput(msg)
}

// toggleSidebar flips the chat list visibility and reflows the layout.
func (m Model) toggleSidebar() (Model, tea.Cmd) {
	m.showSidebar = !m.showSidebar
	if m.ready {
		m = m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}
	return m, nil
}
