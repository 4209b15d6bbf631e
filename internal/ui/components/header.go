// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/quizcards-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar: brand on the left, the signed-in user and
// active chat on the right.
type Header struct {
	Title     string
	UserName  string
	ChatTitle string
	Width     int
	theme     *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "quizcards",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetTheme swaps the theme after a light/dark toggle.
func (h *Header) SetTheme(theme *styles.Theme) {
	h.theme = theme
}

// SetUser updates the signed-in user name.
func (h *Header) SetUser(name string) {
	h.UserName = name
}

// SetChatTitle updates the active chat title.
func (h *Header) SetChatTitle(title string) {
	h.ChatTitle = title
}

// View renders the header component.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}
	innerWidth := width - 6

	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Cyan)

	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)

	brand := accentStyle.Render("< ") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(" >")

	var subtitleParts []string
	if h.UserName != "" {
		userStyle := lipgloss.NewStyle().
			Foreground(styles.TextSecondary)
		subtitleParts = append(subtitleParts, userStyle.Render(h.UserName))
	}
	if h.ChatTitle != "" {
		chatStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true)
		subtitleParts = append(subtitleParts, chatStyle.Render(h.ChatTitle))
	}
	subtitle := strings.Join(subtitleParts, " | ")

	brandLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Render(brand)

	lines := []string{brandLine}
	if subtitle != "" {
		subtitleLine := lipgloss.NewStyle().
			Width(innerWidth).
			Align(lipgloss.Center).
			Foreground(styles.TextMuted).
			Render(subtitle)
		lines = append(lines, subtitleLine)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)

	headerBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Background(styles.SurfaceDim).
		Padding(0, 2).
		Width(width)

	return headerBox.Render(content)
}

// ViewCompact renders a single-line header for narrow terminals.
func (h *Header) ViewCompact() string {
	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Cyan)

	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)

	brand := accentStyle.Render("<") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(">")

	parts := []string{brand}
	if h.UserName != "" {
		userStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted)
		parts = append(parts, userStyle.Render(h.UserName))
	}
	if h.ChatTitle != "" {
		chatStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true)
		parts = append(parts, chatStyle.Render(h.ChatTitle))
	}

	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	return strings.Join(parts, separator)
}
