// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/quizcards-tui/internal/api"
	"github.com/jeranaias/quizcards-tui/internal/ui/styles"
	"github.com/jeranaias/quizcards-tui/internal/util"
)

// =============================================================================
// SIDEBAR COMPONENT
// =============================================================================

// Sidebar renders the chat list. Each entry is titled by the first
// prompt of the chat; the active chat is highlighted.
type Sidebar struct {
	Chats        []api.Chat
	ActiveChatID string
	Width        int
	Height       int
	theme        *styles.Theme
}

// NewSidebar creates a sidebar with the default width.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{
		Width: 28,
		theme: theme,
	}
}

// SetChats replaces the chat list.
func (s *Sidebar) SetChats(chats []api.Chat) {
	s.Chats = chats
}

// SetActive marks the active chat.
func (s *Sidebar) SetActive(chatID string) {
	s.ActiveChatID = chatID
}

// SetSize updates the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetTheme swaps the theme after a light/dark toggle.
func (s *Sidebar) SetTheme(theme *styles.Theme) {
	s.theme = theme
}

// ChatTitle returns the display title for a chat entry.
func ChatTitle(chat api.Chat, maxLen int) string {
	title := strings.TrimSpace(chat.UserText)
	if title == "" {
		title = "(sin título)"
	}
	return util.TruncateRunes(title, maxLen)
}

// View renders the sidebar.
func (s *Sidebar) View() string {
	titleLine := s.theme.SidebarTitle.Render("Chats")

	var lines []string
	lines = append(lines, titleLine, "")

	if len(s.Chats) == 0 {
		lines = append(lines, s.theme.SidebarEmpty.Render("Sin chats"))
	}

	titleWidth := s.Width - 4
	if titleWidth < 8 {
		titleWidth = 8
	}

	for _, chat := range s.Chats {
		title := ChatTitle(chat, titleWidth)
		if chat.ID == s.ActiveChatID {
			lines = append(lines, s.theme.SidebarItemActive.Render("> "+title))
		} else {
			lines = append(lines, s.theme.SidebarItem.Render("  "+title))
		}
	}

	content := strings.Join(lines, "\n")

	box := s.theme.Sidebar.Width(s.Width)
	if s.Height > 0 {
		box = box.Height(s.Height)
	}
	return box.Render(content)
}

// SelectNext returns the chat id after the active one, wrapping around.
// An empty list yields an empty id.
func (s *Sidebar) SelectNext() string {
	return s.selectOffset(1)
}

// SelectPrev returns the chat id before the active one, wrapping around.
func (s *Sidebar) SelectPrev() string {
	return s.selectOffset(-1)
}

func (s *Sidebar) selectOffset(delta int) string {
	if len(s.Chats) == 0 {
		return ""
	}
	active := -1
	for i, chat := range s.Chats {
		if chat.ID == s.ActiveChatID {
			active = i
			break
		}
	}
	if active < 0 {
		return s.Chats[0].ID
	}
	next := (active + delta + len(s.Chats)) % len(s.Chats)
	return s.Chats[next].ID
}

// Place aligns the sidebar next to body content.
func (s *Sidebar) Place(body string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.View(), body)
}
