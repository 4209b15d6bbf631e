// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/quizcards-tui/internal/model"
	"github.com/jeranaias/quizcards-tui/internal/ui/styles"
	"github.com/jeranaias/quizcards-tui/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// FailureNotice is the assistant text shown when generation or
// persistence failed. It renders in the error style instead of the
// normal assistant bubble.
const FailureNotice = "Lo siento, hubo un error al generar o guardar las preguntas."

// RenderMessage renders one transcript bubble. User messages align
// right, assistant messages align left; an assistant question payload
// renders as cards.
func RenderMessage(theme *styles.Theme, msg model.DisplayMessage, width int) string {
	bubbleWidth := width * 3 / 4
	if bubbleWidth < 24 {
		bubbleWidth = 24
	}

	switch {
	case msg.Role == model.RoleUser:
		body := strings.Join(util.WrapWidth(msg.Text, bubbleWidth-6), "\n")
		bubble := theme.UserBubble.MaxWidth(bubbleWidth).Render(body)
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(bubble)

	case msg.HasQuestions():
		return RenderQuestionSet(theme, msg.Questions, bubbleWidth)

	case msg.Text == FailureNotice:
		body := strings.Join(util.WrapWidth(msg.Text, bubbleWidth-6), "\n")
		return theme.ErrorBubble.MaxWidth(bubbleWidth).Render(body)

	default:
		body := strings.Join(util.WrapWidth(msg.Text, bubbleWidth-6), "\n")
		return theme.AssistantBubble.MaxWidth(bubbleWidth).Render(body)
	}
}

// RenderTranscript renders the full message list with blank lines
// between bubbles.
func RenderTranscript(theme *styles.Theme, messages []model.DisplayMessage, width int) string {
	if len(messages) == 0 {
		return theme.HeaderSubtitle.Render("Escribe un tema para generar preguntas.")
	}

	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		parts = append(parts, RenderMessage(theme, msg, width))
	}
	return strings.Join(parts, "\n\n")
}
