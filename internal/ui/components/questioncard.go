// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/jeranaias/quizcards-tui/internal/api"
	"github.com/jeranaias/quizcards-tui/internal/ui/styles"
	"github.com/jeranaias/quizcards-tui/internal/util"
)

// =============================================================================
// QUESTION CARD COMPONENT
// =============================================================================

// optionLabels letter the options the way the quiz displays them.
var optionLabels = []string{"a", "b", "c", "d", "e", "f", "g", "h"}

// RenderQuestion renders a single question card: the prompt, the
// lettered options, and the correct answer highlighted.
func RenderQuestion(theme *styles.Theme, q api.Question, index, width int) string {
	innerWidth := width - 6
	if innerWidth < 20 {
		innerWidth = 20
	}

	var lines []string

	header := theme.QuestionIndex.Render("Pregunta "+strconv.Itoa(index+1)) + " " +
		theme.QuestionText.Render(strings.Join(util.WrapWidth(q.Question, innerWidth), "\n"))
	lines = append(lines, header)

	for i, opt := range q.Options {
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		line := label + ") " + opt
		if opt == q.CorrectAnswer {
			lines = append(lines, theme.QuestionCorrect.Render(line+" "+styles.StatusIndicators.Success))
		} else {
			lines = append(lines, theme.QuestionOption.Render(line))
		}
	}

	return theme.QuestionCard.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// RenderQuestionSet renders a full generated set as stacked cards.
func RenderQuestionSet(theme *styles.Theme, questions []api.Question, width int) string {
	if len(questions) == 0 {
		return ""
	}

	cards := make([]string, 0, len(questions))
	for i, q := range questions {
		cards = append(cards, RenderQuestion(theme, q, i, width))
	}
	return strings.Join(cards, "\n")
}

// QuestionSetSummary returns a one-line summary for sidebar previews
// and the question bank listing.
func QuestionSetSummary(questions []api.Question) string {
	if len(questions) == 0 {
		return "0 preguntas"
	}
	noun := "preguntas"
	if len(questions) == 1 {
		noun = "pregunta"
	}
	return strconv.Itoa(len(questions)) + " " + noun + ": " + util.TruncateRunes(questions[0].Question, 40)
}
