// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/quizcards-tui/internal/api"
	"github.com/jeranaias/quizcards-tui/internal/model"
	"github.com/jeranaias/quizcards-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewThemeWithBackground(true)
}

// =============================================================================
// TOAST TESTS
// =============================================================================

func TestToastManager_AddAndRemove(t *testing.T) {
	m := NewToastManager()

	id := m.AddError("fallo de red")
	if !m.HasToasts() {
		t.Fatal("manager has no toasts after add")
	}

	m.RemoveToast(id)
	if m.HasToasts() {
		t.Error("toast survived removal")
	}
}

func TestToastManager_NewestFirstAndCapped(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < 8; i++ {
		m.AddStatus("toast")
	}

	toasts := m.GetToasts()
	if len(toasts) != 5 {
		t.Errorf("toast count = %d, want capped at 5", len(toasts))
	}

	m.AddError("último")
	if got := m.GetToasts()[0].Message; got != "último" {
		t.Errorf("newest toast = %q, want último first", got)
	}
}

func TestToastManager_TickExpires(t *testing.T) {
	m := NewToastManager()
	expired := NewStatusToast("viejo")
	expired.CreatedAt = time.Now().Add(-time.Minute)
	m.AddToast(expired)
	m.AddStatus("nuevo")

	remaining := m.TickToasts()
	if len(remaining) != 1 || remaining[0].Message != "nuevo" {
		t.Errorf("remaining = %+v, want only the fresh toast", remaining)
	}
}

func TestRenderToast_IncludesIndicator(t *testing.T) {
	out := RenderToast(NewErrorToast("sin conexión"), 80)
	if !strings.Contains(out, styles.StatusIndicators.Error) {
		t.Error("error toast missing its indicator")
	}
	if !strings.Contains(out, "sin conexión") {
		t.Error("toast missing its message")
	}
}

// =============================================================================
// SIDEBAR TESTS
// =============================================================================

func TestChatTitle(t *testing.T) {
	tests := []struct {
		name string
		chat api.Chat
		want string
	}{
		{"normal", api.Chat{UserText: "La fotosíntesis"}, "La fotosíntesis"},
		{"blank", api.Chat{UserText: "  "}, "(sin título)"},
		{"truncated", api.Chat{UserText: strings.Repeat("x", 50)}, strings.Repeat("x", 17) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChatTitle(tt.chat, 20); got != tt.want {
				t.Errorf("ChatTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSidebar_ActiveHighlight(t *testing.T) {
	s := NewSidebar(testTheme())
	s.SetChats([]api.Chat{
		{ID: "c1", UserText: "uno"},
		{ID: "c2", UserText: "dos"},
	})
	s.SetActive("c2")

	view := s.View()
	if !strings.Contains(view, "> dos") {
		t.Error("active chat is not marked")
	}
	if strings.Contains(view, "> uno") {
		t.Error("inactive chat is marked as active")
	}
}

func TestSidebar_Selection(t *testing.T) {
	s := NewSidebar(testTheme())
	s.SetChats([]api.Chat{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}})
	s.SetActive("c3")

	if got := s.SelectNext(); got != "c1" {
		t.Errorf("SelectNext wrap = %q, want c1", got)
	}
	if got := s.SelectPrev(); got != "c2" {
		t.Errorf("SelectPrev = %q, want c2", got)
	}

	s.SetChats(nil)
	if got := s.SelectNext(); got != "" {
		t.Errorf("SelectNext on empty list = %q, want empty", got)
	}
}

// =============================================================================
// QUESTION CARD TESTS
// =============================================================================

func TestRenderQuestion_MarksCorrectAnswer(t *testing.T) {
	q := api.Question{
		Question:      "¿Capital de Francia?",
		Options:       []string{"París", "Roma", "Berlín", "Madrid"},
		CorrectAnswer: "París",
	}

	out := RenderQuestion(testTheme(), q, 0, 60)
	if !strings.Contains(out, "Pregunta 1") {
		t.Error("card missing question number")
	}
	if !strings.Contains(out, styles.StatusIndicators.Success) {
		t.Error("card does not mark the correct answer")
	}
	for _, label := range []string{"a)", "b)", "c)", "d)"} {
		if !strings.Contains(out, label) {
			t.Errorf("card missing option label %s", label)
		}
	}
}

func TestQuestionSetSummary(t *testing.T) {
	questions := []api.Question{
		{Question: "q1"}, {Question: "q2"}, {Question: "q3"},
	}
	got := QuestionSetSummary(questions)
	if !strings.HasPrefix(got, "3 preguntas") {
		t.Errorf("summary = %q", got)
	}

	if got := QuestionSetSummary([]api.Question{{Question: "solo"}}); !strings.HasPrefix(got, "1 pregunta:") {
		t.Errorf("singular summary = %q", got)
	}
}

// =============================================================================
// MESSAGE BUBBLE TESTS
// =============================================================================

func TestRenderMessage_QuestionsBecomeCards(t *testing.T) {
	msg := model.NewAssistantQuestions([]api.Question{
		{Question: "¿Qué es el ADN?", Options: []string{"a", "b"}, CorrectAnswer: "a"},
	})

	out := RenderMessage(testTheme(), msg, 80)
	if !strings.Contains(out, "Pregunta 1") {
		t.Error("assistant question payload did not render as cards")
	}
}

func TestRenderTranscript_EmptyShowsPrompt(t *testing.T) {
	out := RenderTranscript(testTheme(), nil, 80)
	if !strings.Contains(out, "Escribe un tema") {
		t.Errorf("empty transcript = %q", out)
	}
}

func TestRenderTranscript_AllMessagesPresent(t *testing.T) {
	messages := []model.DisplayMessage{
		model.NewUserMessage("hola"),
		model.NewAssistantText("respuesta"),
	}
	out := RenderTranscript(testTheme(), messages, 80)
	if !strings.Contains(out, "hola") || !strings.Contains(out, "respuesta") {
		t.Error("transcript missing messages")
	}
}
