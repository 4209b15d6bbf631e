// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/quizcards-tui/internal/api"
	"github.com/jeranaias/quizcards-tui/internal/ui/styles"
)

func newTestModel() Model {
	return New(styles.NewThemeWithBackground(true), api.NewClient(), "")
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestNew_StartsInLoginWithEmailFocused(t *testing.T) {
	m := newTestModel()
	if m.CurrentMode() != ModeLogin {
		t.Error("did not start in login mode")
	}
	if m.focus != fieldEmail {
		t.Errorf("initial focus = %d, want email", m.focus)
	}
}

func TestNew_PrefillsEmail(t *testing.T) {
	m := New(styles.NewThemeWithBackground(true), api.NewClient(), "ana@example.com")
	if got := m.inputs[fieldEmail].Value(); got != "ana@example.com" {
		t.Errorf("prefilled email = %q", got)
	}
}

func TestToggleMode(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(keyMsg("ctrl+t"))
	if m.CurrentMode() != ModeRegister {
		t.Fatal("ctrl+t did not switch to registration")
	}
	m, _ = m.Update(keyMsg("ctrl+t"))
	if m.CurrentMode() != ModeLogin {
		t.Error("ctrl+t did not switch back to login")
	}
}

func TestToggleMode_MovesFocusOffNameField(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(keyMsg("ctrl+t"))
	m.setFocus(fieldName)
	m, _ = m.Update(keyMsg("ctrl+t"))
	if m.focus == fieldName {
		t.Error("login mode left focus on the hidden name field")
	}
}

func TestCycleFocus_LoginSkipsName(t *testing.T) {
	m := newTestModel()

	m, _ = m.Update(keyMsg("tab"))
	if m.focus != fieldPassword {
		t.Errorf("focus after tab = %d, want password", m.focus)
	}

	m, _ = m.Update(keyMsg("tab"))
	if m.focus != fieldEmail {
		t.Errorf("focus after wrap = %d, want email (name is hidden in login)", m.focus)
	}
}

func TestCycleFocus_RegisterIncludesName(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(keyMsg("ctrl+t"))

	m, _ = m.Update(keyMsg("shift+tab"))
	if m.focus != fieldName {
		t.Errorf("focus after shift+tab from email = %d, want name", m.focus)
	}
}

func TestSubmit_RequiresCredentials(t *testing.T) {
	m := newTestModel()
	m, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("empty form produced a request command")
	}
	if m.ErrText() == "" {
		t.Error("empty form did not set an error")
	}
	if m.Submitting() {
		t.Error("empty form entered submitting state")
	}
}

func TestSubmit_RegisterRequiresName(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(keyMsg("ctrl+t"))
	m.inputs[fieldEmail].SetValue("ana@example.com")
	m.inputs[fieldPassword].SetValue("secret")

	m, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("nameless registration produced a request command")
	}
	if m.ErrText() == "" {
		t.Error("nameless registration did not set an error")
	}
}

func TestSubmit_ValidFormStartsRequest(t *testing.T) {
	m := newTestModel()
	m.inputs[fieldEmail].SetValue("ana@example.com")
	m.inputs[fieldPassword].SetValue("secret")

	m, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("valid form produced no request command")
	}
	if !m.Submitting() {
		t.Error("valid form did not enter submitting state")
	}
}

func TestResult_ErrorShowsMessage(t *testing.T) {
	m := newTestModel()
	m.submitting = true

	m, _ = m.Update(resultMsg{err: &api.ClientError{
		Type:    api.ErrTypeBackend,
		Message: "Credenciales inválidas",
	}})

	if m.Submitting() {
		t.Error("still submitting after error result")
	}
	if m.ErrText() != "Credenciales inválidas" {
		t.Errorf("error text = %q, want backend message verbatim", m.ErrText())
	}
}

func TestResult_SuccessEmitsSuccessMsg(t *testing.T) {
	m := newTestModel()
	m.submitting = true
	user := &api.User{ID: "u1", Token: "tok"}

	m, cmd := m.Update(resultMsg{user: user})
	if cmd == nil {
		t.Fatal("success result produced no command")
	}

	msg := cmd()
	success, ok := msg.(SuccessMsg)
	if !ok {
		t.Fatalf("command produced %T, want SuccessMsg", msg)
	}
	if success.User.ID != "u1" {
		t.Errorf("success user = %+v", success.User)
	}
}

func TestView_ShowsModeAndError(t *testing.T) {
	m := newTestModel()
	if !strings.Contains(m.View(), "Iniciar sesión") {
		t.Error("login view missing title")
	}

	m, _ = m.Update(keyMsg("ctrl+t"))
	if !strings.Contains(m.View(), "Crear cuenta") {
		t.Error("register view missing title")
	}

	m.errText = "algo falló"
	if !strings.Contains(m.View(), "algo falló") {
		t.Error("view missing error text")
	}
}
