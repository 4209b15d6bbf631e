// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/quizcards-tui/internal/api"
	"github.com/jeranaias/quizcards-tui/internal/ui/styles"
)

// =============================================================================
// AUTH STATE
// =============================================================================

// Mode selects between the login and registration forms.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// field indexes into the form inputs. The name field only exists in
// registration mode.
const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldCount
)

// =============================================================================
// MESSAGES
// =============================================================================

// SuccessMsg is emitted when authentication succeeds. The root model
// swaps in the chat view on receipt.
type SuccessMsg struct {
	User *api.User
}

// resultMsg carries the outcome of a login or register call back into
// the update loop.
type resultMsg struct {
	user *api.User
	err  error
}

// =============================================================================
// AUTH MODEL
// =============================================================================

// Model is the Bubble Tea model for the auth view.
type Model struct {
	mode Mode

	theme  *styles.Theme
	client *api.Client

	inputs []textinput.Model
	focus  int

	submitting bool
	errText    string

	width  int
	height int
}

// New creates the auth view. A configured email prefills the login form.
func New(theme *styles.Theme, client *api.Client, prefillEmail string) Model {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "Nombre"
	name.CharLimit = 64

	email := textinput.New()
	email.Prompt = ""
	email.Placeholder = "Email"
	email.CharLimit = 128
	email.SetValue(prefillEmail)

	password := textinput.New()
	password.Prompt = ""
	password.Placeholder = "Contraseña"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	m := Model{
		mode:   ModeLogin,
		theme:  theme,
		client: client,
		inputs: []textinput.Model{name, email, password},
		focus:  fieldEmail,
	}
	m.inputs[m.focus].Focus()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case resultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errText = authErrorText(msg.err)
			return m, nil
		}
		return m, func() tea.Msg {
			return SuccessMsg{User: msg.user}
		}
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.submitting {
		// Only quitting is allowed while a request is in flight.
		if msg.String() == "ctrl+q" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+q", "ctrl+c":
		return m, tea.Quit

	case "ctrl+t":
		return m.toggleMode()

	case "tab", "down":
		return m.cycleFocus(1)

	case "shift+tab", "up":
		return m.cycleFocus(-1)

	case "enter":
		return m.submit()
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// toggleMode switches between login and registration, clearing any
// previous error.
func (m Model) toggleMode() (Model, tea.Cmd) {
	if m.mode == ModeLogin {
		m.mode = ModeRegister
	} else {
		m.mode = ModeLogin
	}
	m.errText = ""

	// The name field is only reachable in registration mode.
	if m.mode == ModeLogin && m.focus == fieldName {
		m.setFocus(fieldEmail)
	}
	return m, textinput.Blink
}

func (m *Model) setFocus(field int) {
	m.inputs[m.focus].Blur()
	m.focus = field
	m.inputs[m.focus].Focus()
}

func (m Model) cycleFocus(delta int) (Model, tea.Cmd) {
	first := fieldName
	if m.mode == ModeLogin {
		first = fieldEmail
	}

	next := m.focus + delta
	if next < first {
		next = fieldCount - 1
	}
	if next >= fieldCount {
		next = first
	}
	m.setFocus(next)
	return m, textinput.Blink
}

// =============================================================================
// SUBMISSION
// =============================================================================

func (m Model) submit() (Model, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[fieldName].Value())
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()

	if email == "" || password == "" {
		m.errText = "Email y contraseña son obligatorios"
		return m, nil
	}
	if m.mode == ModeRegister && name == "" {
		m.errText = "El nombre es obligatorio"
		return m, nil
	}

	m.submitting = true
	m.errText = ""

	client := m.client
	mode := m.mode
	return m, func() tea.Msg {
		var user *api.User
		var err error
		if mode == ModeRegister {
			user, err = client.Register(context.Background(), name, email, password)
		} else {
			user, err = client.Login(context.Background(), email, password)
		}
		return resultMsg{user: user, err: err}
	}
}

// authErrorText maps a client error onto the form's error line. Backend
// messages pass through verbatim; transport failures get a generic line.
func authErrorText(err error) string {
	var clientErr *api.ClientError
	if errors.As(err, &clientErr) {
		switch clientErr.Type {
		case api.ErrTypeBackend, api.ErrTypeUnauthorized:
			return clientErr.Message
		case api.ErrTypeTimeout:
			return "El servidor tardó demasiado en responder"
		}
	}
	return "No se pudo conectar con el servidor"
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the auth form centered on screen.
func (m Model) View() string {
	var lines []string

	title := "Iniciar sesión"
	hint := "[Ctrl+T] Crear cuenta  [Enter] Entrar  [Ctrl+Q] Salir"
	if m.mode == ModeRegister {
		title = "Crear cuenta"
		hint = "[Ctrl+T] Iniciar sesión  [Enter] Registrarse  [Ctrl+Q] Salir"
	}
	lines = append(lines, m.theme.AuthTitle.Render(title), "")

	if m.mode == ModeRegister {
		lines = append(lines, m.fieldView("Nombre", fieldName))
	}
	lines = append(lines,
		m.fieldView("Email", fieldEmail),
		m.fieldView("Contraseña", fieldPassword),
	)

	if m.submitting {
		lines = append(lines, "", m.theme.AuthHint.Render("Conectando..."))
	} else if m.errText != "" {
		lines = append(lines, "", m.theme.AuthError.Render(styles.StatusIndicators.Error+" "+m.errText))
	}

	lines = append(lines, "", m.theme.AuthHint.Render(hint))

	box := m.theme.AuthBox.Render(strings.Join(lines, "\n"))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m Model) fieldView(label string, field int) string {
	labelStyle := m.theme.AuthLabel
	if m.focus == field {
		labelStyle = m.theme.AuthLabelFocused
	}
	return labelStyle.Render(label) + "\n" + m.inputs[field].View()
}

// =============================================================================
// GETTERS
// =============================================================================

// CurrentMode returns the active form mode.
func (m Model) CurrentMode() Mode {
	return m.mode
}

// ErrText returns the current form error, empty when none.
func (m Model) ErrText() string {
	return m.errText
}

// SetError installs a form error, used by the parent model to explain
// a forced return to the login screen.
func (m *Model) SetError(text string) {
	m.errText = text
}

// Submitting reports whether a request is in flight.
func (m Model) Submitting() bool {
	return m.submitting
}
