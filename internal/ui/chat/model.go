// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/quizcards-tui/internal/api"
	"github.com/jeranaias/quizcards-tui/internal/bank"
	"github.com/jeranaias/quizcards-tui/internal/config"
	"github.com/jeranaias/quizcards-tui/internal/model"
	"github.com/jeranaias/quizcards-tui/internal/ui/components"
	"github.com/jeranaias/quizcards-tui/internal/ui/styles"
)

// =============================================================================
// LAYOUT CONSTANTS
// =============================================================================

const (
	// headerHeight is the rendered header box height, including border.
	headerHeight = 4
	// inputHeight covers the input line and its border.
	inputHeight = 3
	// statusBarHeight is the shortcut bar at the bottom.
	statusBarHeight = 1
	// spinnerHeight reserves one line for the generation spinner.
	spinnerHeight = 1
	// minViewportHeight keeps the transcript visible on tiny terminals.
	minViewportHeight = 3
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the conversation view. It owns the chat list, the display
// transcript of the active chat and the generation pipeline state.
type Model struct {
	client *api.Client
	user   *api.User
	bank   *bank.Bank
	theme  *styles.Theme
	cfg    *config.Config

	// Conversation state
	chats        []api.Chat
	activeChatID string
	history      []model.DisplayMessage

	// One generation pipeline runs at a time.
	generating bool

	// fetchSeq orders history loads. Each chat switch bumps it; a
	// MessagesLoadedMsg carrying an older sequence is discarded so a
	// slow fetch can never overwrite a newer chat's transcript.
	fetchSeq int

	// Per-session generation size, seeded from config (/num overrides).
	numQuestions int

	// Components
	input    textinput.Model
	viewport viewport.Model
	spinner  components.Spinner
	header   *components.Header
	sidebar  *components.Sidebar
	toasts   *components.ToastManager

	// Layout
	width       int
	height      int
	showSidebar bool
	compact     bool
	ready       bool
}

// New creates the chat view for an authenticated user. The bank may be
// nil when the local question bank is disabled.
func New(client *api.Client, user *api.User, theme *styles.Theme, cfg *config.Config, b *bank.Bank) Model {
	input := textinput.New()
	input.Placeholder = "Escribe un tema para generar preguntas..."
	input.CharLimit = 2000
	input.Focus()

	header := components.NewHeader(theme)
	header.SetUser(user.Name)

	return Model{
		client:       client,
		user:         user,
		bank:         b,
		theme:        theme,
		cfg:          cfg,
		numQuestions: cfg.Generation.NumQuestions,
		input:        input,
		viewport:     viewport.New(80, 20),
		spinner:      components.NewGeneratingSpinner(),
		header:       header,
		sidebar:      components.NewSidebar(theme),
		toasts:       components.NewToastManager(),
		showSidebar:  cfg.UI.ShowSidebar,
		compact:      cfg.UI.CompactMode,
	}
}

// Init loads the chat list and starts the ambient tickers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.loadChatsCmd(),
		components.ToastTickCmd(),
	)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update dispatches messages to per-type handlers.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ChatsLoadedMsg:
		return m.handleChatsLoaded(msg)

	case MessagesLoadedMsg:
		return m.handleMessagesLoaded(msg)

	case ChatCreatedMsg:
		return m.handleChatCreated(msg)

	case GenerateDoneMsg:
		return m.handleGenerateDone(msg)

	case BankSavedMsg:
		return m.handleBankSaved(msg)

	case ExportDoneMsg:
		return m.handleExportDone(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		if m.toasts.HasToasts() {
			return m, components.ToastTickCmd()
		}
		return m, nil
	}

	return m.updateInput(msg)
}

// updateInput forwards unhandled messages to the focused text input.
func (m Model) updateInput(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.theme.SetSize(msg.Width, msg.Height)
	m.header.SetWidth(msg.Width)

	hh := headerHeight
	if m.compact {
		hh = 1
	}
	vpHeight := msg.Height - hh - inputHeight - statusBarHeight - spinnerHeight
	if vpHeight < minViewportHeight {
		vpHeight = minViewportHeight
	}

	vpWidth := msg.Width
	if m.showSidebar {
		vpWidth -= m.sidebar.Width
	}
	if vpWidth < 20 {
		vpWidth = 20
	}

	m.viewport.Width = vpWidth
	m.viewport.Height = vpHeight
	m.sidebar.SetSize(m.sidebar.Width, vpHeight)
	m.input.Width = msg.Width - 6

	m.updateViewport()
	return m
}

// =============================================================================
// BACKEND RESULT HANDLERS
// =============================================================================

// handleChatsLoaded merges a chat list fetch. A failed or empty fetch
// keeps the list the model already has: the backend returns the same
// data eventually and an empty flash would drop the user's selection.
func (m Model) handleChatsLoaded(msg ChatsLoadedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		if api.IsUnauthorized(msg.Err) {
			return m, expireSession()
		}
		m.toasts.AddError("No se pudo cargar la lista de chats")
		return m, components.ToastTickCmd()
	}
	if len(msg.Chats) == 0 && len(m.chats) > 0 {
		return m, nil
	}

	m.chats = msg.Chats
	m.sidebar.SetChats(msg.Chats)
	m.syncHeader()
	return m, nil
}

// handleMessagesLoaded installs a fetched transcript, discarding stale
// completions from before the latest chat switch.
func (m Model) handleMessagesLoaded(msg MessagesLoadedMsg) (Model, tea.Cmd) {
	if msg.Seq != m.fetchSeq {
		return m, nil
	}
	if msg.Err != nil {
		if api.IsUnauthorized(msg.Err) {
			return m, expireSession()
		}
		m.toasts.AddError("No se pudo cargar el historial")
		return m, components.ToastTickCmd()
	}

	m.history = model.ExpandStored(msg.Records)
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// handleChatCreated activates a chat created via /new.
func (m Model) handleChatCreated(msg ChatCreatedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		if api.IsUnauthorized(msg.Err) {
			return m, expireSession()
		}
		m.toasts.AddError("No se pudo crear el chat")
		return m, components.ToastTickCmd()
	}

	m.activeChatID = msg.ChatID
	m.sidebar.SetActive(msg.ChatID)
	m.fetchSeq++
	m.history = nil
	m.updateViewport()
	m.syncHeader()
	return m, m.loadChatsCmd()
}

// handleGenerateDone finishes one send. The generating flag clears on
// every path, success or not, so the input can never wedge.
func (m Model) handleGenerateDone(msg GenerateDoneMsg) (Model, tea.Cmd) {
	m.generating = false
	m.spinner.Stop()

	// A chat created mid-send becomes the active chat even when a
	// later pipeline stage failed; the thread exists server-side.
	if msg.ChatID != "" && m.activeChatID == "" {
		m.activeChatID = msg.ChatID
		m.sidebar.SetActive(msg.ChatID)
	}

	if msg.Err != nil {
		if api.IsUnauthorized(msg.Err) {
			return m, expireSession()
		}
		m.history = append(m.history, model.NewAssistantText(components.FailureNotice))
		m.updateViewport()
		m.viewport.GotoBottom()
		m.toasts.AddError(backendErrorText(msg.Err))
		cmds := []tea.Cmd{components.ToastTickCmd()}
		if msg.CreatedChat {
			cmds = append(cmds, m.loadChatsCmd())
		}
		return m, tea.Batch(cmds...)
	}

	m.history = append(m.history, model.NewAssistantQuestions(msg.Questions))
	m.updateViewport()
	m.viewport.GotoBottom()

	// Chat titles derive from the first prompt, so the list needs a
	// refresh after every successful send.
	return m, m.loadChatsCmd()
}

func (m Model) handleBankSaved(msg BankSavedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		if api.IsUnauthorized(msg.Err) {
			return m, expireSession()
		}
		m.toasts.AddError("No se pudieron guardar las preguntas")
	} else if msg.Inserted == 0 {
		m.toasts.AddSuccess("Preguntas guardadas en el servidor")
	} else {
		m.toasts.AddSuccess(savedToastText(msg.Inserted))
	}
	return m, components.ToastTickCmd()
}

func (m Model) handleExportDone(msg ExportDoneMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.toasts.AddError("No se pudo exportar: " + msg.Err.Error())
	} else {
		m.toasts.AddSuccess("Exportado a " + msg.Path)
	}
	return m, components.ToastTickCmd()
}

// =============================================================================
// CHAT SELECTION
// =============================================================================

// selectChat switches the active chat and resyncs its history from the
// backend. The local transcript is never trusted across a switch.
func (m Model) selectChat(chatID string) (Model, tea.Cmd) {
	if chatID == "" || chatID == m.activeChatID {
		return m, nil
	}

	m.activeChatID = chatID
	m.sidebar.SetActive(chatID)
	m.fetchSeq++
	m.history = nil
	m.updateViewport()
	m.syncHeader()
	return m, m.loadMessagesCmd(chatID, m.fetchSeq)
}

// =============================================================================
// HELPERS
// =============================================================================

// updateViewport re-renders the transcript into the viewport.
func (m *Model) updateViewport() {
	m.viewport.SetContent(components.RenderTranscript(m.theme, m.history, m.viewport.Width))
}

// syncHeader refreshes the header's chat title from the active chat.
func (m *Model) syncHeader() {
	for _, c := range m.chats {
		if c.ID == m.activeChatID {
			m.header.SetChatTitle(components.ChatTitle(c, 40))
			return
		}
	}
	m.header.SetChatTitle("")
}

// setTheme installs a new theme on the model and its components.
func (m *Model) setTheme(theme *styles.Theme) {
	m.theme = theme
	m.header.SetTheme(theme)
	m.sidebar.SetTheme(theme)
	m.updateViewport()
}

// toggleTheme flips between dark and light and persists the choice so
// the next session starts with it. The disk write runs inside the
// returned command; a failed save never blocks the switch itself.
func (m *Model) toggleTheme() tea.Cmd {
	m.setTheme(m.theme.Toggle())

	name := "light"
	if m.theme.IsDark {
		name = "dark"
	}
	m.cfg.UI.Theme = name

	cfg := m.cfg
	return func() tea.Msg {
		_ = config.Save(cfg)
		return nil
	}
}

// expireSession reports an invalid token to the parent model.
func expireSession() tea.Cmd {
	return func() tea.Msg { return SessionExpiredMsg{} }
}

// logout reports a user-initiated logout to the parent model.
func logout() tea.Cmd {
	return func() tea.Msg { return LogoutMsg{} }
}

// savedToastText pluralizes the bank save confirmation.
func savedToastText(inserted int) string {
	if inserted == 1 {
		return "1 pregunta guardada en el banco local"
	}
	return fmt.Sprintf("%d preguntas guardadas en el banco local", inserted)
}

// backendErrorText maps a backend error to a short Spanish toast line.
func backendErrorText(err error) string {
	var clientErr *api.ClientError
	if !errors.As(err, &clientErr) {
		return "Error inesperado"
	}
	switch clientErr.Type {
	case api.ErrTypeTimeout:
		return "El servidor tardó demasiado en responder"
	case api.ErrTypeConnection:
		return "No se pudo conectar con el servidor"
	case api.ErrTypeBackend:
		return clientErr.Message
	default:
		return "Error inesperado del servidor"
	}
}

// =============================================================================
// ACCESSORS (used by the parent model and tests)
// =============================================================================

// ActiveChatID returns the selected chat's id ("" before first send).
func (m Model) ActiveChatID() string { return m.activeChatID }

// Generating reports whether a send pipeline is in flight.
func (m Model) Generating() bool { return m.generating }

// History returns the display transcript of the active chat.
func (m Model) History() []model.DisplayMessage { return m.history }

// Chats returns the current chat list.
func (m Model) Chats() []api.Chat { return m.chats }
