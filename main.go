// quizcards TUI - a terminal interface for generating Spanish-language
// multiple-choice quizzes.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/quizcards-tui/internal/api"
	"github.com/jeranaias/quizcards-tui/internal/bank"
	"github.com/jeranaias/quizcards-tui/internal/cli"
	"github.com/jeranaias/quizcards-tui/internal/config"
	"github.com/jeranaias/quizcards-tui/internal/ui/auth"
	"github.com/jeranaias/quizcards-tui/internal/ui/chat"
	"github.com/jeranaias/quizcards-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	switch cmd {
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdBank:
		cli.HandleBank(args)
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI()
	}
}

// runTUI starts the interactive interface.
func runTUI() {
	cfg, err := config.Load()
	if err != nil {
		// A broken config file should not lock the user out.
		fmt.Fprintln(os.Stderr, styles.RenderWarning(
			fmt.Sprintf("Configuración no válida (%v); usando valores por defecto", err)))
		cfg = config.Default()
	}

	if cfg.Debug.Enabled {
		if path, err := cfg.DebugLogPath(); err == nil {
			if f, err := tea.LogToFile(path, "quizcards"); err == nil {
				defer f.Close()
			}
		}
	}

	p := tea.NewProgram(newAppModel(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// ROOT MODEL
// =============================================================================

type appState int

const (
	stateAuth appState = iota
	stateChat
)

// appModel gates the chat view behind authentication. It owns the
// shared client, theme and question bank, and swaps between the auth
// form and the chat view as the session comes and goes.
type appModel struct {
	state appState

	cfg    *config.Config
	client *api.Client
	theme  *styles.Theme
	bank   *bank.Bank

	auth auth.Model
	chat chat.Model

	// lastEmail prefills the login form after logout or expiry.
	lastEmail string

	width  int
	height int
}

func newAppModel(cfg *config.Config) appModel {
	theme := styles.NewThemeWithBackground(cfg.UI.Theme != "light")
	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Timeout(),
	})

	var b *bank.Bank
	if cfg.Bank.Enabled {
		if path, err := cfg.BankPath(); err == nil {
			// A bank open failure disables /save but never blocks the UI.
			b, _ = bank.Open(path)
		}
	}

	return appModel{
		state:     stateAuth,
		cfg:       cfg,
		client:    client,
		theme:     theme,
		bank:      b,
		auth:      auth.New(theme, client, cfg.Backend.Email),
		lastEmail: cfg.Backend.Email,
	}
}

func (m appModel) Init() tea.Cmd {
	return m.auth.Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case auth.SuccessMsg:
		return m.enterChat(msg)

	case chat.SessionExpiredMsg:
		return m.returnToAuth("La sesión ha expirado. Inicia sesión de nuevo.")

	case chat.LogoutMsg:
		return m.returnToAuth("")
	}

	var cmd tea.Cmd
	switch m.state {
	case stateAuth:
		m.auth, cmd = m.auth.Update(msg)
	case stateChat:
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

// enterChat swaps to the chat view after a successful login or
// registration.
func (m appModel) enterChat(msg auth.SuccessMsg) (tea.Model, tea.Cmd) {
	m.state = stateChat
	m.lastEmail = msg.User.Email
	m.chat = chat.New(m.client, msg.User, m.theme, m.cfg, m.bank)

	if m.width > 0 {
		resized, _ := m.chat.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.chat = resized
	}
	return m, m.chat.Init()
}

// returnToAuth drops back to the login form, keeping the email so a
// re-login is one password away.
func (m appModel) returnToAuth(notice string) (tea.Model, tea.Cmd) {
	m.state = stateAuth
	m.auth = auth.New(m.theme, m.client, m.lastEmail)
	if notice != "" {
		m.auth.SetError(notice)
	}
	if m.width > 0 {
		resized, _ := m.auth.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.auth = resized
	}
	return m, m.auth.Init()
}

func (m appModel) View() string {
	switch m.state {
	case stateChat:
		return m.chat.View()
	default:
		return m.auth.View()
	}
}
