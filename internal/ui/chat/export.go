// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/quizcards-tui/internal/config"
	"github.com/jeranaias/quizcards-tui/internal/model"
)

// =============================================================================
// TRANSCRIPT EXPORT
// =============================================================================

// exportTranscriptCmd writes the current transcript as Markdown under
// the config directory's exports folder.
func (m Model) exportTranscriptCmd() tea.Cmd {
	history := m.history
	userName := m.user.Name
	return func() tea.Msg {
		dir, err := config.ConfigDir()
		if err != nil {
			return ExportDoneMsg{Err: err}
		}
		exportDir := filepath.Join(dir, "exports")
		if err := os.MkdirAll(exportDir, 0o700); err != nil {
			return ExportDoneMsg{Err: err}
		}

		path := filepath.Join(exportDir,
			fmt.Sprintf("chat-%s.md", time.Now().Format("20060102-150405")))
		if err := os.WriteFile(path, []byte(transcriptMarkdown(userName, history)), 0o600); err != nil {
			return ExportDoneMsg{Err: err}
		}
		return ExportDoneMsg{Path: path}
	}
}

// transcriptMarkdown renders a display transcript as a Markdown
// document: user prompts as headings, question sets as task lists with
// the correct answer checked.
func transcriptMarkdown(userName string, history []model.DisplayMessage) string {
	var sb strings.Builder
	sb.WriteString("# Conversación de quizcards\n\n")
	sb.WriteString(fmt.Sprintf("Usuario: %s\n\n", userName))
	sb.WriteString(fmt.Sprintf("Exportado: %s\n\n", time.Now().Format("2006-01-02 15:04")))

	for _, msg := range history {
		switch {
		case msg.Role == model.RoleUser:
			sb.WriteString("## " + msg.Text + "\n\n")

		case msg.HasQuestions():
			for i, q := range msg.Questions {
				sb.WriteString(fmt.Sprintf("### Pregunta %d\n\n%s\n\n", i+1, q.Question))
				for _, opt := range q.Options {
					marker := " "
					if opt == q.CorrectAnswer {
						marker = "x"
					}
					sb.WriteString(fmt.Sprintf("- [%s] %s\n", marker, opt))
				}
				sb.WriteString("\n")
			}

		default:
			sb.WriteString(msg.Text + "\n\n")
		}
	}
	return sb.String()
}
