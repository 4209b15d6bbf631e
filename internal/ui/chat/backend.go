// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file holds the tea.Cmd constructors that call the backend. Each
// command captures the token and identifiers at dispatch time so a
// logout or chat switch during the round trip cannot redirect the
// result.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/quizcards-tui/internal/api"
	"github.com/jeranaias/quizcards-tui/internal/model"
)

// =============================================================================
// CHAT LIST COMMANDS
// =============================================================================

// loadChatsCmd fetches the user's chat list.
func (m Model) loadChatsCmd() tea.Cmd {
	client, token, userID := m.client, m.user.Token, m.user.ID
	return func() tea.Msg {
		chats, err := client.GetChats(context.Background(), token, userID)
		return ChatsLoadedMsg{Chats: chats, Err: err}
	}
}

// createChatCmd creates an empty chat thread.
func (m Model) createChatCmd() tea.Cmd {
	client, token, userID := m.client, m.user.Token, m.user.ID
	return func() tea.Msg {
		chatID, err := client.CreateChat(context.Background(), token, userID)
		return ChatCreatedMsg{ChatID: chatID, Err: err}
	}
}

// =============================================================================
// TRANSCRIPT COMMANDS
// =============================================================================

// loadMessagesCmd fetches the stored history of one chat under the
// given fetch sequence.
func (m Model) loadMessagesCmd(chatID string, seq int) tea.Cmd {
	client, token, userID := m.client, m.user.Token, m.user.ID
	return func() tea.Msg {
		records, err := client.GetMessages(context.Background(), token, userID, chatID)
		return MessagesLoadedMsg{Seq: seq, ChatID: chatID, Records: records, Err: err}
	}
}

// =============================================================================
// GENERATION COMMAND
// =============================================================================

// generateCmd runs the full send pipeline in one command: create a
// chat when none is active, generate questions, then persist the
// exchange record. The first error short-circuits the pipeline. The
// question-bank POST is not part of a send; that is what /save is for.
func (m Model) generateCmd(prompt string) tea.Cmd {
	client, token, userID := m.client, m.user.Token, m.user.ID
	chatID := m.activeChatID
	count := m.numQuestions
	return func() tea.Msg {
		ctx := context.Background()

		created := false
		if chatID == "" {
			id, err := client.CreateChat(ctx, token, userID)
			if err != nil {
				return GenerateDoneMsg{Prompt: prompt, Err: err}
			}
			chatID = id
			created = true
		}

		questions, err := client.GenerateQuestions(ctx, token, prompt, count, chatID)
		if err != nil {
			return GenerateDoneMsg{ChatID: chatID, CreatedChat: created, Prompt: prompt, Err: err}
		}

		record := api.StoredMessage{
			ChatID:        chatID,
			UserID:        userID,
			UserText:      prompt,
			AssistantText: model.EncodeQuestions(questions),
		}
		if err := client.SaveMessage(ctx, token, record); err != nil {
			return GenerateDoneMsg{ChatID: chatID, CreatedChat: created, Prompt: prompt, Err: err}
		}

		return GenerateDoneMsg{
			ChatID:      chatID,
			CreatedChat: created,
			Prompt:      prompt,
			Questions:   questions,
		}
	}
}

// =============================================================================
// BANK COMMANDS
// =============================================================================

// saveToBankCmd persists a question set: POST to the backend bank, then
// mirror into the local bank when it is enabled. The backend copy is
// authoritative; a disabled local bank skips only the mirror.
func (m Model) saveToBankCmd(topic string, questions []api.Question) tea.Cmd {
	client, token := m.client, m.user.Token
	b := m.bank
	return func() tea.Msg {
		ctx := context.Background()
		if err := client.SaveQuestions(ctx, token, questions); err != nil {
			return BankSavedMsg{Err: err}
		}
		if b == nil {
			return BankSavedMsg{}
		}
		inserted, err := b.SaveQuestions(ctx, topic, questions)
		return BankSavedMsg{Inserted: inserted, Err: err}
	}
}

// syncBankCmd mirrors the user's server-side questions into the bank.
func (m Model) syncBankCmd() tea.Cmd {
	client, token, userID := m.client, m.user.Token, m.user.ID
	b := m.bank
	return func() tea.Msg {
		questions, err := client.GetQuestionsByUser(context.Background(), token, userID)
		if err != nil {
			return BankSavedMsg{Err: err}
		}
		inserted, err := b.Sync(context.Background(), questions)
		return BankSavedMsg{Inserted: inserted, Err: err}
	}
}
