// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines all Bubble Tea message types used by the chat
// interface. Messages are organized into the following categories:
//   - Session: expiry and logout signals consumed by the parent model
//   - Chat list: loading and creating conversation threads
//   - Transcript: history loads for the selected chat
//   - Generation: question generation and persistence results
//   - Bank: local question bank saves and exports
package chat

import "github.com/jeranaias/quizcards-tui/internal/api"

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// SessionExpiredMsg signals that the backend rejected the session
// token. The parent model drops back to the auth view.
type SessionExpiredMsg struct{}

// LogoutMsg signals a user-initiated logout (/logout).
type LogoutMsg struct{}

// =============================================================================
// CHAT LIST MESSAGES
// =============================================================================

// ChatsLoadedMsg delivers the user's chat list.
type ChatsLoadedMsg struct {
	Chats []api.Chat
	Err   error
}

// ChatCreatedMsg confirms an explicit chat creation (/new).
type ChatCreatedMsg struct {
	ChatID string
	Err    error
}

// =============================================================================
// TRANSCRIPT MESSAGES
// =============================================================================

// MessagesLoadedMsg delivers the stored history of one chat. Seq is
// the fetch sequence the load was issued under; a completion whose Seq
// no longer matches the model's current sequence is stale and must be
// discarded.
type MessagesLoadedMsg struct {
	Seq     int
	ChatID  string
	Records []api.StoredMessage
	Err     error
}

// =============================================================================
// GENERATION MESSAGES
// =============================================================================

// GenerateDoneMsg reports the outcome of one full send: chat creation
// when no chat was active, generation, and server-side persistence of
// the exchange record. Err is the first failure in that pipeline;
// Questions is set only on full success.
type GenerateDoneMsg struct {
	ChatID      string
	CreatedChat bool
	Prompt      string
	Questions   []api.Question
	Err         error
}

// =============================================================================
// BANK MESSAGES
// =============================================================================

// BankSavedMsg confirms a /save or /sync of the question bank.
// Inserted counts new local rows; it is zero when the local mirror is
// disabled or had every question already.
type BankSavedMsg struct {
	Inserted int
	Err      error
}

// ExportDoneMsg confirms a /export of the transcript or bank.
type ExportDoneMsg struct {
	Path string
	Err  error
}
