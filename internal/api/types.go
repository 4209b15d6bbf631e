// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "time"

// =============================================================================
// DOMAIN TYPES
// =============================================================================

// User is an authenticated session as returned by the auth endpoints.
// It is held in memory only; there is no client-side session persistence.
type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Question is one generated multiple-choice question.
//
// Text carries the source passage the question was generated from,
// Question the question itself, Options the lettered answer options and
// CorrectAnswer the literal string of the correct option.
type Question struct {
	ID            string   `json:"id,omitempty"`
	Text          string   `json:"text"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Chat is one conversation thread in the user's chat list.
// The backend sends the originating user text under "user_text".
type Chat struct {
	ID       string `json:"id"`
	UserText string `json:"user_text"`
}

// StoredMessage is one persisted exchange: the user's turn and the
// serialized assistant result. AssistantText holds a JSON-encoded
// []Question when the generation succeeded; anything unparseable is
// treated as opaque text by the caller.
type StoredMessage struct {
	ID            string    `json:"id,omitempty"`
	ChatID        string    `json:"chatId"`
	UserID        string    `json:"userId"`
	UserText      string    `json:"userText"`
	AssistantText string    `json:"assistantText"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// =============================================================================
// REQUEST / RESPONSE SHAPES
// =============================================================================

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type generateRequest struct {
	Text         string `json:"text"`
	NumQuestions int    `json:"numQuestions"`
	ChatID       string `json:"chatId"`
}

type createChatRequest struct {
	UserID string `json:"userId"`
}

type createChatResponse struct {
	ChatID string `json:"chatId"`
}

type saveQuestionsRequest struct {
	Questions []Question `json:"questions"`
}

type saveMessageRequest struct {
	ChatID        string `json:"chatId"`
	UserID        string `json:"userId"`
	UserText      string `json:"userText"`
	AssistantText string `json:"assistantText"`
}

// apiErrorResponse is the backend's structured error payload.
type apiErrorResponse struct {
	Error string `json:"error"`
}
