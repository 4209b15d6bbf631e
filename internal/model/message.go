// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/quizcards-tui/internal/api"
	"github.com/jeranaias/quizcards-tui/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a display message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// DISPLAY MESSAGE TYPE
// =============================================================================

// DisplayMessage is one rendered bubble in the transcript. An assistant
// message carries either Questions or plain Text, never both.
type DisplayMessage struct {
	ID        string
	Role      Role
	Timestamp time.Time

	// Text is the message body for user messages and for assistant
	// payloads that did not decode into questions.
	Text string

	// Questions is the structured assistant payload, nil for text
	// messages.
	Questions []api.Question
}

// NewUserMessage creates a user bubble with a generated ID.
func NewUserMessage(text string) DisplayMessage {
	return DisplayMessage{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Timestamp: time.Now(),
		Text:      text,
	}
}

// NewAssistantText creates an assistant bubble holding opaque text.
func NewAssistantText(text string) DisplayMessage {
	return DisplayMessage{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
		Text:      text,
	}
}

// NewAssistantQuestions creates an assistant bubble holding a question set.
func NewAssistantQuestions(questions []api.Question) DisplayMessage {
	return DisplayMessage{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
		Questions: questions,
	}
}

// HasQuestions reports whether the message carries a structured payload.
func (m DisplayMessage) HasQuestions() bool {
	return len(m.Questions) > 0
}

// Preview returns a truncated single-line preview of the message.
// Truncation is rune-based so multibyte text is never split.
func (m DisplayMessage) Preview(maxLen int) string {
	text := m.Text
	if m.HasQuestions() {
		text = m.Questions[0].Question
	}
	return util.TruncateRunes(text, maxLen)
}

// =============================================================================
// STORED RECORD TRANSLATION
// =============================================================================

// DecodeAssistantText interprets a stored assistant payload. A payload
// that parses as a non-empty question array is returned structured;
// anything else, including valid JSON of another shape, comes back as
// opaque text so the transcript never loses a record it cannot parse.
func DecodeAssistantText(payload string) ([]api.Question, string) {
	if payload == "" {
		return nil, ""
	}
	var questions []api.Question
	if err := json.Unmarshal([]byte(payload), &questions); err != nil || len(questions) == 0 {
		return nil, payload
	}
	return questions, ""
}

// EncodeQuestions serializes a question set the way the backend stores
// assistant payloads.
func EncodeQuestions(questions []api.Question) string {
	data, err := json.Marshal(questions)
	if err != nil {
		return ""
	}
	return string(data)
}

// ExpandStored flattens stored exchange records into display order. Each
// record contributes its user half first and its assistant half second;
// a blank half contributes nothing, so one record yields between zero
// and two bubbles. Record order is preserved.
func ExpandStored(records []api.StoredMessage) []DisplayMessage {
	messages := make([]DisplayMessage, 0, len(records)*2)
	for _, rec := range records {
		if rec.UserText != "" {
			messages = append(messages, NewUserMessage(rec.UserText))
		}
		if rec.AssistantText == "" {
			continue
		}
		if questions, text := DecodeAssistantText(rec.AssistantText); questions != nil {
			messages = append(messages, NewAssistantQuestions(questions))
		} else {
			messages = append(messages, NewAssistantText(text))
		}
	}
	return messages
}
