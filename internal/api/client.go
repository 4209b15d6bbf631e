// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the quiz-generation backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Status  int
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is makes every unauthorized ClientError match ErrUnauthorized, so
// callers can use errors.Is regardless of which endpoint produced it.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeUnauthorized
	ErrTypeBackend
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	// ErrUnauthorized means the backend rejected the session token.
	// The controller reacts by forcing logout.
	ErrUnauthorized = &ClientError{Type: ErrTypeUnauthorized, Message: "session token rejected by backend"}

	// ErrTimeout means the request exceeded the client timeout.
	ErrTimeout = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// The backend phrases that accompany a rejected token on a 401.
// Matched verbatim; any other 401 propagates as a backend error.
const (
	tokenInvalidMsg = "El token no es válido"
	tokenMissingMsg = "No se proporcionó un token, autorización denegada"
)

// SentinelID is the reserved record id the backend uses in-band on list
// endpoints to signal a rejected token. It is never a real record.
const SentinelID = "0"

// authHeader carries the session token on authenticated calls.
const authHeader = "x-auth-token"

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend API base URL, including the /api prefix.
	BaseURL string

	// Timeout for requests (default: 30s). Generation can be slow, so
	// this is deliberately generous; there is no retry on top of it.
	Timeout time.Duration
}

// DefaultBaseURL is the hosted backend.
const DefaultBaseURL = "https://tfm-backend-topaz.vercel.app/api"

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: DefaultBaseURL,
		Timeout: 30 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the quiz-generation backend.
//
// The Client holds no per-session state: the token is a parameter of
// every authenticated call, so one Client can serve concurrent callers.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// do issues one request and decodes the response into out (when non-nil).
// A non-2xx status with the known invalid-token phrases becomes
// ErrUnauthorized; any other non-2xx becomes a backend error carrying
// the payload's error string.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reqBody)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(authHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &ClientError{Type: ErrTypeConnection, Message: "backend unreachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			if resp.StatusCode == http.StatusUnauthorized &&
				(apiErr.Error == tokenInvalidMsg || apiErr.Error == tokenMissingMsg) {
				return ErrUnauthorized
			}
			return &ClientError{Type: ErrTypeBackend, Message: apiErr.Error, Status: resp.StatusCode}
		}
		return &ClientError{
			Type:    ErrTypeBackend,
			Message: "request failed: " + resp.Status,
			Status:  resp.StatusCode,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// =============================================================================
// AUTHENTICATION
// =============================================================================

// Login posts credentials and returns the authenticated session.
// Errors propagate unchanged; there is no sentinel handling here.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates an account and returns the authenticated session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/auth/register", "", registerRequest{Name: name, Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// =============================================================================
// QUESTION GENERATION
// =============================================================================

// GenerateQuestions posts the source text, requested count and chat id,
// and returns the generated question sequence. A rejected token yields
// ErrUnauthorized rather than a fabricated placeholder question.
func (c *Client) GenerateQuestions(ctx context.Context, token, text string, count int, chatID string) ([]Question, error) {
	var questions []Question
	req := generateRequest{Text: text, NumQuestions: count, ChatID: chatID}
	if err := c.do(ctx, http.MethodPost, "/questions/generate", token, req, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// SaveQuestions persists a question set to the user's bank.
func (c *Client) SaveQuestions(ctx context.Context, token string, questions []Question) error {
	return c.do(ctx, http.MethodPost, "/questions/save", token, saveQuestionsRequest{Questions: questions}, nil)
}

// GetQuestionsByUser fetches every question the user has banked.
func (c *Client) GetQuestionsByUser(ctx context.Context, token, userID string) ([]Question, error) {
	var questions []Question
	if err := c.do(ctx, http.MethodGet, "/questions/user/"+userID, token, nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// =============================================================================
// CHATS
// =============================================================================

// CreateChat creates a new conversation thread and returns its id.
// A rejected token yields ErrUnauthorized instead of the "0" id the
// backend contract reserves for that case.
func (c *Client) CreateChat(ctx context.Context, token, userID string) (string, error) {
	var resp createChatResponse
	if err := c.do(ctx, http.MethodPost, "/chats/create", token, createChatRequest{UserID: userID}, &resp); err != nil {
		return "", err
	}
	if resp.ChatID == SentinelID {
		return "", ErrUnauthorized
	}
	return resp.ChatID, nil
}

// GetChats fetches the user's chat list, oldest first as sent by the
// backend. A leading reserved "0" record means the token was rejected
// and yields ErrUnauthorized; it is never returned as data.
func (c *Client) GetChats(ctx context.Context, token, userID string) ([]Chat, error) {
	var chats []Chat
	if err := c.do(ctx, http.MethodGet, "/chats/user/"+userID, token, nil, &chats); err != nil {
		return nil, err
	}
	if len(chats) > 0 && chats[0].ID == SentinelID {
		return nil, ErrUnauthorized
	}
	return chats, nil
}

// =============================================================================
// MESSAGES
// =============================================================================

// GetMessages fetches the stored messages for one chat.
//
// The result is regrouped by chat id, preserving first-seen chat-id
// ordering and the original per-chat order. When the backend already
// returns a single chat's messages this is a no-op reshape, but it is
// defensive against interleavings. A leading reserved "0" user id means
// the token was rejected and yields ErrUnauthorized.
func (c *Client) GetMessages(ctx context.Context, token, userID, chatID string) ([]StoredMessage, error) {
	var messages []StoredMessage
	if err := c.do(ctx, http.MethodGet, "/messages/user/"+userID+"/chat/"+chatID, token, nil, &messages); err != nil {
		return nil, err
	}
	if len(messages) > 0 && messages[0].UserID == SentinelID {
		return nil, ErrUnauthorized
	}
	return regroupByChat(messages), nil
}

// SaveMessage persists one exchange: the user's text and the serialized
// assistant result.
func (c *Client) SaveMessage(ctx context.Context, token string, msg StoredMessage) error {
	req := saveMessageRequest{
		ChatID:        msg.ChatID,
		UserID:        msg.UserID,
		UserText:      msg.UserText,
		AssistantText: msg.AssistantText,
	}
	return c.do(ctx, http.MethodPost, "/messages/save", token, req, nil)
}

// regroupByChat flattens messages grouped by chat id, keeping the order
// chat ids first appear and the original order within each chat.
func regroupByChat(messages []StoredMessage) []StoredMessage {
	if len(messages) < 2 {
		return messages
	}

	grouped := make(map[string][]StoredMessage)
	var order []string
	for _, msg := range messages {
		if _, seen := grouped[msg.ChatID]; !seen {
			order = append(order, msg.ChatID)
		}
		grouped[msg.ChatID] = append(grouped[msg.ChatID], msg)
	}

	result := make([]StoredMessage, 0, len(messages))
	for _, id := range order {
		result = append(result, grouped[id]...)
	}
	return result
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsUnauthorized reports whether err means the session token was rejected.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsTimeout reports whether err is a client timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
