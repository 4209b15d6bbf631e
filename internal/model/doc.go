// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the display-side data structures for the chat
// transcript.
//
// The backend stores each exchange as a single record pairing the user's
// prompt with the serialized assistant payload. The UI renders a flat list
// of messages instead, so this package owns the translation: a stored
// record expands into zero, one, or two display messages, and an assistant
// payload decodes either into structured questions or, when it is not
// valid question JSON, into an opaque text bubble.
package model
