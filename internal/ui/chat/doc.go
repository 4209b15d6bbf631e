// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main conversation view: the chat list
// sidebar, the question transcript, the prompt input and the slash
// command surface. It talks to the backend exclusively through
// internal/api and reports session expiry to the parent model via
// SessionExpiredMsg.
package chat
