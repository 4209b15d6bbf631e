// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides the login and registration view for the TUI.
//
// The view is a small Bubble Tea model gated in front of the chat view
// by the root model: until it emits a SuccessMsg carrying the
// authenticated user, nothing else renders. Ctrl+T switches between the
// login and registration forms.
package auth
