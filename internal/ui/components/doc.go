// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the
// quizcards TUI: the header bar, the chat sidebar, message bubbles,
// question cards, spinners, and toast notifications.
//
// Components are plain view helpers where possible; only the stateful
// ones (Spinner, ToastManager) participate in the Bubble Tea update
// loop.
package components
