// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the quizcards
// TUI.
//
// All colors use Lip Gloss AdaptiveColor so the same palette works on
// light and dark terminals. The Theme type bundles the configured
// lipgloss styles for each part of the interface; views never build
// styles inline.
package styles
