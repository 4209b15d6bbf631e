// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the quizcards application.
//
// This package contains common helper functions used throughout the
// application for rune-safe string manipulation and terminal-width-aware
// text layout.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth: display-width truncation (CJK aware)
//   - WrapWidth: display-width word wrapping
//
// # Usage
//
//	// Truncate long chat summaries safely for the sidebar
//	display := util.TruncateRunes(summary, 28)
//
//	// Wrap question text to the card width
//	lines := util.WrapWidth(question, cardWidth)
package util
