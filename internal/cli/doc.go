// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI command surface: one-shot
// question generation (ask), local question bank management (bank) and
// the usual version/help plumbing. The default invocation with no
// command starts the TUI; that dispatch lives in main.
package cli
