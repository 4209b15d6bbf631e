// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package bank provides a local SQLite mirror of generated questions.
//
// The backend stores every generated question server-side; the bank
// keeps a copy on disk so question sets survive offline and can be
// listed or exported without a network round trip. Writes are
// idempotent: re-saving an already stored question is a no-op.
package bank
