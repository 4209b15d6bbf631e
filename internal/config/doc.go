// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// quizcards.
//
// Configuration sources, in order of precedence:
//   - QUIZCARDS_* environment variables
//   - ~/.quizcards/.env (loaded via godotenv, never overrides real env)
//   - ~/.quizcards/config.toml
//   - Built-in defaults
//
// The config file is created on first save with 0600 permissions since
// it may hold a cached session token.
package config
