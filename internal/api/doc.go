// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the quiz-generation backend.
//
// The client is the single point of outbound communication. Every
// authenticated call takes the session token explicitly; there is no
// shared mutable header state, so a Client is safe for concurrent use.
//
// Session invalidation is surfaced as the typed sentinel ErrUnauthorized.
// The backend signals a rejected token two different ways: a 401 response
// whose error payload is one of two known phrases, and, on list
// endpoints, reserved records carrying the id "0". The client normalizes
// both into ErrUnauthorized so callers dispatch on a single error value
// instead of comparing magic ids.
//
// # Usage
//
//	client := api.NewClient()
//	user, err := client.Login(ctx, email, password)
//	if err != nil { ... }
//
//	chats, err := client.GetChats(ctx, user.Token, user.ID)
//	if errors.Is(err, api.ErrUnauthorized) {
//	    // force logout
//	}
package api
