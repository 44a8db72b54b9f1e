// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the in-memory chat session shown by the console.
//
// A session is the ordered list of messages exchanged since startup or the
// last /clear. Sessions are not persisted; clearing starts a fresh session
// with a new ID, which is also the session_id sent with chat requests.
//
// # Key Types
//
//   - Store: Thread-safe holder of the current session
//   - Session: Snapshot of a session's ID, start time and messages
//   - Message: One user input or backend reply
//
// # Usage
//
//	store := session.NewStore()
//	store.AddMessage(session.RoleUser, "what changed in the deploy runbook?")
//	snap := store.CurrentSession()
//	store.ClearSession()
package session
