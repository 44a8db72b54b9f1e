// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command interpreter for memdeck.
//
// This package parses console input, dispatches slash commands to their
// handlers, computes live completion suggestions, and records submissions in
// the input history.
//
// # Key Types
//
//   - Registry: Immutable table of commands, built once at startup
//   - Vocabulary: Static sub-action table (memory, checkpoint, document)
//   - Dispatcher: Resolves parsed input and runs the handler
//   - Interpreter: Single-flight front door used by the TUI, exec and repl
//   - SuggestionState: Completion popup state driven by Suggest
//   - Result: Uniform handler output with an optional ClearSession action
//
// # Built-in Commands
//
//   - /connect, /status: Backend connection
//   - /chat, /query, /action, /incident, /clear: Agent conversation
//   - /memory, /checkpoint, /document: Knowledge stores
//   - /help, /history, /config, /version: Console
//
// # Usage
//
// Submit input:
//
//	interp := commands.NewInterpreter(env)
//	res, ok := interp.Submit(ctx, "/memory search deploy window")
//	if !ok {
//	    // another command is still running
//	}
//	if res.Action == commands.ActionClearSession {
//	    transcript.Reset()
//	}
//
// Get suggestions:
//
//	commands.Suggest(registry, vocab, "/mem")
//	// Returns ["/memory"]
package commands
