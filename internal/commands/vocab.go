// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "strings"

// Vocabulary maps a command name to its ordered sub-actions. The table is
// declared statically and shared by suggestions and handler validation.
type Vocabulary map[string][]string

// DefaultVocabulary returns the sub-action table for the built-in commands.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		"memory":     {"search", "store", "list", "get", "delete", "stats", "health"},
		"checkpoint": {"list", "get", "delete", "stats"},
		"document":   {"search", "list", "get", "delete"},
	}
}

// Actions returns the sub-actions declared for command, in order.
func (v Vocabulary) Actions(command string) []string {
	return v[command]
}

// Has reports whether command declares sub-actions.
func (v Vocabulary) Has(command string) bool {
	return len(v[command]) > 0
}

// Valid reports whether action is a declared sub-action of command.
func (v Vocabulary) Valid(command, action string) bool {
	for _, a := range v[command] {
		if a == action {
			return true
		}
	}
	return false
}

// List renders the sub-actions as a comma-separated list.
func (v Vocabulary) List(command string) string {
	return strings.Join(v[command], ", ")
}
