// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
)

// Prefix marks input as a command rather than chat text.
const Prefix = "/"

// =============================================================================
// PARSED INPUT
// =============================================================================

// InputKind distinguishes chat text from slash commands.
type InputKind int

const (
	// InputCommand is a slash command (or empty input).
	InputCommand InputKind = iota
	// InputChat is free text sent to the agent as a chat message.
	InputChat
)

// String returns the kind name.
func (k InputKind) String() string {
	if k == InputChat {
		return "chat"
	}
	return "command"
}

// ParsedInput is the result of parsing one line of input.
type ParsedInput struct {
	Kind InputKind

	// Name is the command name without the prefix ("memory"). Empty for chat
	// input, empty input, and a bare prefix.
	Name string

	// Args are the positional arguments. Chat input carries the whole text as
	// its single argument.
	Args []string
}

// =============================================================================
// PARSER
// =============================================================================

// Parse parses one line of input. It never fails: any string maps to some
// ParsedInput. Empty input yields a command with an empty name, which the
// dispatcher reports as unknown.
func Parse(input string) ParsedInput {
	input = strings.TrimSpace(input)

	if input == "" {
		return ParsedInput{Kind: InputCommand}
	}

	if !IsCommand(input) {
		return ParsedInput{Kind: InputChat, Args: []string{input}}
	}

	parts := strings.Fields(input)
	parsed := ParsedInput{
		Kind: InputCommand,
		Name: strings.TrimPrefix(parts[0], Prefix),
	}
	if len(parts) > 1 {
		parsed.Args = parts[1:]
	}
	return parsed
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// IsCommand returns true if the input appears to be a command.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), Prefix)
}

// inputTokens splits input on runs of whitespace. Input ending in whitespace
// gets a trailing empty token: the user has finished one word and started
// the next.
func inputTokens(input string) []string {
	tokens := strings.Fields(input)
	if len(tokens) > 0 && strings.TrimRight(input, " \t\r\n") != input {
		tokens = append(tokens, "")
	}
	return tokens
}

// takeFlag removes "--name value" from args and returns the value.
func takeFlag(args []string, name string) (rest []string, value string, found bool) {
	rest = make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		if args[i] == name && i+1 < len(args) && !found {
			value = args[i+1]
			found = true
			i++
			continue
		}
		rest = append(rest, args[i])
	}
	return rest, value, found
}
