// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"
)

// =============================================================================
// RESULT
// =============================================================================

// ResultKind classifies a command result for display.
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultError
	ResultInfo
	ResultWarning
)

// String returns the lowercase kind name.
func (k ResultKind) String() string {
	switch k {
	case ResultError:
		return "error"
	case ResultInfo:
		return "info"
	case ResultWarning:
		return "warning"
	default:
		return "success"
	}
}

// Action is a side effect the caller must apply before showing Content.
type Action int

const (
	// ActionNone means Content should be displayed as is.
	ActionNone Action = iota
	// ActionClearSession means the caller discards the session view instead
	// of displaying Content as a message.
	ActionClearSession
)

// Result is the uniform output of every dispatch.
type Result struct {
	Kind    ResultKind
	Content string // markdown
	Action  Action
}

// Success returns a success result.
func Success(content string) Result {
	return Result{Kind: ResultSuccess, Content: content}
}

// Info returns an informational result.
func Info(content string) Result {
	return Result{Kind: ResultInfo, Content: content}
}

// Warning returns a warning result.
func Warning(content string) Result {
	return Result{Kind: ResultWarning, Content: content}
}

// Errorf returns an error result with formatted content.
func Errorf(format string, args ...any) Result {
	return Result{Kind: ResultError, Content: fmt.Sprintf(format, args...)}
}

// IsError reports whether the result is an error.
func (r Result) IsError() bool {
	return r.Kind == ResultError
}

// =============================================================================
// ERRORS
// =============================================================================

// UnknownCommandMessage is the content of the result for an unregistered name.
func UnknownCommandMessage(name string) string {
	return "Unknown command: " + Prefix + name + ". Type /help to see available commands."
}

// UsageError reports a malformed invocation. The dispatcher renders it as a
// failure followed by the command's usage.
type UsageError struct {
	Usage   string
	Message string
}

func (e *UsageError) Error() string {
	if e.Message == "" {
		return "usage: " + e.Usage
	}
	return e.Message + " (usage: " + e.Usage + ")"
}

// render formats the error for display.
func (e *UsageError) render() string {
	var b strings.Builder
	if e.Message != "" {
		b.WriteString(e.Message)
		b.WriteString("\n\n")
	}
	b.WriteString("**Usage:** `")
	b.WriteString(e.Usage)
	b.WriteString("`")
	return b.String()
}

func usageErr(usage, format string, args ...any) error {
	return &UsageError{Usage: usage, Message: fmt.Sprintf(format, args...)}
}
