// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the minimum width we'll use for wrapping
	MinTerminalWidth = 40
)

// terminalFD returns the file descriptor behind w when w is a terminal.
func terminalFD(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// isTerminal reports whether w writes to a terminal.
func isTerminal(w io.Writer) bool {
	_, ok := terminalFD(w)
	return ok
}

// colorsEnabled reports whether styled output should be written to w.
// NO_COLOR (https://no-color.org/) disables styling even on a terminal.
func colorsEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(w)
}

// terminalWidth returns the width of the terminal behind w, or
// DefaultTerminalWidth when it cannot be determined.
func terminalWidth(w io.Writer) int {
	fd, ok := terminalFD(w)
	if !ok {
		return DefaultTerminalWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	return width
}

// clearScreen clears the terminal behind w. Non-terminals are left alone.
func clearScreen(w io.Writer) {
	if !isTerminal(w) {
		return
	}
	termenv.NewOutput(w).ClearScreen()
}
