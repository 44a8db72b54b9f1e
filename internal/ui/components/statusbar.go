// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/memdeck/internal/session"
	"github.com/jeranaias/memdeck/internal/ui/styles"
	"github.com/jeranaias/memdeck/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar is the bottom line: busy state, backend URL, session and
// shortcuts.
type StatusBar struct {
	BackendURL    string
	SessionID     string
	Busy          bool
	SpinnerView   string // spinner frame shown while busy
	Width         int
	ShowShortcuts bool

	theme *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// View renders the status bar, dropping sections that do not fit.
func (s *StatusBar) View() string {
	t := s.theme

	var state string
	if s.Busy {
		state = t.StatusBusy.Render(strings.TrimSpace(s.SpinnerView + " Working"))
	} else {
		state = t.StatusReady.Render(styles.StatusIndicators.Success + " Ready")
	}

	sess := t.StatusKey.Render("session ") + t.StatusValue.Render(session.ShortID(s.SessionID))

	var shortcuts string
	if s.ShowShortcuts && s.Width >= 100 {
		shortcuts = t.ShortcutKey.Render("Tab") + t.ShortcutDesc.Render(" complete  ") +
			t.ShortcutKey.Render("Esc") + t.ShortcutDesc.Render(" close  ") +
			t.ShortcutKey.Render("C-c") + t.ShortcutDesc.Render(" quit")
	}

	sep := t.StatusKey.Render("  |  ")
	fixed := lipgloss.Width(state) + lipgloss.Width(sep)*2 + lipgloss.Width(sess) + 2
	if shortcuts != "" {
		fixed += lipgloss.Width(sep) + lipgloss.Width(shortcuts)
	}

	urlRoom := s.Width - fixed
	var parts []string
	parts = append(parts, state)
	if urlRoom >= 12 {
		parts = append(parts, t.StatusValue.Render(util.TruncateWidth(s.BackendURL, urlRoom)))
	}
	if s.Width >= 40 {
		parts = append(parts, sess)
	}
	if shortcuts != "" {
		parts = append(parts, shortcuts)
	}

	line := strings.Join(parts, sep)
	return t.StatusBar.Width(s.Width).Render(line)
}
