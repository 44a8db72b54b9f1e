// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/memdeck/internal/ui/components"
	"github.com/jeranaias/memdeck/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Starting memdeck..."
	}

	popup := m.renderPopup()

	vp := m.viewport
	if popup != "" {
		if h := vp.Height - lipgloss.Height(popup); h > 0 {
			vp.Height = h
		}
	}

	parts := []string{m.renderHeader(), vp.View()}
	if popup != "" {
		parts = append(parts, popup)
	}
	parts = append(parts, m.renderInput(), m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	brand := m.theme.HeaderBrand.Render("memdeck")
	url := m.backendURL()
	room := m.width - lipgloss.Width(brand) - 3
	if room < 8 {
		return brand
	}
	return brand + "  " + m.theme.HeaderURL.Render(util.TruncateWidth(url, room))
}

func (m Model) backendURL() string {
	if b := m.interp.Env().Backend; b != nil {
		return b.BaseURL()
	}
	return ""
}

func (m Model) renderPopup() string {
	if !m.suggestions.Active() {
		return ""
	}
	m.popup.Candidates = m.suggestions.Candidates
	m.popup.Selected = m.suggestions.Selected
	return m.popup.View()
}

func (m Model) renderInput() string {
	width := m.width - 2
	if width < 10 {
		width = 10
	}
	if m.busy {
		return m.theme.InputDisabled.Width(width).Render(m.spinner.View() + " waiting for the backend...")
	}
	return m.theme.InputContainer.Width(width).Render(m.input.View())
}

func (m Model) renderStatusBar() string {
	env := m.interp.Env()
	m.statusBar.BackendURL = m.backendURL()
	m.statusBar.SessionID = env.Session.SessionID()
	m.statusBar.Busy = m.busy
	m.statusBar.SpinnerView = m.spinner.View()
	return m.statusBar.View()
}

// renderTranscript joins every rendered entry.
func (m Model) renderTranscript() string {
	if len(m.entries) == 0 {
		if m.notice == "" {
			return ""
		}
		return m.markdown.Render(m.notice)
	}
	blocks := make([]string, len(m.entries))
	for i, e := range m.entries {
		blocks[i] = e.rendered
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderEntry(e entry) string {
	out := components.RenderResult(m.theme, m.markdown, e.result)
	if e.input == "" {
		return out
	}
	return components.RenderInput(m.theme, e.input) + "\n" + out
}
