// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/memdeck/internal/ui/styles"
	"github.com/jeranaias/memdeck/internal/util"
)

// =============================================================================
// SUGGESTION POPUP COMPONENT
// =============================================================================

// SuggestionPopup displays completion candidates above the input.
type SuggestionPopup struct {
	Candidates []string
	Selected   int
	MaxVisible int
	Width      int

	// Describe returns the help text for a candidate; nil shows none.
	Describe func(candidate string) string

	theme *styles.Theme
}

// NewSuggestionPopup creates a popup showing up to eight rows.
func NewSuggestionPopup(theme *styles.Theme) *SuggestionPopup {
	return &SuggestionPopup{
		MaxVisible: 8,
		Width:      60,
		theme:      theme,
	}
}

// visibleRange returns the window of rows that keeps Selected on screen.
func (p *SuggestionPopup) visibleRange() (start, end int) {
	n := len(p.Candidates)
	max := p.MaxVisible
	if max <= 0 || max > n {
		max = n
	}
	start = 0
	if p.Selected >= max {
		start = p.Selected - max + 1
	}
	return start, start + max
}

// View renders the popup. An empty candidate list renders nothing.
func (p *SuggestionPopup) View() string {
	if len(p.Candidates) == 0 {
		return ""
	}

	inner := p.Width - 4 // border and padding
	if inner < 10 {
		inner = 10
	}

	nameWidth := 0
	for _, c := range p.Candidates {
		if w := util.StringWidth(c); w > nameWidth {
			nameWidth = w
		}
	}
	if nameWidth > inner {
		nameWidth = inner
	}

	start, end := p.visibleRange()
	rows := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		rows = append(rows, p.renderRow(i, nameWidth, inner))
	}
	if end-start < len(p.Candidates) {
		rows = append(rows, p.theme.SuggestionDesc.Render(
			fmt.Sprintf("%d/%d", p.Selected+1, len(p.Candidates))))
	}

	return p.theme.SuggestionPopup.Render(strings.Join(rows, "\n"))
}

func (p *SuggestionPopup) renderRow(i, nameWidth, inner int) string {
	cand := p.Candidates[i]
	name := util.PadWidth(util.TruncateWidth(cand, nameWidth), nameWidth)

	desc := ""
	if p.Describe != nil {
		if room := inner - nameWidth - 4; room > 3 {
			desc = util.TruncateWidth(p.Describe(cand), room)
		}
	}

	if i == p.Selected {
		line := "> " + name
		if desc != "" {
			line += "  " + desc
		}
		return p.theme.SuggestionSelected.Render(line)
	}

	line := p.theme.SuggestionItem.Render("  " + name)
	if desc != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Top, line, p.theme.SuggestionDesc.Render("  "+desc))
	}
	return line
}
