// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/memdeck/internal/commands"
	"github.com/jeranaias/memdeck/internal/ui/styles"
)

// =============================================================================
// SUGGESTION POPUP TESTS
// =============================================================================

func TestSuggestionPopup_EmptyRendersNothing(t *testing.T) {
	p := NewSuggestionPopup(styles.NewTheme("dark"))
	assert.Equal(t, "", p.View())
}

func TestSuggestionPopup_ShowsCandidatesAndDescriptions(t *testing.T) {
	p := NewSuggestionPopup(styles.NewTheme("dark"))
	p.Candidates = []string{"/chat", "/checkpoint"}
	p.Selected = 1
	p.Describe = func(c string) string { return "about " + c[1:] }

	view := p.View()
	assert.Contains(t, view, "/chat")
	assert.Contains(t, view, "> /checkpoint")
	assert.Contains(t, view, "about chat")
	assert.NotContains(t, view, "/2", "no position footer when everything fits")
}

func TestSuggestionPopup_ScrollsToSelection(t *testing.T) {
	p := NewSuggestionPopup(styles.NewTheme("dark"))
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		p.Candidates = append(p.Candidates, "/"+name)
	}
	p.MaxVisible = 2
	p.Selected = 4

	start, end := p.visibleRange()
	assert.Equal(t, 3, start)
	assert.Equal(t, 5, end)

	view := p.View()
	assert.Contains(t, view, "> /e")
	assert.NotContains(t, view, "/a")
	assert.Contains(t, view, "5/5")
}

func TestSuggestionPopup_RespectsWidth(t *testing.T) {
	p := NewSuggestionPopup(styles.NewTheme("dark"))
	p.Candidates = []string{"/memory"}
	p.Describe = func(string) string { return strings.Repeat("long description ", 20) }
	p.Width = 40

	for _, line := range strings.Split(p.View(), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusBar_View(t *testing.T) {
	s := NewStatusBar(styles.NewTheme("dark"))
	s.BackendURL = "http://localhost:8000"
	s.SessionID = "0123456789abcdef"
	s.Width = 120

	view := s.View()
	assert.Contains(t, view, "Ready")
	assert.Contains(t, view, "http://localhost:8000")
	assert.Contains(t, view, "01234567")
	assert.NotContains(t, view, "89abcdef")
	assert.Contains(t, view, "Tab")

	s.Busy = true
	s.SpinnerView = "*"
	assert.Contains(t, s.View(), "Working")
}

func TestStatusBar_NarrowDropsSections(t *testing.T) {
	s := NewStatusBar(styles.NewTheme("dark"))
	s.BackendURL = "http://a-very-long-backend-host.example.internal:8000"
	s.SessionID = "0123456789abcdef"
	s.Width = 30

	view := s.View()
	assert.Contains(t, view, "Ready")
	assert.NotContains(t, view, "Tab")
	assert.NotContains(t, view, "session")
}

// =============================================================================
// RESULT RENDERING TESTS
// =============================================================================

func TestRenderResult_Labels(t *testing.T) {
	theme := styles.NewTheme("dark")
	md := NewMarkdownRenderer("notty", 80)

	tests := []struct {
		kind commands.ResultKind
		want string
	}{
		{commands.ResultSuccess, "[OK]"},
		{commands.ResultError, "[X] Error"},
		{commands.ResultWarning, "[!] Warning"},
		{commands.ResultInfo, "[i] Info"},
	}
	for _, tc := range tests {
		out := RenderResult(theme, md, commands.Result{Kind: tc.kind, Content: "body text"})
		assert.Contains(t, out, tc.want)
		assert.Contains(t, out, "body text")
	}
}

func TestMarkdownRenderer(t *testing.T) {
	md := NewMarkdownRenderer("notty", 10)
	assert.Equal(t, 20, md.Width(), "width is clamped")

	out := md.Render("## Heading\n\nsome **bold** text")
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "bold")

	var nilRenderer *MarkdownRenderer
	assert.Equal(t, "raw", nilRenderer.Render("raw"))
}
