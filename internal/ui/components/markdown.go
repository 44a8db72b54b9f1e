// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERER
// =============================================================================

// MarkdownRenderer renders result content with glamour. Rendering falls
// back to the raw markdown when glamour fails.
type MarkdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer for a glamour standard style name
// and word-wrap width.
func NewMarkdownRenderer(style string, width int) *MarkdownRenderer {
	r := &MarkdownRenderer{style: style}
	r.SetWidth(width)
	return r
}

// SetWidth rebuilds the renderer for a new wrap width.
func (r *MarkdownRenderer) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	if width == r.width && r.renderer != nil {
		return
	}
	r.width = width

	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r.renderer = nil
		return
	}
	r.renderer = tr
}

// Width returns the current wrap width.
func (r *MarkdownRenderer) Width() int {
	return r.width
}

// Render returns the styled form of md.
func (r *MarkdownRenderer) Render(md string) string {
	if r == nil || r.renderer == nil {
		return md
	}
	out, err := r.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
