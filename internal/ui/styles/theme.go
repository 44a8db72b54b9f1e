// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// Header
	HeaderBrand lipgloss.Style
	HeaderURL   lipgloss.Style

	// Transcript
	UserPrompt lipgloss.Style
	UserText   lipgloss.Style
	Success    lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Info       lipgloss.Style
	Muted      lipgloss.Style

	// Input area
	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	InputDisabled  lipgloss.Style

	// Suggestion popup
	SuggestionPopup    lipgloss.Style
	SuggestionItem     lipgloss.Style
	SuggestionSelected lipgloss.Style
	SuggestionDesc     lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	StatusKey    lipgloss.Style
	StatusValue  lipgloss.Style
	StatusBusy   lipgloss.Style
	StatusReady  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	Spinner lipgloss.Style
}

// NewTheme creates a theme for mode ("dark", "light" or "auto"). Auto
// queries the terminal background.
func NewTheme(mode string) *Theme {
	var isDark bool
	switch strings.ToLower(mode) {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.HeaderURL = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.UserPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.UserText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Success = lipgloss.NewStyle().Bold(true).Foreground(Emerald)
	t.Error = lipgloss.NewStyle().Bold(true).Foreground(Rose)
	t.Warning = lipgloss.NewStyle().Bold(true).Foreground(Amber)
	t.Info = lipgloss.NewStyle().Bold(true).Foreground(Blue)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.InputDisabled = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Foreground(TextMuted).
		Padding(0, 1)

	t.SuggestionPopup = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SuggestionItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.SuggestionSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SelectionBg)

	t.SuggestionDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.StatusKey = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(SurfaceDim)

	t.StatusValue = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SurfaceDim)

	t.StatusBusy = lipgloss.NewStyle().
		Bold(true).
		Foreground(Amber).
		Background(SurfaceDim)

	t.StatusReady = lipgloss.NewStyle().
		Bold(true).
		Foreground(Emerald).
		Background(SurfaceDim)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(SurfaceDim)

	t.Spinner = lipgloss.NewStyle().Foreground(Purple)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // >= 100 columns
)

// GlamourStyle resolves the markdown style name for a ui.glamour_style
// setting. "auto" (or empty) follows the theme background.
func (t *Theme) GlamourStyle(setting string) string {
	switch strings.ToLower(setting) {
	case "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night":
		return strings.ToLower(setting)
	}
	if t.IsDark {
		return "dark"
	}
	return "light"
}
