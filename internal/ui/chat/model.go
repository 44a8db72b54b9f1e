// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/memdeck/internal/commands"
	"github.com/jeranaias/memdeck/internal/config"
	"github.com/jeranaias/memdeck/internal/ui/components"
	"github.com/jeranaias/memdeck/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// resultMsg carries the outcome of one submission back to the update loop.
type resultMsg struct {
	input    string
	result   commands.Result
	accepted bool
}

// ConfigReloadedMsg is sent when the config file changes on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// entry is one submission and its result.
type entry struct {
	input    string
	result   commands.Result
	rendered string
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the console.
type Model struct {
	ctx    context.Context
	interp *commands.Interpreter

	// Styling
	theme    *styles.Theme
	markdown *components.MarkdownRenderer
	keys     KeyMap

	// Dimensions
	width  int
	height int
	ready  bool

	// UI Components
	viewport    viewport.Model
	input       textinput.Model
	spinner     spinner.Model
	popup       *components.SuggestionPopup
	statusBar   *components.StatusBar
	suggestions *commands.SuggestionState

	// Transcript
	entries []entry
	notice  string // welcome text shown until the first submission

	// Busy state
	busy          bool
	pendingConfig *ConfigReloadedMsg
}

// New creates the console model. ctx bounds every submission.
func New(ctx context.Context, interp *commands.Interpreter) Model {
	cfg := interp.Env().Config
	theme := styles.NewTheme(cfg.UI.Theme)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message, or / for commands..."
	ti.CharLimit = 4096
	ti.PromptStyle = theme.InputPrompt
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = theme.Spinner

	popup := components.NewSuggestionPopup(theme)
	popup.MaxVisible = cfg.UI.MaxSuggestions
	suggestions := interp.NewSuggestionState()
	popup.Describe = suggestions.Description

	return Model{
		ctx:         ctx,
		interp:      interp,
		theme:       theme,
		markdown:    components.NewMarkdownRenderer(theme.GlamourStyle(cfg.UI.GlamourStyle), 80),
		keys:        DefaultKeyMap(),
		input:       ti,
		spinner:     sp,
		popup:       popup,
		statusBar:   components.NewStatusBar(theme),
		suggestions: suggestions,
		notice:      "Type `/help` to see available commands. Text without a leading `/` is sent to the agent.",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Busy reports whether a submission is in flight.
func (m Model) Busy() bool {
	return m.busy
}

// Input returns the current input line.
func (m Model) Input() string {
	return m.input.Value()
}

// Suggestions returns the suggestion state.
func (m Model) Suggestions() *commands.SuggestionState {
	return m.suggestions
}
