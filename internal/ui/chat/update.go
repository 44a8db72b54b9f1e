// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/memdeck/internal/commands"
	"github.com/jeranaias/memdeck/internal/ui/components"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case resultMsg:
		return m.handleResult(msg)

	case ConfigReloadedMsg:
		if m.busy {
			m.pendingConfig = &msg
			return m, nil
		}
		m.applyConfig(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// KEYBOARD
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	// Input is disabled while a submission runs.
	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.suggestions.Active() {
			m.suggestions.MoveUp()
			return m, nil
		}
		if entry, ok := m.interp.History().Previous(); ok {
			m.setInput(entry)
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.suggestions.Active() {
			m.suggestions.MoveDown()
			return m, nil
		}
		m.setInput(m.interp.History().Next())
		return m, nil

	case key.Matches(msg, m.keys.Accept):
		if m.suggestions.Active() {
			m.acceptSuggestion()
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.suggestions.Active() {
			m.acceptSuggestion()
			return m, nil
		}
		return m.submit()

	case key.Matches(msg, m.keys.Close):
		m.suggestions.Close()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.suggestions.Update(after)
	}
	return m, cmd
}

// setInput replaces the input line from history and hides suggestions, so
// a recalled command does not capture the arrow keys.
func (m *Model) setInput(value string) {
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.suggestions.Close()
}

func (m *Model) acceptSuggestion() {
	newInput, _ := m.suggestions.Accept()
	if newInput == "" {
		return
	}
	m.input.SetValue(newInput)
	m.input.CursorEnd()
}

// =============================================================================
// SUBMISSION
// =============================================================================

func (m Model) submit() (tea.Model, tea.Cmd) {
	raw := m.input.Value()
	if strings.TrimSpace(raw) == "" {
		return m, nil
	}

	m.busy = true
	m.input.Reset()
	m.input.Blur()
	m.suggestions.Close()
	m.notice = ""

	return m, tea.Batch(m.spinner.Tick, submitCmd(m.ctx, m.interp, raw))
}

// submitCmd runs the interpreter off the update loop.
func submitCmd(ctx context.Context, interp *commands.Interpreter, raw string) tea.Cmd {
	return func() tea.Msg {
		res, accepted := interp.Submit(ctx, raw)
		return resultMsg{input: strings.TrimSpace(raw), result: res, accepted: accepted}
	}
}

func (m Model) handleResult(msg resultMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.input.Focus()

	switch {
	case !msg.accepted:
		m.appendEntry(msg.input, commands.Warning("Another command is still running."))
	case msg.result.Action == commands.ActionClearSession:
		m.entries = nil
	default:
		m.appendEntry(msg.input, msg.result)
	}

	if m.pendingConfig != nil {
		pending := *m.pendingConfig
		m.pendingConfig = nil
		m.applyConfig(pending)
	}

	m.refreshViewport()
	return m, textinput.Blink
}

func (m *Model) appendEntry(input string, res commands.Result) {
	e := entry{input: input, result: res}
	e.rendered = m.renderEntry(e)
	m.entries = append(m.entries, e)
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

// applyConfig adopts a reloaded config. An invalid file leaves the running
// config untouched.
func (m *Model) applyConfig(msg ConfigReloadedMsg) {
	env := m.interp.Env()
	if msg.Err != nil {
		env.Logger.Warn("config reload failed", zap.Error(msg.Err))
		m.appendEntry("", commands.Warning("Config reload failed: "+msg.Err.Error()))
		m.refreshViewport()
		return
	}
	if msg.Config == nil || *msg.Config == *env.Config {
		return
	}

	if env.Backend != nil && msg.Config.Backend.URL != env.Backend.BaseURL() {
		if err := env.Backend.SetBaseURL(msg.Config.Backend.URL); err != nil {
			m.appendEntry("", commands.Warning("Config reload: "+err.Error()))
			m.refreshViewport()
			return
		}
	}

	styleChanged := msg.Config.UI.GlamourStyle != env.Config.UI.GlamourStyle
	*env.Config = *msg.Config
	env.Logger.Info("config reloaded", zap.String("backend", m.backendURL()))

	m.popup.MaxVisible = env.Config.UI.MaxSuggestions
	if styleChanged {
		m.markdown = components.NewMarkdownRenderer(m.theme.GlamourStyle(env.Config.UI.GlamourStyle), m.markdown.Width())
		m.rerender()
	}
	m.appendEntry("", commands.Info("Configuration reloaded. Backend: "+m.backendURL()))
	m.refreshViewport()
}

// =============================================================================
// LAYOUT
// =============================================================================

// Fixed rows: header, input box (3 with border), status bar.
const chromeHeight = 5

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	vpHeight := height - chromeHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}

	m.input.Width = width - 6
	m.popup.Width = min(width-2, 72)
	m.statusBar.Width = width

	if m.markdown.Width() != width-2 {
		m.markdown.SetWidth(width - 2)
		m.rerender()
	}
	m.refreshViewport()
}

func (m *Model) rerender() {
	for i := range m.entries {
		m.entries[i].rendered = m.renderEntry(m.entries[i])
	}
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}
