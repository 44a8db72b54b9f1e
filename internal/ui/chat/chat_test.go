// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/memdeck/internal/commands"
	"github.com/jeranaias/memdeck/internal/config"
)

type stubBackend struct {
	mu  sync.Mutex
	url string
}

func (s *stubBackend) Do(ctx context.Context, method, path string, body any) (any, error) {
	return map[string]any{"message": "agent reply"}, nil
}

func (s *stubBackend) BaseURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

func (s *stubBackend) SetBaseURL(raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = raw
	return nil
}

func newTestModel(t *testing.T) (Model, *stubBackend) {
	t.Helper()
	backend := &stubBackend{url: "http://localhost:8000"}
	cfg := config.Default()
	cfg.UI.Theme = "dark"
	cfg.UI.GlamourStyle = "notty"
	interp := commands.NewInterpreter(&commands.Env{Backend: backend, Config: cfg})

	m := New(context.Background(), interp)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, backend
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(t *testing.T, m Model, kt tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: kt})
	return next.(Model), cmd
}

// drain runs cmd and any batched commands, returning the messages produced.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// submitAndWait presses Enter and feeds the submission result back.
func submitAndWait(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := press(t, m, tea.KeyEnter)
	require.True(t, m.Busy(), "enter should start a submission")
	for _, msg := range drain(cmd) {
		if res, ok := msg.(resultMsg); ok {
			return update(t, m, res)
		}
	}
	t.Fatal("submission produced no result")
	return m
}

// =============================================================================
// SUGGESTION KEYBOARD TESTS
// =============================================================================

func TestTypingShowsSuggestions(t *testing.T) {
	m, _ := newTestModel(t)

	m = typeText(t, m, "/mem")
	require.True(t, m.Suggestions().Active())
	assert.Equal(t, []string{"/memory"}, m.Suggestions().Candidates)
	assert.Contains(t, m.View(), "/memory")
}

func TestTabAcceptsAndKeepsSubActionsOpen(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "/mem")

	m, _ = press(t, m, tea.KeyTab)
	assert.Equal(t, "/memory ", m.Input())
	require.True(t, m.Suggestions().Active())
	assert.Len(t, m.Suggestions().Candidates, 7)

	m, _ = press(t, m, tea.KeyDown)
	m, _ = press(t, m, tea.KeyEnter)
	assert.Equal(t, "/memory store", m.Input())
	assert.False(t, m.Suggestions().Active())
	assert.False(t, m.Busy(), "enter on a visible list accepts instead of submitting")
}

func TestEscapeClosesWithoutChangingInput(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "/c")
	require.True(t, m.Suggestions().Active())

	m, _ = press(t, m, tea.KeyDown)
	m, _ = press(t, m, tea.KeyEsc)
	assert.False(t, m.Suggestions().Active())
	assert.Equal(t, "/c", m.Input())
}

// =============================================================================
// SUBMISSION TESTS
// =============================================================================

func TestSubmitRendersResult(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "hello agent")
	require.False(t, m.Suggestions().Active())

	m = submitAndWait(t, m)
	assert.False(t, m.Busy())
	assert.Equal(t, "", m.Input())
	require.Len(t, m.entries, 1)
	assert.Equal(t, "hello agent", m.entries[0].input)
	assert.Contains(t, m.entries[0].rendered, "agent reply")
	assert.Equal(t, []string{"hello agent"}, m.interp.History().Entries())
}

func TestBlankInputDoesNotSubmit(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "   ")

	m, cmd := press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.False(t, m.Busy())
}

func TestInputDisabledWhileBusy(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "hello")

	m, _ = press(t, m, tea.KeyEnter)
	require.True(t, m.Busy())

	m = typeText(t, m, "more")
	assert.Equal(t, "", m.Input(), "typing is ignored while busy")

	m, cmd := press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd, "no second submission while busy")
	assert.Contains(t, m.View(), "Working")
}

func TestUnknownCommandShowsError(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "/frobnicate")
	require.False(t, m.Suggestions().Active())

	m = submitAndWait(t, m)
	require.Len(t, m.entries, 1)
	assert.Equal(t, commands.ResultError, m.entries[0].result.Kind)
	assert.Contains(t, m.entries[0].rendered, "Unknown command: /frobnicate")
}

func TestClearResetsTranscript(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "hello")
	m = submitAndWait(t, m)
	require.Len(t, m.entries, 1)

	m = typeText(t, m, "/clear")
	m, _ = press(t, m, tea.KeyEsc)
	m = submitAndWait(t, m)
	assert.Empty(t, m.entries)
}

// =============================================================================
// HISTORY NAVIGATION TESTS
// =============================================================================

func TestHistoryNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	// Empty history leaves the input alone.
	m, _ = press(t, m, tea.KeyUp)
	assert.Equal(t, "", m.Input())

	for _, text := range []string{"first", "second"} {
		m = typeText(t, m, text)
		m = submitAndWait(t, m)
	}

	m, _ = press(t, m, tea.KeyUp)
	assert.Equal(t, "second", m.Input())
	m, _ = press(t, m, tea.KeyUp)
	assert.Equal(t, "first", m.Input())
	m, _ = press(t, m, tea.KeyUp)
	assert.Equal(t, "first", m.Input(), "clamped at the oldest entry")

	m, _ = press(t, m, tea.KeyDown)
	assert.Equal(t, "second", m.Input())
	m, _ = press(t, m, tea.KeyDown)
	assert.Equal(t, "", m.Input(), "leaving history clears the input")
}

func TestHistoryDownOutsideBrowsingClearsInput(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "first")
	m = submitAndWait(t, m)

	m = typeText(t, m, "draft")
	m, _ = press(t, m, tea.KeyDown)
	assert.Equal(t, "", m.Input())
	assert.False(t, m.interp.History().Browsing())
}

func TestEditingRecalledEntryKeepsHistoryCursor(t *testing.T) {
	m, _ := newTestModel(t)
	for _, text := range []string{"first", "second"} {
		m = typeText(t, m, text)
		m = submitAndWait(t, m)
	}

	m, _ = press(t, m, tea.KeyUp)
	require.Equal(t, "second", m.Input())
	m = typeText(t, m, "!")
	assert.Equal(t, "second!", m.Input())
	assert.Equal(t, 1, m.interp.History().Cursor())

	m, _ = press(t, m, tea.KeyUp)
	assert.Equal(t, "first", m.Input())
}

func TestHistoryRecallDoesNotOpenSuggestions(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "/help")
	m, _ = press(t, m, tea.KeyEsc)
	m = submitAndWait(t, m)

	m, _ = press(t, m, tea.KeyUp)
	assert.Equal(t, "/help", m.Input())
	assert.False(t, m.Suggestions().Active())
}

// =============================================================================
// CONFIG RELOAD TESTS
// =============================================================================

func TestConfigReloadSwitchesBackend(t *testing.T) {
	m, backend := newTestModel(t)

	cfg := m.interp.Env().Config.Clone()
	cfg.Backend.URL = "http://agent.internal:9000"
	m = update(t, m, ConfigReloadedMsg{Config: cfg})

	assert.Equal(t, "http://agent.internal:9000", backend.BaseURL())
	assert.Equal(t, "http://agent.internal:9000", m.interp.Env().Config.Backend.URL)
	require.Len(t, m.entries, 1)
	assert.Equal(t, commands.ResultInfo, m.entries[0].result.Kind)
}

func TestConfigReloadUnchangedIsSilent(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, ConfigReloadedMsg{Config: m.interp.Env().Config.Clone()})
	assert.Empty(t, m.entries)
}

func TestConfigReloadErrorKeepsConfig(t *testing.T) {
	m, backend := newTestModel(t)
	m = update(t, m, ConfigReloadedMsg{Err: errors.New("bad toml")})

	assert.Equal(t, "http://localhost:8000", backend.BaseURL())
	require.Len(t, m.entries, 1)
	assert.Equal(t, commands.ResultWarning, m.entries[0].result.Kind)
}

func TestConfigReloadDeferredWhileBusy(t *testing.T) {
	m, backend := newTestModel(t)
	m = typeText(t, m, "hello")
	m, cmd := press(t, m, tea.KeyEnter)
	require.True(t, m.Busy())

	cfg := m.interp.Env().Config.Clone()
	cfg.Backend.URL = "http://later:9000"
	m = update(t, m, ConfigReloadedMsg{Config: cfg})
	assert.Equal(t, "http://localhost:8000", backend.BaseURL(), "not applied mid-submission")

	for _, msg := range drain(cmd) {
		if res, ok := msg.(resultMsg); ok {
			m = update(t, m, res)
		}
	}
	assert.Equal(t, "http://later:9000", backend.BaseURL())
}

// =============================================================================
// VIEW TESTS
// =============================================================================

func TestViewBeforeSize(t *testing.T) {
	backend := &stubBackend{url: "http://localhost:8000"}
	cfg := config.Default()
	cfg.UI.Theme = "dark"
	m := New(context.Background(), commands.NewInterpreter(&commands.Env{Backend: backend, Config: cfg}))
	assert.Equal(t, "Starting memdeck...", m.View())
}

func TestViewShowsChrome(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	assert.Contains(t, view, "memdeck")
	assert.Contains(t, view, "http://localhost:8000")
	assert.Contains(t, view, "Ready")
	assert.Contains(t, view, "/help")
}
