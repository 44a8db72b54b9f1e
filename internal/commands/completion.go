// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"
)

// =============================================================================
// SUGGESTIONS
// =============================================================================

// Suggest returns completion candidates for a partial input line. It is a
// pure function of its arguments. A nil result means the suggestion list
// should be hidden.
//
// While the first word is being typed, candidates are the registered
// commands whose names start with it, sorted. Once a command with
// sub-actions is followed by whitespace, candidates are its sub-actions in
// declared order. Anything further along gets no suggestions.
func Suggest(reg *Registry, vocab Vocabulary, input string) []string {
	input = strings.TrimLeft(input, " \t")
	if reg == nil || !strings.HasPrefix(input, Prefix) {
		return nil
	}

	tokens := inputTokens(input)
	switch len(tokens) {
	case 0, 1:
		partial := ""
		if len(tokens) == 1 {
			partial = strings.TrimPrefix(tokens[0], Prefix)
		}
		return completeCommands(reg, partial)

	case 2:
		name := strings.TrimPrefix(tokens[0], Prefix)
		if _, ok := reg.Lookup(name); !ok || !vocab.Has(name) {
			return nil
		}
		return completeActions(vocab, name, tokens[1])
	}
	return nil
}

func completeCommands(reg *Registry, partial string) []string {
	partial = strings.ToLower(partial)

	var out []string
	for _, name := range reg.Names() {
		if strings.HasPrefix(strings.ToLower(name), partial) {
			out = append(out, Prefix+name)
		}
	}
	sort.Strings(out)
	return out
}

func completeActions(vocab Vocabulary, name, partial string) []string {
	partial = strings.ToLower(partial)

	var out []string
	for _, action := range vocab.Actions(name) {
		if strings.HasPrefix(strings.ToLower(action), partial) {
			out = append(out, Prefix+name+" "+action)
		}
	}
	return out
}

// =============================================================================
// SUGGESTION STATE
// =============================================================================

// SuggestionState tracks the visible candidate list and its selection.
type SuggestionState struct {
	Candidates []string
	Selected   int
	Visible    bool

	registry *Registry
	vocab    Vocabulary
}

// NewSuggestionState creates an empty, hidden suggestion state.
func NewSuggestionState(reg *Registry, vocab Vocabulary) *SuggestionState {
	return &SuggestionState{registry: reg, vocab: vocab}
}

// Update recomputes candidates for input. The list is visible only when
// there is at least one candidate, and the selection resets to the top.
func (s *SuggestionState) Update(input string) {
	s.Candidates = Suggest(s.registry, s.vocab, input)
	s.Selected = 0
	s.Visible = len(s.Candidates) > 0
}

// MoveUp moves the selection up one row, stopping at the first.
func (s *SuggestionState) MoveUp() {
	if s.Selected > 0 {
		s.Selected--
	}
}

// MoveDown moves the selection down one row, stopping at the last.
func (s *SuggestionState) MoveDown() {
	if s.Selected < len(s.Candidates)-1 {
		s.Selected++
	}
}

// Active reports whether the list is showing at least one candidate.
func (s *SuggestionState) Active() bool {
	return s.Visible && len(s.Candidates) > 0
}

// SelectedCandidate returns the highlighted candidate.
func (s *SuggestionState) SelectedCandidate() (string, bool) {
	if !s.Active() || s.Selected < 0 || s.Selected >= len(s.Candidates) {
		return "", false
	}
	return s.Candidates[s.Selected], true
}

// Accept returns the input that replaces the current line. Accepting a
// command that has sub-actions yields the command plus a space and keeps the
// list open on those sub-actions; any other candidate closes the list.
// Accepting with nothing selected returns ("", false) and changes nothing.
func (s *SuggestionState) Accept() (newInput string, keepOpen bool) {
	cand, ok := s.SelectedCandidate()
	if !ok {
		return "", false
	}

	if name := strings.TrimPrefix(cand, Prefix); !strings.Contains(name, " ") && s.vocab.Has(name) {
		newInput = cand + " "
		s.Update(newInput)
		return newInput, true
	}

	s.Close()
	return cand, false
}

// Close hides the list.
func (s *SuggestionState) Close() {
	s.Candidates = nil
	s.Selected = 0
	s.Visible = false
}

// Description returns the help text for a candidate: the command
// description for command candidates, empty for sub-actions.
func (s *SuggestionState) Description(candidate string) string {
	name := strings.TrimPrefix(candidate, Prefix)
	if strings.Contains(name, " ") || s.registry == nil {
		return ""
	}
	if cmd, ok := s.registry.Lookup(name); ok {
		return cmd.Description
	}
	return ""
}
