// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/jeranaias/memdeck/internal/history"
)

// =============================================================================
// INTERPRETER
// =============================================================================

// Interpreter ties the parser, dispatcher and history together and allows at
// most one submission in flight.
type Interpreter struct {
	dispatcher *Dispatcher
	inflight   *semaphore.Weighted
	busy       atomic.Bool
}

// NewInterpreter creates an interpreter over env.
func NewInterpreter(env *Env) *Interpreter {
	return &Interpreter{
		dispatcher: NewDispatcher(env),
		inflight:   semaphore.NewWeighted(1),
	}
}

// Submit parses and dispatches one line of input. accepted is false when
// another submission is still in flight; nothing is dispatched or recorded
// in that case. Accepted non-empty input is added to history once its
// handler finishes.
func (i *Interpreter) Submit(ctx context.Context, raw string) (res Result, accepted bool) {
	if !i.inflight.TryAcquire(1) {
		return Result{}, false
	}
	i.busy.Store(true)
	defer func() {
		i.busy.Store(false)
		i.inflight.Release(1)
	}()

	res = i.dispatcher.Dispatch(ctx, Parse(raw))

	if entry := strings.TrimSpace(raw); entry != "" {
		i.dispatcher.env.History.Add(entry)
	}
	return res, true
}

// Busy reports whether a submission is in flight.
func (i *Interpreter) Busy() bool {
	return i.busy.Load()
}

// Suggest returns completion candidates for a partial input.
func (i *Interpreter) Suggest(input string) []string {
	env := i.dispatcher.env
	return Suggest(env.Registry, env.Vocab, input)
}

// NewSuggestionState returns suggestion state bound to this interpreter's
// registry and vocabulary.
func (i *Interpreter) NewSuggestionState() *SuggestionState {
	env := i.dispatcher.env
	return NewSuggestionState(env.Registry, env.Vocab)
}

// History returns the input history buffer.
func (i *Interpreter) History() *history.Buffer {
	return i.dispatcher.env.History
}

// Env returns the handler environment.
func (i *Interpreter) Env() *Env {
	return i.dispatcher.env
}
