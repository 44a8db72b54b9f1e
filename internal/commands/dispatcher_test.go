// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeBackend records requests and replies with a fixed response.
type fakeBackend struct {
	mu    sync.Mutex
	url   string
	calls []fakeCall
	resp  any
	err   error
}

type fakeCall struct {
	Method string
	Path   string
	Body   any
}

func (f *fakeBackend) Do(ctx context.Context, method, path string, body any) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{Method: method, Path: path, Body: body})
	return f.resp, f.err
}

func (f *fakeBackend) BaseURL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.url
}

func (f *fakeBackend) SetBaseURL(raw string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.url = raw
	return nil
}

func (f *fakeBackend) lastCall(t *testing.T) fakeCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls, "no backend calls recorded")
	return f.calls[len(f.calls)-1]
}

func newFakeEnv(reg *Registry) (*Env, *fakeBackend) {
	fb := &fakeBackend{url: "http://localhost:8000", resp: map[string]any{"response": "hi"}}
	return &Env{Backend: fb, Registry: reg}, fb
}

// =============================================================================
// DISPATCHER TESTS
// =============================================================================

func TestDispatch_UnknownCommand(t *testing.T) {
	env, fb := newFakeEnv(nil)
	d := NewDispatcher(env)

	res := d.Dispatch(context.Background(), Parse("/frobnicate"))
	assert.Equal(t, ResultError, res.Kind)
	assert.Equal(t, "Unknown command: /frobnicate. Type /help to see available commands.", res.Content)
	assert.Empty(t, fb.calls)
}

func TestDispatch_CaseSensitiveName(t *testing.T) {
	env, _ := newFakeEnv(nil)
	res := NewDispatcher(env).Dispatch(context.Background(), Parse("/Help"))

	assert.Equal(t, ResultError, res.Kind)
	assert.Contains(t, res.Content, "Unknown command: /Help")
}

func TestDispatch_EmptyInputIsUnknown(t *testing.T) {
	env, _ := newFakeEnv(nil)
	d := NewDispatcher(env)

	for _, input := range []string{"", "/"} {
		res := d.Dispatch(context.Background(), Parse(input))
		assert.Equal(t, ResultError, res.Kind, "input %q", input)
		assert.Equal(t, UnknownCommandMessage(""), res.Content)
	}
}

func TestDispatch_ChatBypassesRegistry(t *testing.T) {
	// An empty registry still routes chat text.
	env, fb := newFakeEnv(NewRegistry())
	res := NewDispatcher(env).Dispatch(context.Background(), Parse("what is deployed?"))

	require.Equal(t, ResultSuccess, res.Kind, res.Content)
	call := fb.lastCall(t)
	assert.Equal(t, "POST", call.Method)
	assert.Equal(t, "/chat", call.Path)
	assert.Equal(t, chatRequest{Message: "what is deployed?", SessionID: env.Session.SessionID()}, call.Body)
}

func TestDispatch_HandlerErrorBecomesResult(t *testing.T) {
	reg := NewRegistry(&Command{
		Name: "fail",
		Handler: func(ctx context.Context, env *Env, args []string) (Result, error) {
			return Result{}, errors.New("backend exploded")
		},
	})
	env, _ := newFakeEnv(reg)

	res := NewDispatcher(env).Dispatch(context.Background(), Parse("/fail"))
	assert.Equal(t, ResultError, res.Kind)
	assert.Equal(t, "Command failed: backend exploded", res.Content)
}

func TestDispatch_RecoversPanics(t *testing.T) {
	reg := NewRegistry(&Command{
		Name: "boom",
		Handler: func(ctx context.Context, env *Env, args []string) (Result, error) {
			var m map[string]int
			m["x"] = 1
			return Result{}, nil
		},
	})
	env, _ := newFakeEnv(reg)

	var res Result
	require.NotPanics(t, func() {
		res = NewDispatcher(env).Dispatch(context.Background(), Parse("/boom"))
	})
	assert.Equal(t, ResultError, res.Kind)
	assert.True(t, strings.HasPrefix(res.Content, "Command failed: "), res.Content)
}

func TestDispatch_UsageErrorIsFailure(t *testing.T) {
	env, fb := newFakeEnv(nil)

	res := NewDispatcher(env).Dispatch(context.Background(), Parse("/memory frob"))
	assert.Equal(t, ResultError, res.Kind)
	assert.True(t, strings.HasPrefix(res.Content, `Command failed: Unknown action "frob"`), res.Content)
	assert.Contains(t, res.Content, "**Usage:** `/memory <search|store|list|get|delete|stats|health> [args]`")
	assert.Empty(t, fb.calls)
}

func TestDispatch_NoBackend(t *testing.T) {
	env := &Env{}
	res := NewDispatcher(env).Dispatch(context.Background(), Parse("/memory stats"))

	assert.Equal(t, ResultError, res.Kind)
	assert.Equal(t, "Command failed: no backend configured", res.Content)
}

// =============================================================================
// INTERPRETER TESTS
// =============================================================================

func TestInterpreter_RecordsHistoryAfterDispatch(t *testing.T) {
	var seen []string
	var interp *Interpreter
	reg := NewRegistry(&Command{
		Name: "peek",
		Handler: func(ctx context.Context, env *Env, args []string) (Result, error) {
			seen = interp.History().Entries()
			return Success("ok"), nil
		},
	})
	env, _ := newFakeEnv(reg)
	interp = NewInterpreter(env)

	_, ok := interp.Submit(context.Background(), "  /peek  ")
	require.True(t, ok)
	assert.Empty(t, seen, "history must not include the running input")
	assert.Equal(t, []string{"/peek"}, interp.History().Entries())

	// Unknown commands and chat are recorded too; blank input is not.
	interp.Submit(context.Background(), "/nope")
	interp.Submit(context.Background(), "hello")
	interp.Submit(context.Background(), "   ")
	assert.Equal(t, []string{"/peek", "/nope", "hello"}, interp.History().Entries())
}

func TestInterpreter_SingleFlight(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	started := make(chan struct{})
	release := make(chan struct{})
	reg := NewRegistry(
		&Command{
			Name: "block",
			Handler: func(ctx context.Context, env *Env, args []string) (Result, error) {
				close(started)
				<-release
				return Success("done"), nil
			},
		},
		&Command{Name: "other", Handler: noop},
	)
	env, _ := newFakeEnv(reg)
	interp := NewInterpreter(env)

	var wg sync.WaitGroup
	var first Result
	var firstOK bool
	wg.Add(1)
	go func() {
		defer wg.Done()
		first, firstOK = interp.Submit(context.Background(), "/block")
	}()

	<-started
	assert.True(t, interp.Busy())

	_, ok := interp.Submit(context.Background(), "/other")
	assert.False(t, ok, "second submission must be rejected while busy")

	close(release)
	wg.Wait()

	assert.True(t, firstOK)
	assert.Equal(t, "done", first.Content)
	assert.False(t, interp.Busy())
	assert.Equal(t, []string{"/block"}, interp.History().Entries())

	_, ok = interp.Submit(context.Background(), "/other")
	assert.True(t, ok, "submissions are accepted again once idle")
}

func TestInterpreter_Suggest(t *testing.T) {
	interp := NewInterpreter(&Env{})
	assert.Equal(t, []string{"/memory"}, interp.Suggest("/mem"))

	s := interp.NewSuggestionState()
	s.Update("/check")
	assert.Equal(t, []string{"/checkpoint"}, s.Candidates)
}
