// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var errNoBackend = errors.New("no backend configured")

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher routes parsed input to handlers. It is the only place where
// handler errors become results.
type Dispatcher struct {
	env *Env
}

// NewDispatcher creates a dispatcher over env. Unset collaborators in env are
// filled with defaults.
func NewDispatcher(env *Env) *Dispatcher {
	env.fillDefaults()
	return &Dispatcher{env: env}
}

// Env returns the handler environment.
func (d *Dispatcher) Env() *Env {
	return d.env
}

// Dispatch executes parsed input and always returns a result.
func (d *Dispatcher) Dispatch(ctx context.Context, in ParsedInput) Result {
	if in.Kind == InputChat {
		return d.run(ctx, "chat", handleChat, in.Args)
	}

	cmd, ok := d.env.Registry.Lookup(in.Name)
	if !ok {
		d.env.Logger.Debug("unknown command", zap.String("command", in.Name))
		return Result{Kind: ResultError, Content: UnknownCommandMessage(in.Name)}
	}
	return d.run(ctx, cmd.Name, cmd.Handler, in.Args)
}

// run invokes a handler, converting errors and panics into results.
func (d *Dispatcher) run(ctx context.Context, name string, h Handler, args []string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			d.env.Logger.Warn("command panicked",
				zap.String("command", name),
				zap.Any("panic", r))
			res = Errorf("Command failed: %v", r)
		}
	}()

	res, err := h(ctx, d.env, args)
	if err == nil {
		return res
	}

	var usage *UsageError
	if errors.As(err, &usage) {
		d.env.Logger.Debug("command usage error",
			zap.String("command", name),
			zap.Error(err))
		return Result{Kind: ResultError, Content: "Command failed: " + usage.render()}
	}

	d.env.Logger.Warn("command failed",
		zap.String("command", name),
		zap.Error(err))
	return Result{Kind: ResultError, Content: fmt.Sprintf("Command failed: %s", err.Error())}
}
