// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/jeranaias/memdeck/internal/config"
	"github.com/jeranaias/memdeck/internal/history"
	"github.com/jeranaias/memdeck/internal/logging"
	"github.com/jeranaias/memdeck/internal/normalize"
	"github.com/jeranaias/memdeck/internal/session"
)

// =============================================================================
// HANDLER ENVIRONMENT
// =============================================================================

// Backend is the network boundary used by handlers. *backend.Client
// satisfies it.
type Backend interface {
	Do(ctx context.Context, method, path string, body any) (any, error)
	BaseURL() string
	SetBaseURL(raw string) error
}

// Env provides handlers with access to application state.
type Env struct {
	Backend  Backend
	Session  *session.Store
	History  *history.Buffer
	Config   *config.Config
	Registry *Registry
	Vocab    Vocabulary
	Logger   *zap.Logger

	// Version is the client version shown by /version
	Version string

	// SaveConfig persists the config after /config sets a value. Nil means
	// changes are kept in memory only.
	SaveConfig func(*config.Config) error
}

// fillDefaults sets any unset collaborators.
func (e *Env) fillDefaults() {
	if e.Session == nil {
		e.Session = session.NewStore()
	}
	if e.Config == nil {
		e.Config = config.Default()
	}
	if e.History == nil {
		e.History = history.New(e.Config.History.Size)
	}
	if e.Registry == nil {
		e.Registry = DefaultRegistry()
	}
	if e.Vocab == nil {
		e.Vocab = DefaultVocabulary()
	}
	e.Logger = logging.OrNop(e.Logger)
	if e.Version == "" {
		e.Version = "dev"
	}
}

// call performs one backend request and normalizes the response.
func (e *Env) call(ctx context.Context, method, path string, body any) (Result, error) {
	if e.Backend == nil {
		return Result{}, errNoBackend
	}
	resp, err := e.Backend.Do(ctx, method, path, body)
	if err != nil {
		return Result{}, err
	}
	return Success(normalize.Normalize(resp)), nil
}

func (e *Env) get(ctx context.Context, path string) (Result, error) {
	return e.call(ctx, http.MethodGet, path, nil)
}

func (e *Env) post(ctx context.Context, path string, body any) (Result, error) {
	return e.call(ctx, http.MethodPost, path, body)
}

func (e *Env) delete(ctx context.Context, path string) (Result, error) {
	return e.call(ctx, http.MethodDelete, path, nil)
}
