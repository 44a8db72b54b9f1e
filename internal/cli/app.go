// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/jeranaias/memdeck/internal/backend"
	"github.com/jeranaias/memdeck/internal/commands"
	"github.com/jeranaias/memdeck/internal/config"
	"github.com/jeranaias/memdeck/internal/logging"
	"github.com/jeranaias/memdeck/internal/session"
)

// =============================================================================
// APPLICATION WIRING
// =============================================================================

// app is the wired set of collaborators behind every front end.
type app struct {
	cfg        *config.Config
	configPath string
	logger     *zap.Logger
	closeLog   func() error
	client     *backend.Client
	interp     *commands.Interpreter
}

// newApp loads configuration and builds the interpreter. Logging problems
// are reported on stderr and do not stop startup.
func newApp(opts *Options, stderr io.Writer) (*app, error) {
	cfg, path, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(cfg.Logging, opts.Verbose)
	if err != nil {
		fmt.Fprintf(stderr, "warning: file logging disabled: %v\n", err)
		logger, closeLog = zap.NewNop(), func() error { return nil }
	}

	client := backend.NewFromConfig(cfg.Backend, logger)
	env := &commands.Env{
		Backend: client,
		Session: session.NewStore(),
		Config:  cfg,
		Logger:  logger,
		Version: Version,
		SaveConfig: func(c *config.Config) error {
			return config.SaveFile(c, path)
		},
	}

	logger.Debug("memdeck starting",
		zap.String("version", Version),
		zap.String("config", path),
		zap.String("backend", client.BaseURL()),
	)

	return &app{
		cfg:        cfg,
		configPath: path,
		logger:     logger,
		closeLog:   closeLog,
		client:     client,
		interp:     commands.NewInterpreter(env),
	}, nil
}

// close flushes the logger.
func (a *app) close() {
	_ = a.closeLog()
}

// loadConfig reads the config named by --config, or the default location,
// and applies the --url override. It returns the path /config writes to.
func loadConfig(opts *Options) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path = opts.ConfigPath
		err  error
	)
	if path != "" {
		cfg, err = config.LoadFromPath(path)
	} else {
		if path, err = config.ActivePath(); err != nil {
			return nil, "", fmt.Errorf("locate config: %w", err)
		}
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}

	applyOverrides(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config: %w", err)
	}
	return cfg, path, nil
}

// applyOverrides applies command-line flags on top of a loaded config.
func applyOverrides(cfg *config.Config, opts *Options) {
	if opts.URL != "" {
		cfg.Backend.URL = opts.URL
	}
}
