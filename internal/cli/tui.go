// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/memdeck/internal/config"
	"github.com/jeranaias/memdeck/internal/ui/chat"
)

// configReloadDebounce coalesces editor save bursts into one reload.
const configReloadDebounce = 250 * time.Millisecond

// runTUI starts the full-screen console.
func runTUI(cmd *cobra.Command, opts *Options) error {
	a, err := newApp(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	p := tea.NewProgram(
		chat.New(ctx, a.interp),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if w := a.watchConfig(ctx, opts, p); w != nil {
		defer w.Close()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	return nil
}

// watchConfig forwards config file changes to the running program. A
// missing config directory disables reloads.
func (a *app) watchConfig(ctx context.Context, opts *Options, p *tea.Program) *config.Watcher {
	if _, err := os.Stat(filepath.Dir(a.configPath)); err != nil {
		a.logger.Debug("config reload disabled", zap.String("path", a.configPath), zap.Error(err))
		return nil
	}

	w, err := config.NewWatcher(a.configPath, configReloadDebounce, func(cfg *config.Config, err error) {
		if cfg != nil {
			applyOverrides(cfg, opts)
		}
		p.Send(chat.ConfigReloadedMsg{Config: cfg, Err: err})
	})
	if err != nil {
		a.logger.Warn("config watcher unavailable", zap.Error(err))
		return nil
	}
	if err := w.Start(ctx); err != nil {
		w.Close()
		a.logger.Warn("config watcher unavailable", zap.Error(err))
		return nil
	}
	return w
}
