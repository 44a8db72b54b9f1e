// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeranaias/memdeck/internal/config"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Options holds the persistent flags shared by every subcommand.
type Options struct {
	ConfigPath string
	URL        string
	Verbose    bool
}

// exitError carries a process exit code out of a RunE without printing.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCommand builds the memdeck command tree. With no subcommand the
// interactive console starts.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:   "memdeck",
		Short: "Slash-command console for a memory-backed agent",
		Long: `memdeck is a terminal console for an agent backend with long-term memory.

Lines starting with / run commands (/help lists them). Anything else is sent
to the agent as a chat message.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.URL != "" {
				if err := config.ValidateBackendURL(opts.URL); err != nil {
					return fmt.Errorf("--url: %w", err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("memdeck %s (commit %s, built %s)\n", Version, GitCommit, BuildDate))

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default ~/.memdeck/config.toml)")
	flags.StringVar(&opts.URL, "url", "", "backend URL, overriding the config file")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newExecCommand(opts),
		newReplCommand(opts),
		newConfigCommand(opts),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// commandContext returns the command's context, or Background when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
