// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newExecCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <input...>",
		Short: "Run one command or chat message and print the result",
		Example: `  memdeck exec /memory search deploy notes --limit 5
  memdeck exec /status
  memdeck exec what did we decide about the schema?`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd, opts, args)
		},
	}
	// Everything after the first word belongs to the slash command.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// runExec submits a single input. Error results exit with status 1.
func runExec(cmd *cobra.Command, opts *Options, args []string) error {
	a, err := newApp(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.close()

	res, _ := a.interp.Submit(commandContext(cmd), strings.Join(args, " "))
	newPrinter(cmd.OutOrStdout(), a.cfg.UI).print(res)
	if res.IsError() {
		return &exitError{code: 1}
	}
	return nil
}
