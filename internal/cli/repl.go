// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/memdeck/internal/commands"
)

// replPrompt is shown before each input line.
const replPrompt = "memdeck> "

func newReplCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Line-mode console with tab completion",
		Long: `Start a plain line-mode console. Tab completes slash commands and their
actions, Up/Down walk the input history. Ctrl+C or Ctrl+D exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, opts)
		},
	}
}

// runREPL reads lines until EOF or Ctrl+C at the prompt.
func runREPL(cmd *cobra.Command, opts *Options) error {
	a, err := newApp(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.close()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(a.interp.Suggest)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "memdeck %s connected to %s. Type /help for commands.\n", Version, a.client.BaseURL())

	return replLoop(commandContext(cmd), line, a.interp, newPrinter(out, a.cfg.UI))
}

// lineReader is the part of liner.State the loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	ClearHistory()
}

func replLoop(ctx context.Context, line lineReader, interp *commands.Interpreter, p *printer) error {
	for {
		input, err := line.Prompt(replPrompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if strings.TrimSpace(input) == "" {
			continue
		}

		res, accepted := submitInterruptible(ctx, interp, input)
		syncHistory(line, interp)
		if accepted {
			p.print(res)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// submitInterruptible runs one submission that Ctrl+C cancels without
// leaving the loop.
func submitInterruptible(ctx context.Context, interp *commands.Interpreter, input string) (commands.Result, bool) {
	reqCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	return interp.Submit(reqCtx, input)
}

// syncHistory mirrors the interpreter's history buffer into the line
// editor so Up/Down see the same capped, deduplicated entries.
func syncHistory(line lineReader, interp *commands.Interpreter) {
	line.ClearHistory()
	for _, entry := range interp.History().Entries() {
		line.AppendHistory(entry)
	}
}
