// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/jeranaias/memdeck/internal/commands"
	"github.com/jeranaias/memdeck/internal/config"
	"github.com/jeranaias/memdeck/internal/ui/components"
	"github.com/jeranaias/memdeck/internal/ui/styles"
)

// printer writes results for the line-oriented front ends. On a terminal
// results are rendered with glamour; elsewhere the markdown is written as is
// so output stays pipeable.
type printer struct {
	out      io.Writer
	theme    *styles.Theme
	markdown *components.MarkdownRenderer
}

func newPrinter(out io.Writer, cfg config.UIConfig) *printer {
	p := &printer{out: out}
	if colorsEnabled(out) {
		p.theme = styles.NewTheme(cfg.Theme)
		p.markdown = components.NewMarkdownRenderer(p.theme.GlamourStyle(cfg.GlamourStyle), terminalWidth(out))
	}
	return p
}

// styled reports whether output is rendered.
func (p *printer) styled() bool {
	return p.markdown != nil
}

// print writes one result. A clear-session result clears the screen
// instead of printing its content.
func (p *printer) print(res commands.Result) {
	if res.Action == commands.ActionClearSession {
		clearScreen(p.out)
		return
	}
	if !p.styled() {
		fmt.Fprintln(p.out, res.Content)
		return
	}
	fmt.Fprintln(p.out, components.RenderResult(p.theme, p.markdown, res))
}
