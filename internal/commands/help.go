// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// HELP
// =============================================================================

func handleHelp(ctx context.Context, env *Env, args []string) (Result, error) {
	switch len(args) {
	case 0:
		return Success(GenerateHelp(env.Registry)), nil
	case 1:
		name := strings.TrimPrefix(args[0], Prefix)
		cmd, ok := env.Registry.Lookup(name)
		if !ok {
			return Result{Kind: ResultError, Content: UnknownCommandMessage(name)}, nil
		}
		return Success(GenerateCommandHelp(cmd, env.Vocab)), nil
	}
	return Result{}, usageErr("/help [command]", "Too many arguments")
}

// GenerateHelp lists every command grouped by category in display order.
func GenerateHelp(reg *Registry) string {
	var b strings.Builder
	b.WriteString("## Available Commands\n")

	title := cases.Title(language.English)
	groups := reg.ByCategory()
	for _, cat := range Categories {
		cmds := groups[cat]
		if len(cmds) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n### %s\n\n", title.String(string(cat)))
		for _, cmd := range cmds {
			fmt.Fprintf(&b, "- **%s** - %s\n", cmd.Usage, cmd.Description)
		}
	}

	b.WriteString("\nText without a leading `/` is sent to the agent as a chat message.\n")
	return b.String()
}

// GenerateCommandHelp renders the usage, description and sub-actions of
// one command.
func GenerateCommandHelp(cmd *Command, vocab Vocabulary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s%s\n\n", Prefix, cmd.Name)
	b.WriteString(cmd.Description)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "**Usage:** `%s`\n", cmd.Usage)
	if vocab.Has(cmd.Name) {
		b.WriteString("\n**Actions:**\n\n")
		for _, action := range vocab.Actions(cmd.Name) {
			fmt.Fprintf(&b, "- `%s%s %s`\n", Prefix, cmd.Name, action)
		}
	}
	return b.String()
}
