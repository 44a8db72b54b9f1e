// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/memdeck/internal/config"
)

// DefaultHistoryShown is the number of entries /history lists with no count.
const DefaultHistoryShown = 20

// =============================================================================
// HISTORY
// =============================================================================

func handleHistory(ctx context.Context, env *Env, args []string) (Result, error) {
	const usage = "/history [n]"
	n := DefaultHistoryShown
	switch len(args) {
	case 0:
	case 1:
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			return Result{}, usageErr(usage, "Invalid count %q", args[0])
		}
		n = v
	default:
		return Result{}, usageErr(usage, "Too many arguments")
	}

	entries := env.History.Last(n)
	if len(entries) == 0 {
		return Info("_No history yet._"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## History (%d of %d)\n\n", len(entries), env.History.Len())
	start := env.History.Len() - len(entries) + 1
	for i, entry := range entries {
		fmt.Fprintf(&b, "%d. `%s`\n", start+i, strings.ReplaceAll(entry, "`", "'"))
	}
	return Success(b.String()), nil
}

// =============================================================================
// CONFIG
// =============================================================================

func handleConfig(ctx context.Context, env *Env, args []string) (Result, error) {
	switch len(args) {
	case 0:
		return Success(configTable(env)), nil

	case 1:
		v, err := env.Config.Get(args[0])
		if err != nil {
			return Result{}, usageErr("/config [key] [value]", "%s", err.Error())
		}
		return Success(fmt.Sprintf("`%s` = `%v`", args[0], v)), nil
	}

	key, value := args[0], strings.Join(args[1:], " ")

	updated := env.Config.Clone()
	if err := updated.Set(key, value); err != nil {
		return Result{}, fmt.Errorf("set %s: %w", key, err)
	}
	if err := updated.Validate(); err != nil {
		return Result{}, err
	}

	if key == "backend.url" && env.Backend != nil {
		if err := env.Backend.SetBaseURL(updated.Backend.URL); err != nil {
			return Result{}, fmt.Errorf("switch backend: %w", err)
		}
	}
	*env.Config = *updated

	msg := fmt.Sprintf("Set `%s` = `%s`", key, value)
	if env.SaveConfig != nil {
		if err := env.SaveConfig(env.Config); err != nil {
			return Warning(msg + "\n\nThe change applies to this session only: " + err.Error()), nil
		}
	}
	return Success(msg), nil
}

func configTable(env *Env) string {
	var b strings.Builder
	b.WriteString("## Configuration\n\n")
	b.WriteString("| Key | Value |\n")
	b.WriteString("|-----|-------|\n")
	for _, key := range config.GetAllKeys() {
		v, err := env.Config.Get(key)
		if err != nil {
			continue
		}
		cell := strings.ReplaceAll(fmt.Sprint(v), "|", "\\|")
		if cell == "" {
			cell = "-"
		}
		fmt.Fprintf(&b, "| %s | %s |\n", key, cell)
	}
	return b.String()
}

// =============================================================================
// VERSION
// =============================================================================

func handleVersion(ctx context.Context, env *Env, args []string) (Result, error) {
	head := fmt.Sprintf("**memdeck** %s", env.Version)

	backendVersion, err := env.get(ctx, "/version")
	if err != nil {
		return Warning(head + "\n\n**Backend:** unavailable (" + err.Error() + ")"), nil
	}
	return Success(head + "\n\n**Backend:** " + backendVersion.Content), nil
}
