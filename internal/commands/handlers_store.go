// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jeranaias/memdeck/internal/backend"
)

// =============================================================================
// SUB-ACTION DISPATCH
// =============================================================================

// actionHandler handles one sub-action; args excludes the action itself.
type actionHandler func(ctx context.Context, env *Env, args []string) (Result, error)

// runAction validates the first argument against the vocabulary and invokes
// the matching handler. With no arguments it lists the available actions.
func runAction(ctx context.Context, env *Env, command string, args []string, actions map[string]actionHandler) (Result, error) {
	cmd, _ := env.Registry.Lookup(command)
	usage := Prefix + command
	if cmd != nil {
		usage = cmd.Usage
	}

	if len(args) == 0 {
		return Info(fmt.Sprintf("**Usage:** `%s`\n\n**Actions:** %s", usage, env.Vocab.List(command))), nil
	}

	action := args[0]
	h, ok := actions[action]
	if !ok || !env.Vocab.Valid(command, action) {
		return Result{}, usageErr(usage, "Unknown action %q. Available: %s", action, env.Vocab.List(command))
	}
	return h(ctx, env, args[1:])
}

// parseLimit extracts "--limit N" from args, defaulting to def.
func parseLimit(args []string, def int, usage string) ([]string, int, error) {
	rest, raw, found := takeFlag(args, "--limit")
	if !found {
		return rest, def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return nil, 0, usageErr(usage, "Invalid limit %q", raw)
	}
	return rest, n, nil
}

func requireID(args []string, usage, what string) (string, error) {
	if len(args) != 1 {
		return "", usageErr(usage, "Exactly one %s is required", what)
	}
	return args[0], nil
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// =============================================================================
// MEMORY
// =============================================================================

type storeMemoryRequest struct {
	Content    string `json:"content"`
	MemoryType string `json:"memory_type"`
}

func handleMemory(ctx context.Context, env *Env, args []string) (Result, error) {
	return runAction(ctx, env, "memory", args, map[string]actionHandler{
		"search": memorySearch,
		"store":  memoryStore,
		"list":   memoryList,
		"get": func(ctx context.Context, env *Env, args []string) (Result, error) {
			id, err := requireID(args, "/memory get <id>", "memory id")
			if err != nil {
				return Result{}, err
			}
			return env.get(ctx, "/memory/"+backend.PathEscape(id))
		},
		"delete": func(ctx context.Context, env *Env, args []string) (Result, error) {
			id, err := requireID(args, "/memory delete <id>", "memory id")
			if err != nil {
				return Result{}, err
			}
			return env.delete(ctx, "/memory/"+backend.PathEscape(id))
		},
		"stats": func(ctx context.Context, env *Env, args []string) (Result, error) {
			return env.get(ctx, "/memory/stats")
		},
		"health": func(ctx context.Context, env *Env, args []string) (Result, error) {
			return env.get(ctx, "/memory/health")
		},
	})
}

func memorySearch(ctx context.Context, env *Env, args []string) (Result, error) {
	const usage = "/memory search <query> [--limit N]"
	rest, limit, err := parseLimit(args, env.Config.Memory.SearchLimit, usage)
	if err != nil {
		return Result{}, err
	}
	query := strings.Join(rest, " ")
	if query == "" {
		return Result{}, usageErr(usage, "Query is required")
	}
	return env.post(ctx, "/memory/search", searchRequest{Query: query, Limit: limit})
}

func memoryStore(ctx context.Context, env *Env, args []string) (Result, error) {
	const usage = "/memory store <content> [--type TYPE]"
	rest, memType, found := takeFlag(args, "--type")
	if !found {
		memType = env.Config.Memory.DefaultType
	}
	content := strings.Join(rest, " ")
	if content == "" {
		return Result{}, usageErr(usage, "Content is required")
	}
	return env.post(ctx, "/memory", storeMemoryRequest{Content: content, MemoryType: memType})
}

func memoryList(ctx context.Context, env *Env, args []string) (Result, error) {
	const usage = "/memory list [limit]"
	limit := env.Config.Memory.SearchLimit
	switch len(args) {
	case 0:
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return Result{}, usageErr(usage, "Invalid limit %q", args[0])
		}
		limit = n
	default:
		return Result{}, usageErr(usage, "Too many arguments")
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return env.get(ctx, "/memory?"+q.Encode())
}

// =============================================================================
// CHECKPOINTS
// =============================================================================

func handleCheckpoint(ctx context.Context, env *Env, args []string) (Result, error) {
	return runAction(ctx, env, "checkpoint", args, map[string]actionHandler{
		"list": func(ctx context.Context, env *Env, args []string) (Result, error) {
			switch len(args) {
			case 0:
				return env.get(ctx, "/checkpoints")
			case 1:
				q := url.Values{}
				q.Set("thread_id", args[0])
				return env.get(ctx, "/checkpoints?"+q.Encode())
			}
			return Result{}, usageErr("/checkpoint list [thread_id]", "Too many arguments")
		},
		"get": func(ctx context.Context, env *Env, args []string) (Result, error) {
			id, err := requireID(args, "/checkpoint get <thread_id>", "thread id")
			if err != nil {
				return Result{}, err
			}
			return env.get(ctx, "/checkpoints/"+backend.PathEscape(id))
		},
		"delete": func(ctx context.Context, env *Env, args []string) (Result, error) {
			id, err := requireID(args, "/checkpoint delete <thread_id>", "thread id")
			if err != nil {
				return Result{}, err
			}
			return env.delete(ctx, "/checkpoints/"+backend.PathEscape(id))
		},
		"stats": func(ctx context.Context, env *Env, args []string) (Result, error) {
			return env.get(ctx, "/checkpoints/stats")
		},
	})
}

// =============================================================================
// DOCUMENTS
// =============================================================================

func handleDocument(ctx context.Context, env *Env, args []string) (Result, error) {
	return runAction(ctx, env, "document", args, map[string]actionHandler{
		"search": func(ctx context.Context, env *Env, args []string) (Result, error) {
			const usage = "/document search <query> [--limit N]"
			rest, limit, err := parseLimit(args, env.Config.Memory.SearchLimit, usage)
			if err != nil {
				return Result{}, err
			}
			query := strings.Join(rest, " ")
			if query == "" {
				return Result{}, usageErr(usage, "Query is required")
			}
			return env.post(ctx, "/documents/search", searchRequest{Query: query, Limit: limit})
		},
		"list": func(ctx context.Context, env *Env, args []string) (Result, error) {
			return env.get(ctx, "/documents")
		},
		"get": func(ctx context.Context, env *Env, args []string) (Result, error) {
			id, err := requireID(args, "/document get <id>", "document id")
			if err != nil {
				return Result{}, err
			}
			return env.get(ctx, "/documents/"+backend.PathEscape(id))
		},
		"delete": func(ctx context.Context, env *Env, args []string) (Result, error) {
			id, err := requireID(args, "/document delete <id>", "document id")
			if err != nil {
				return Result{}, err
			}
			return env.delete(ctx, "/documents/"+backend.PathEscape(id))
		},
	})
}
