// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"sort"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Category groups commands in help output.
type Category string

const (
	CategoryConnection Category = "connection"
	CategoryChat       Category = "chat"
	CategoryMemory     Category = "memory"
	CategoryCheckpoint Category = "checkpoint"
	CategoryDocument   Category = "document"
	CategorySystem     Category = "system"
)

// Categories lists every category in help display order.
var Categories = []Category{
	CategoryConnection,
	CategoryChat,
	CategoryMemory,
	CategoryCheckpoint,
	CategoryDocument,
	CategorySystem,
}

// Handler executes a command. Returned errors become "Command failed" results
// at the dispatcher; handlers never need to format failures themselves.
type Handler func(ctx context.Context, env *Env, args []string) (Result, error)

// Command represents a slash command that can be executed.
type Command struct {
	// Name is the command name without the prefix (e.g., "memory")
	Name string

	// Description is shown in help and completion
	Description string

	// Usage shows argument syntax (e.g., "/memory <action> [args]")
	Usage string

	// Category for grouping in help display
	Category Category

	// Handler is the function that executes the command
	Handler Handler
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds the registered commands. It is built once and never
// modified, so concurrent reads need no locking.
type Registry struct {
	commands map[string]*Command
	order    []*Command
}

// NewRegistry creates a registry from cmds, keeping their declaration order.
// A duplicate or empty name is a programming error and panics.
func NewRegistry(cmds ...*Command) *Registry {
	r := &Registry{
		commands: make(map[string]*Command, len(cmds)),
		order:    make([]*Command, 0, len(cmds)),
	}
	for _, cmd := range cmds {
		if cmd.Name == "" {
			panic("commands: command with empty name")
		}
		if _, dup := r.commands[cmd.Name]; dup {
			panic(fmt.Sprintf("commands: duplicate command %q", cmd.Name))
		}
		r.commands[cmd.Name] = cmd
		r.order = append(r.order, cmd)
	}
	return r
}

// Lookup finds a command by exact, case-sensitive name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// All returns all commands in declaration order.
func (r *Registry) All() []*Command {
	out := make([]*Command, len(r.order))
	copy(out, r.order)
	return out
}

// Names returns all command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByCategory returns commands grouped by category, each group in
// declaration order.
func (r *Registry) ByCategory() map[Category][]*Command {
	result := make(map[Category][]*Command)
	for _, cmd := range r.order {
		result[cmd.Category] = append(result[cmd.Category], cmd)
	}
	return result
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.order)
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

// DefaultRegistry returns the registry of built-in commands.
func DefaultRegistry() *Registry {
	return NewRegistry(
		// Connection
		&Command{
			Name:        "connect",
			Description: "Show or switch the backend URL and check its health",
			Usage:       "/connect [url]",
			Category:    CategoryConnection,
			Handler:     handleConnect,
		},
		&Command{
			Name:        "status",
			Description: "Show backend health and session details",
			Usage:       "/status",
			Category:    CategoryConnection,
			Handler:     handleStatus,
		},

		// Chat
		&Command{
			Name:        "chat",
			Description: "Send a message to the agent (same as typing without a slash)",
			Usage:       "/chat <message>",
			Category:    CategoryChat,
			Handler:     handleChat,
		},
		&Command{
			Name:        "query",
			Description: "Ask the agent a question answered from stored knowledge",
			Usage:       "/query <question>",
			Category:    CategoryChat,
			Handler:     handleQuery,
		},
		&Command{
			Name:        "action",
			Description: "Ask the agent to carry out an instruction",
			Usage:       "/action <instruction>",
			Category:    CategoryChat,
			Handler:     handleAction,
		},
		&Command{
			Name:        "incident",
			Description: "Start the incident workflow for a description",
			Usage:       "/incident <description>",
			Category:    CategoryChat,
			Handler:     handleIncident,
		},
		&Command{
			Name:        "clear",
			Description: "Clear the conversation and start a new session",
			Usage:       "/clear",
			Category:    CategoryChat,
			Handler:     handleClear,
		},

		// Knowledge stores
		&Command{
			Name:        "memory",
			Description: "Search, store and manage long-term memories",
			Usage:       "/memory <search|store|list|get|delete|stats|health> [args]",
			Category:    CategoryMemory,
			Handler:     handleMemory,
		},
		&Command{
			Name:        "checkpoint",
			Description: "Inspect and delete conversation checkpoints",
			Usage:       "/checkpoint <list|get|delete|stats> [thread_id]",
			Category:    CategoryCheckpoint,
			Handler:     handleCheckpoint,
		},
		&Command{
			Name:        "document",
			Description: "Search and manage indexed documents",
			Usage:       "/document <search|list|get|delete> [args]",
			Category:    CategoryDocument,
			Handler:     handleDocument,
		},

		// System
		&Command{
			Name:        "help",
			Description: "Show available commands or details for one command",
			Usage:       "/help [command]",
			Category:    CategorySystem,
			Handler:     handleHelp,
		},
		&Command{
			Name:        "history",
			Description: "Show recent inputs",
			Usage:       "/history [n]",
			Category:    CategorySystem,
			Handler:     handleHistory,
		},
		&Command{
			Name:        "config",
			Description: "Show or change configuration values",
			Usage:       "/config [key] [value]",
			Category:    CategorySystem,
			Handler:     handleConfig,
		},
		&Command{
			Name:        "version",
			Description: "Show client and backend versions",
			Usage:       "/version",
			Category:    CategorySystem,
			Handler:     handleVersion,
		},
	)
}
