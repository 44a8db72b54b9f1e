// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jeranaias/memdeck/internal/normalize"
	"github.com/jeranaias/memdeck/internal/session"
)

// =============================================================================
// CONNECTION HANDLERS
// =============================================================================

func handleConnect(ctx context.Context, env *Env, args []string) (Result, error) {
	if env.Backend == nil {
		return Result{}, errNoBackend
	}

	if len(args) > 1 {
		return Result{}, usageErr("/connect [url]", "Too many arguments")
	}
	if len(args) == 1 {
		if err := env.Backend.SetBaseURL(args[0]); err != nil {
			return Result{}, fmt.Errorf("switch backend: %w", err)
		}
		env.Config.Backend.URL = env.Backend.BaseURL()
	}

	url := env.Backend.BaseURL()
	health, err := env.get(ctx, "/health")
	if err != nil {
		return Warning(fmt.Sprintf("Backend set to **%s**, but the health check failed: %s", url, err.Error())), nil
	}
	return Success(fmt.Sprintf("Connected to **%s**\n\n%s", url, health.Content)), nil
}

func handleStatus(ctx context.Context, env *Env, args []string) (Result, error) {
	status := env.Session.GetStatus()

	var b strings.Builder
	b.WriteString("## Status\n\n")
	if env.Backend != nil {
		fmt.Fprintf(&b, "- **Backend:** %s\n", env.Backend.BaseURL())
	}
	fmt.Fprintf(&b, "- **Session:** `%s`\n", session.ShortID(status.SessionID))
	fmt.Fprintf(&b, "- **Duration:** %s\n", session.FormatDuration(status.Duration))
	fmt.Fprintf(&b, "- **Messages:** %d\n", status.MessageCount)
	fmt.Fprintf(&b, "- **History:** %d/%d\n", env.History.Len(), env.History.Capacity())

	health, err := env.get(ctx, "/health")
	if err != nil {
		fmt.Fprintf(&b, "\n**Health:** unreachable (%s)\n", err.Error())
		return Warning(b.String()), nil
	}
	b.WriteString("\n**Health:**\n\n")
	b.WriteString(health.Content)
	return Success(b.String()), nil
}

// =============================================================================
// CHAT HANDLERS
// =============================================================================

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type queryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

type actionRequest struct {
	Instruction string `json:"instruction"`
	SessionID   string `json:"session_id"`
}

type incidentRequest struct {
	Description string `json:"description"`
	SessionID   string `json:"session_id"`
}

func handleChat(ctx context.Context, env *Env, args []string) (Result, error) {
	text := strings.Join(args, " ")
	if text == "" {
		return Result{}, usageErr("/chat <message>", "Message is required")
	}
	return converse(ctx, env, "/chat", text, chatRequest{Message: text, SessionID: env.Session.SessionID()})
}

func handleQuery(ctx context.Context, env *Env, args []string) (Result, error) {
	text := strings.Join(args, " ")
	if text == "" {
		return Result{}, usageErr("/query <question>", "Question is required")
	}
	return converse(ctx, env, "/query", text, queryRequest{Query: text, SessionID: env.Session.SessionID()})
}

func handleAction(ctx context.Context, env *Env, args []string) (Result, error) {
	text := strings.Join(args, " ")
	if text == "" {
		return Result{}, usageErr("/action <instruction>", "Instruction is required")
	}
	return converse(ctx, env, "/action", text, actionRequest{Instruction: text, SessionID: env.Session.SessionID()})
}

func handleIncident(ctx context.Context, env *Env, args []string) (Result, error) {
	text := strings.Join(args, " ")
	if text == "" {
		return Result{}, usageErr("/incident <description>", "Description is required")
	}
	return converse(ctx, env, "/incident", text, incidentRequest{Description: text, SessionID: env.Session.SessionID()})
}

// converse posts one conversational turn and records both sides in the
// session.
func converse(ctx context.Context, env *Env, path, text string, body any) (Result, error) {
	if env.Backend == nil {
		return Result{}, errNoBackend
	}
	env.Session.AddMessage(session.RoleUser, text)

	resp, err := env.Backend.Do(ctx, http.MethodPost, path, body)
	if err != nil {
		return Result{}, err
	}
	content := normalize.Normalize(resp)
	env.Session.AddMessage(session.RoleAssistant, content)
	return Success(content), nil
}

func handleClear(ctx context.Context, env *Env, args []string) (Result, error) {
	id := env.Session.ClearSession()
	return Result{
		Kind:    ResultSuccess,
		Content: "Started new session `" + session.ShortID(id) + "`",
		Action:  ActionClearSession,
	}, nil
}
