// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package normalize

import (
	"strconv"
	"strings"
)

const (
	// MemoryResultsHeading starts every non-empty memory search render.
	MemoryResultsHeading = "## Memory Search Results"
	// NoMemoriesHeading starts the render of an empty memory search.
	NoMemoriesHeading = "### No memories found"
)

// renderMemories renders {success, memories: [...]} search payloads.
func renderMemories(obj map[string]any) (string, bool) {
	raw, ok := obj["memories"]
	if !ok {
		return "", false
	}
	memories, ok := raw.([]any)
	if !ok {
		return "", false
	}

	query := firstString(obj, "query", "search_query")

	if len(memories) == 0 {
		if success, ok := obj["success"].(bool); ok && !success {
			if msg := firstString(obj, "error", "message", "detail"); msg != "" {
				return "**Memory search failed:** " + msg, true
			}
		}
		return renderNoMemories(query), true
	}

	var b strings.Builder
	b.WriteString(MemoryResultsHeading)
	b.WriteString(" (")
	b.WriteString(strconv.Itoa(len(memories)))
	b.WriteString(")\n")
	if query != "" {
		b.WriteString("\nQuery: _")
		b.WriteString(EscapeMarkdown(query))
		b.WriteString("_\n")
	}

	for i, item := range memories {
		b.WriteString("\n### ")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")

		mem, ok := item.(map[string]any)
		if !ok {
			// Bare strings show up from older backends.
			b.WriteString("memory\n\n")
			writeQuoted(&b, scalar(item))
			continue
		}

		if score, ok := firstField(mem, "score", "similarity", "confidence", "relevance"); ok {
			if f, ok := toFloat(score); ok {
				b.WriteString(percent(f))
				b.WriteString(" confidence · ")
			}
		}
		memType := firstString(mem, "memory_type", "type", "category")
		if memType == "" {
			memType = "memory"
		}
		b.WriteString(memType)
		b.WriteString("\n\n")

		body := firstString(mem, "content", "text", "memory", "body")
		if body == "" {
			body = scalar(mem)
		}
		writeQuoted(&b, body)

		var meta []string
		if id := firstString(mem, "id", "memory_id"); id != "" {
			meta = append(meta, "id: "+id)
		}
		if created := firstString(mem, "created_at", "timestamp"); created != "" {
			meta = append(meta, "stored: "+created)
		}
		if len(meta) > 0 {
			b.WriteString("\n_")
			b.WriteString(EscapeMarkdown(strings.Join(meta, " · ")))
			b.WriteString("_\n")
		}
	}

	return strings.TrimRight(b.String(), "\n"), true
}

func renderNoMemories(query string) string {
	var b strings.Builder
	b.WriteString(NoMemoriesHeading)
	b.WriteString("\n\n")
	if query != "" {
		b.WriteString("Nothing matched _")
		b.WriteString(EscapeMarkdown(query))
		b.WriteString("_.\n\n")
	}
	b.WriteString("Tips:\n")
	b.WriteString("- Try broader or different keywords\n")
	b.WriteString("- Check the spelling of key terms\n")
	b.WriteString("- Store new knowledge with `/memory store <text>`\n")
	b.WriteString("- Run `/memory stats` to confirm memories exist")
	return b.String()
}

// writeQuoted writes s as a markdown blockquote, one "> " per line.
func writeQuoted(b *strings.Builder, s string) {
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		b.WriteString("> ")
		b.WriteString(line)
		b.WriteString("\n")
	}
}
