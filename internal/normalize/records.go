// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package normalize

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// NoRecordsMessage is rendered for an empty record collection.
const NoRecordsMessage = "_No records found._"

// collectionKeys are the object keys that hold record arrays, in lookup order.
var collectionKeys = []string{"results", "checkpoints", "documents"}

// renderRecordCollection handles objects that wrap a record array. The first
// non-empty array of objects wins; the empty-collection message is used only
// when every collection key present holds an empty array.
func renderRecordCollection(obj map[string]any) (string, bool) {
	present, empty := 0, 0
	for _, key := range collectionKeys {
		items, ok := obj[key].([]any)
		if !ok {
			continue
		}
		present++
		if len(items) == 0 {
			empty++
			continue
		}
		if out, ok := renderRecords(titleFromKey(key), items, obj); ok {
			return out, true
		}
	}
	if present > 0 && present == empty {
		return NoRecordsMessage, true
	}
	return "", false
}

// renderRecords renders an array whose elements are all objects. Records
// carrying a thread id render as a checkpoint table, everything else as
// numbered sections.
func renderRecords(title string, items []any, envelope map[string]any) (string, bool) {
	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			return "", false
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return NoRecordsMessage, true
	}

	heading := "## " + title + " (" + strconv.Itoa(len(records))
	if envelope != nil {
		if total, ok := toFloat(envelope["total"]); ok && int(total) > len(records) {
			heading += " of " + strconv.Itoa(int(total))
		}
	}
	heading += ")"

	if isCheckpointSet(records) {
		return heading + "\n\n" + checkpointTable(records), true
	}
	return heading + "\n\n" + recordSections(records), true
}

func isCheckpointSet(records []map[string]any) bool {
	for _, rec := range records {
		if _, ok := rec["thread_id"]; ok {
			return true
		}
	}
	return false
}

func checkpointTable(records []map[string]any) string {
	var b strings.Builder
	b.WriteString("| Thread | Checkpoint | Created | Size |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, rec := range records {
		size := ""
		if raw, ok := firstField(rec, "size", "size_bytes", "bytes"); ok {
			if n, ok := toFloat(raw); ok {
				size = FormatBytes(n)
			}
		}
		b.WriteString("| ")
		b.WriteString(tableCell(firstString(rec, "thread_id")))
		b.WriteString(" | ")
		b.WriteString(tableCell(firstString(rec, "checkpoint_id", "id")))
		b.WriteString(" | ")
		b.WriteString(tableCell(timestamp(rec)))
		b.WriteString(" | ")
		if size == "" {
			b.WriteString("-")
		} else {
			b.WriteString(size)
		}
		b.WriteString(" |\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// recordTitleKeys name the field used as a section heading.
var recordTitleKeys = []string{"title", "name", "filename", "source", "id", "document_id"}

// recordContentKeys name the field shown as the record body.
var recordContentKeys = []string{"content", "text", "snippet", "summary", "page_content", "body"}

func recordSections(records []map[string]any) string {
	var b strings.Builder
	for i, rec := range records {
		if i > 0 {
			b.WriteString("\n\n")
		}

		title := firstString(rec, recordTitleKeys...)
		if title == "" {
			title = "Item " + strconv.Itoa(i+1)
		}
		b.WriteString("### ")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(EscapeMarkdown(title))

		if meta := recordMeta(rec, title); meta != "" {
			b.WriteString("\n_")
			b.WriteString(meta)
			b.WriteString("_")
		}

		if content := firstString(rec, recordContentKeys...); content != "" {
			b.WriteString("\n\n")
			b.WriteString(excerpt(content))
			continue
		}

		// No body field: list the remaining scalar fields.
		if fields := remainingFields(rec); fields != "" {
			b.WriteString("\n\n")
			b.WriteString(fields)
		}
	}
	return b.String()
}

// recordMeta builds the italic metadata line under a record heading.
func recordMeta(rec map[string]any, title string) string {
	var parts []string
	if id := firstString(rec, "id", "document_id"); id != "" && id != title {
		parts = append(parts, "id: "+EscapeMarkdown(id))
	}
	if raw, ok := firstField(rec, "score", "similarity", "relevance"); ok {
		if f, ok := toFloat(raw); ok {
			parts = append(parts, "score: "+percent(f))
		}
	}
	if raw, ok := firstField(rec, "size", "size_bytes", "bytes"); ok {
		if n, ok := toFloat(raw); ok {
			parts = append(parts, FormatBytes(n))
		}
	}
	if ts := timestamp(rec); ts != "" {
		parts = append(parts, EscapeMarkdown(ts))
	}
	return strings.Join(parts, " · ")
}

// skipFieldKeys are already shown in the heading or metadata line.
var skipFieldKeys = map[string]bool{
	"title": true, "name": true, "filename": true, "source": true,
	"id": true, "document_id": true, "score": true, "similarity": true,
	"relevance": true, "size": true, "size_bytes": true, "bytes": true,
	"created_at": true, "timestamp": true, "updated_at": true,
}

func remainingFields(rec map[string]any) string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		if !skipFieldKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		val := scalar(rec[k])
		if val == "" {
			continue
		}
		lines = append(lines, "- **"+EscapeMarkdown(k)+":** "+excerpt(val))
	}
	return strings.Join(lines, "\n")
}

// timestamp renders created_at/timestamp. Numeric values are unix seconds.
func timestamp(rec map[string]any) string {
	raw, ok := firstField(rec, "created_at", "timestamp", "updated_at")
	if !ok {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	if f, ok := toFloat(raw); ok && f > 0 {
		return time.Unix(int64(f), 0).UTC().Format("2006-01-02 15:04:05")
	}
	return scalar(raw)
}
