// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package normalize converts backend JSON payloads into display markdown.
//
// Backend endpoints answer in several shapes: plain strings, memory search
// results, record collections (documents, checkpoints), workflow execution
// reports, and small status objects. Normalize detects the shape with an
// ordered list of rules and renders consistent markdown for each.
//
// # Rule Order
//
// The first matching rule wins. A payload that satisfies more than one rule is
// rendered by the earliest:
//
//  1. string: returned unchanged
//  2. object with a "memories" array: ranked memory list
//  3. array of objects, or object with a "results", "checkpoints" or
//     "documents" array of objects: table or per-item sections
//  4. object whose "result" carries step/phase/timing fields: workflow summary
//  5. object with "result", "message" or "status": that field's value
//  6. anything else: indented JSON in a fenced code block
//
// Normalize never panics. Sub-fields that fail to parse fall back to their raw
// form instead of aborting the render.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Normalize renders v as markdown. v is usually the result of decoding a JSON
// response into an interface{} (maps, slices, float64, string, bool, nil).
func Normalize(v any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("%v", v)
		}
	}()

	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if s, ok := renderMemories(val); ok {
			return s
		}
		if s, ok := renderRecordCollection(val); ok {
			return s
		}
		if s, ok := renderWorkflow(val); ok {
			return s
		}
		if s, ok := renderStatusField(val); ok {
			return s
		}
	case []any:
		if s, ok := renderRecords("Results", val, nil); ok {
			return s
		}
	}
	return renderJSON(v)
}

// renderStatusField returns the first of result, message or status. String
// values are returned verbatim; anything else is normalized recursively.
func renderStatusField(obj map[string]any) (string, bool) {
	for _, key := range []string{"result", "message", "status"} {
		val, ok := obj[key]
		if !ok {
			continue
		}
		if s, ok := val.(string); ok {
			return s, true
		}
		return Normalize(val), true
	}
	return "", false
}

// renderJSON pretty-prints v inside a fenced json block.
func renderJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "```\n" + fmt.Sprintf("%v", v) + "\n```"
	}
	return "```json\n" + string(data) + "\n```"
}

// =============================================================================
// VALUE HELPERS
// =============================================================================

// firstField returns the first present, non-nil value among keys.
func firstField(obj map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// firstString returns the first field among keys rendered as a scalar string.
func firstString(obj map[string]any, keys ...string) string {
	v, ok := firstField(obj, keys...)
	if !ok {
		return ""
	}
	return scalar(v)
}

// toFloat converts JSON numbers (and numeric strings) to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// scalar renders a value compactly on one line. Integral floats print without
// an exponent or trailing zeros.
func scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// percent renders a 0-1 score as a rounded percentage.
func percent(score float64) string {
	return strconv.Itoa(int(math.Round(score*100))) + "%"
}

// parseEmbedded decodes a string that itself holds JSON. Anything that does
// not look like an object or array, or fails to decode, is returned as is.
func parseEmbedded(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return v
	}
	var parsed any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return v
	}
	return parsed
}
