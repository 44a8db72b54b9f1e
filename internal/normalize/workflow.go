// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package normalize

import (
	"sort"
	"strconv"
	"strings"
)

// WorkflowHeading starts every workflow summary render.
const WorkflowHeading = "## Workflow Summary"

// workflowContainers hold the nested execution report, in lookup order.
var workflowContainers = []string{"result", "workflow_result", "execution"}

// workflowMarkers identify a map as an execution report.
var workflowMarkers = []string{"steps", "execution_path", "phases", "phase", "timing", "execution_time", "duration"}

// renderWorkflow handles {result: {...steps/timing...}} execution reports. The
// nested report may arrive as a JSON-encoded string.
func renderWorkflow(obj map[string]any) (string, bool) {
	var report map[string]any
	for _, key := range workflowContainers {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		inner, ok := parseEmbedded(raw).(map[string]any)
		if !ok || !hasAny(inner, workflowMarkers) {
			continue
		}
		report = inner
		break
	}
	if report == nil {
		return "", false
	}

	var sections []string
	sections = append(sections, WorkflowHeading)

	if req := firstString(report, "request", "query", "instruction", "description", "input"); req != "" {
		sections = append(sections, "### Request\n\n"+excerpt(req))
	} else if req := firstString(obj, "request", "query", "instruction", "description", "input"); req != "" {
		sections = append(sections, "### Request\n\n"+excerpt(req))
	}

	if status := workflowStatus(obj, report); status != "" {
		sections = append(sections, "### Status\n\n"+status)
	}

	if path := executionPath(report); path != "" {
		sections = append(sections, "### Execution Path\n\n"+path)
	}

	if timing := workflowTiming(report); timing != "" {
		sections = append(sections, "### Timing\n\n"+timing)
	}

	if findings := keyFindings(report); findings != "" {
		sections = append(sections, "### Key Findings\n\n"+findings)
	}

	return strings.Join(sections, "\n\n"), true
}

func hasAny(obj map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := obj[k]; ok {
			return true
		}
	}
	return false
}

func workflowStatus(outer, report map[string]any) string {
	if s := firstString(report, "status", "state"); s != "" {
		return s
	}
	if s := firstString(outer, "status"); s != "" {
		return s
	}
	for _, m := range []map[string]any{report, outer} {
		if ok, present := m["success"].(bool); present {
			if ok {
				return "success"
			}
			return "failed"
		}
	}
	return ""
}

// executionPath renders steps, execution_path or phases as a numbered list.
// A bare "phase" value renders as a single line.
func executionPath(report map[string]any) string {
	raw, ok := firstField(report, "execution_path", "steps", "phases")
	if !ok {
		if phase := firstString(report, "phase"); phase != "" {
			return "Current phase: " + EscapeMarkdown(phase)
		}
		return ""
	}

	steps, ok := parseEmbedded(raw).([]any)
	if !ok {
		// Unparseable or not a list: show it as is.
		return "`" + strings.ReplaceAll(scalar(raw), "`", "'") + "`"
	}
	if len(steps) == 0 {
		return "_No steps recorded._"
	}

	var b strings.Builder
	for i, step := range steps {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(stepLine(parseEmbedded(step)))
	}
	return b.String()
}

func stepLine(step any) string {
	m, ok := step.(map[string]any)
	if !ok {
		return EscapeMarkdown(scalar(step))
	}
	name := firstString(m, "name", "step", "phase", "node", "agent", "action")
	if name == "" {
		name = scalar(m)
	}
	line := "**" + EscapeMarkdown(name) + "**"
	var extra []string
	if s := firstString(m, "status", "state"); s != "" {
		extra = append(extra, EscapeMarkdown(s))
	}
	if d, ok := firstField(m, "duration", "elapsed", "execution_time"); ok {
		extra = append(extra, seconds(d))
	}
	if len(extra) > 0 {
		line += " (" + strings.Join(extra, ", ") + ")"
	}
	return line
}

// workflowTiming renders the timing map as bullets, plus any top-level
// execution_time or duration.
func workflowTiming(report map[string]any) string {
	var lines []string

	if raw, ok := report["timing"]; ok {
		switch t := parseEmbedded(raw).(type) {
		case map[string]any:
			keys := make([]string, 0, len(t))
			for k := range t {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				lines = append(lines, "- "+titleFromKey(k)+": "+seconds(t[k]))
			}
		default:
			lines = append(lines, "- "+EscapeMarkdown(scalar(t)))
		}
	}

	if raw, ok := firstField(report, "execution_time", "duration"); ok {
		lines = append(lines, "- Total: "+seconds(raw))
	}
	return strings.Join(lines, "\n")
}

// seconds renders a numeric duration with an "s" suffix. Non-numeric values
// are shown as they came.
func seconds(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', 2, 64) + "s"
	}
	return EscapeMarkdown(scalar(v))
}

// keyFindings renders findings lists as bullets and summary text verbatim.
func keyFindings(report map[string]any) string {
	raw, ok := firstField(report, "key_findings", "findings", "summary", "answer", "response", "output")
	if !ok {
		return ""
	}
	switch f := parseEmbedded(raw).(type) {
	case []any:
		if len(f) == 0 {
			return ""
		}
		lines := make([]string, 0, len(f))
		for _, item := range f {
			lines = append(lines, "- "+excerpt(scalar(item)))
		}
		return strings.Join(lines, "\n")
	case string:
		return strings.TrimSpace(f)
	default:
		return Normalize(f)
	}
}
