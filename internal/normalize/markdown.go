// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package normalize

import (
	"fmt"
	"strings"

	"github.com/jeranaias/memdeck/internal/util"
)

const (
	// ContentBudget is the number of runes of record content shown before
	// the text is cut and an ellipsis appended.
	ContentBudget = 300

	bytesPerKB = 1024
	bytesPerMB = 1024 * 1024
)

// markdownEscaper backslash-escapes characters the renderer would otherwise
// treat as markup. Backslash itself comes first so escapes aren't doubled.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
)

// EscapeMarkdown escapes markdown-significant characters in s.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// excerpt cuts s to ContentBudget runes, escapes it, and appends "..." when
// anything was cut. Escaping happens after the cut so an escape sequence is
// never split.
func excerpt(s string) string {
	s = strings.TrimSpace(s)
	if util.RuneLen(s) <= ContentBudget {
		return EscapeMarkdown(s)
	}
	return EscapeMarkdown(util.TruncateRunesNoEllipsis(s, ContentBudget)) + "..."
}

// FormatBytes renders a byte count in KB, or in MB from one mebibyte up.
func FormatBytes(n float64) string {
	if n >= bytesPerMB {
		return fmt.Sprintf("%.2f MB", n/bytesPerMB)
	}
	return fmt.Sprintf("%.2f KB", n/bytesPerKB)
}

// tableCell makes a value safe inside a markdown table cell.
func tableCell(s string) string {
	if s == "" {
		return "-"
	}
	s = EscapeMarkdown(strings.ReplaceAll(s, "\n", " "))
	return strings.ReplaceAll(s, "|", `\|`)
}

// titleFromKey turns a payload key such as "checkpoints" into a heading.
func titleFromKey(key string) string {
	if key == "" {
		return ""
	}
	key = strings.ReplaceAll(key, "_", " ")
	return strings.ToUpper(key[:1]) + key[1:]
}
