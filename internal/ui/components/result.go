// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jeranaias/memdeck/internal/commands"
	"github.com/jeranaias/memdeck/internal/ui/styles"
)

// ResultLabel returns the indicator and label for a result kind.
func ResultLabel(theme *styles.Theme, kind commands.ResultKind) string {
	switch kind {
	case commands.ResultError:
		return theme.Error.Render(styles.StatusIndicators.Error + " Error")
	case commands.ResultWarning:
		return theme.Warning.Render(styles.StatusIndicators.Warning + " Warning")
	case commands.ResultInfo:
		return theme.Info.Render(styles.StatusIndicators.Info + " Info")
	default:
		return theme.Success.Render(styles.StatusIndicators.Success)
	}
}

// RenderResult renders one result: its kind label followed by the
// markdown body.
func RenderResult(theme *styles.Theme, md *MarkdownRenderer, res commands.Result) string {
	return ResultLabel(theme, res.Kind) + "\n" + md.Render(res.Content)
}

// RenderInput renders a submitted input line.
func RenderInput(theme *styles.Theme, input string) string {
	return theme.UserPrompt.Render("> ") + theme.UserText.Render(input)
}
