// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the memdeck console.

All colors use Lip Gloss AdaptiveColor so one palette serves dark and light
terminals.

# Color System (colors.go)

  - Purple - Primary accent for agent output and borders
  - Cyan - Brand color for commands and user input
  - Emerald - Success results and a ready backend
  - Amber - Warnings and the busy indicator
  - Rose - Errors
  - Blue - Informational results

Result kinds are also marked with ASCII indicators ([OK], [X], [!], [i]) so
they stay readable without color.

# Theme System (theme.go)

	theme := styles.NewTheme(cfg.UI.Theme)
	style := theme.GlamourStyle(cfg.UI.GlamourStyle)

NewTheme honours "dark" and "light" directly and asks the terminal for
"auto".
*/
package styles
