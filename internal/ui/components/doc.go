// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the memdeck console.

# Components

  - SuggestionPopup (suggestions.go) - Slash command suggestions above the input
  - StatusBar (statusbar.go) - Backend, session and busy state
  - MarkdownRenderer (markdown.go) - Glamour rendering of result content
  - RenderResult (result.go) - Kind header plus rendered body for one result

Components are plain structs with a View method; the chat model owns their
state and calls View when rendering.
*/
package components
