// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the interactive console view for memdeck.

The package implements the terminal interface on Bubble Tea. Input is handed
to a commands.Interpreter; results are rendered with glamour into a
scrolling transcript.

# Key Components

## Model (model.go)

The Model struct holds the transcript, the text input, the suggestion state
and the busy flag. Only one submission runs at a time; while it runs the
input is disabled and the status bar shows a spinner.

## Update Loop (update.go)

Keyboard handling follows one contract:
  - Up/Down move the suggestion selection when the list is visible,
    otherwise they walk the input history
  - Tab and Enter accept the selected suggestion when the list is visible
  - Escape closes the list without touching the input
  - Enter with no visible list submits the input

ConfigReloadedMsg applies a changed config file, including a new backend
URL, once no submission is running.

## View Rendering (view.go)

Header, transcript viewport, suggestion popup, input box and status bar,
stacked vertically.
*/
package chat
