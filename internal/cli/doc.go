// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the memdeck command line.
//
// With no subcommand memdeck starts the full-screen console. The other
// front ends share the same interpreter:
//
//	memdeck                       # full-screen console
//	memdeck repl                  # line-mode console with tab completion
//	memdeck exec /memory stats    # one input, result on stdout
//	memdeck config show           # effective configuration as TOML
//
// The persistent --config, --url and --verbose flags apply to every
// subcommand.
package cli
