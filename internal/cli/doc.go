// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the mcp command tree.
//
// Subcommands:
//
//	mcp                  full-screen dashboard (needs a terminal)
//	mcp console          line console with history and Tab completion
//	mcp exec LINE...     evaluate lines from args, --file or a pipe
//	mcp commands [NAME]  command reference, or help for one command
//	mcp suggest PARTIAL  completions for partial input
//	mcp config ...       show, get, set, path, init, keys
//	mcp version          build information
//
// Commands that take --json print a JSONResponse envelope.
package cli
