// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the MCP command registry and interpreter.
//
// A raw console line is normalized, split on whitespace and resolved through
// the Registry by canonical name or alias. The resolved Category selects a
// Handler from the interpreter's table; unresolved lines produce a warning
// carrying suggestions from the Completer.
//
// # Key Types
//
//   - Registry: Static catalog of Definitions with unambiguous lookup
//   - Response: Message, Status and optional Payload of one evaluation
//   - Completer: Suggestion engine over the registry and history
//   - Interpreter: Category dispatch table and the unknown-command fallback
//   - CompletionState: Tab cycling state for front ends
//
// # Built-in Commands
//
//   - status (health, diagnostics): system status
//   - allocate (resource, assign): resource allocation
//   - security (secure, threat, protection): security systems
//   - network (connect, topology, route): network topology
//   - help (?, guide, docs): command reference
//   - macro (script, automate, batch): macro recording and playback
//
// # Usage
//
//	interp := commands.NewInterpreter(commands.NewRegistry())
//	resp := interp.Evaluate(ctx, "status network", history)
//	if resp.Status.IsAlert() {
//	    notify(resp.Message)
//	}
//
//	interp.Suggest("st", history) // ["status"]
package commands
