// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the state of one console session.
//
// A Manager holds the command interpreter, the history log and recall cursor,
// the macro recorder and library, and the playback runner. Every front end
// (TUI dashboard, line REPL, exec mode) submits lines through Submit, so
// recording capture, history appends and playback cancellation behave the
// same everywhere. Nothing is stored in package variables; two managers never
// interfere.
//
// # Key Types
//
//   - Manager: Session state and the Submit entry point
//   - Entry: An evaluated line with its origin (user or playback)
//   - Config: Step delay, nesting limit, recall limit and preset macros
//   - Status: Snapshot for status bars
//
// # Usage
//
//	sess := session.NewManager(session.DefaultConfig())
//	defer sess.Close()
//
//	sess.OnPlayback(func(e session.Entry) { program.Send(entryMsg(e)) })
//	entry, err := sess.Submit(ctx, "status network")
//	if errors.Is(err, session.ErrBlankLine) {
//	    return
//	}
package session
