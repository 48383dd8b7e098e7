// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package macro implements macro recording, the saved-macro library and the
// "macro" command sub-protocol.
//
// While a recording is active every submitted line is evaluated normally and
// also captured verbatim. "macro stop" saves the captured lines as a Macro
// with the description "Macro with N commands"; an empty capture saves
// nothing. "macro run <name>" hands the macro to a Player, which resubmits
// each line through the interpreter.
//
// # Key Types
//
//   - Recorder: Idle/Recording state machine with the captured lines
//   - Library: Saved macros; lookups return the latest with a name
//   - Controller: The Automation category handler
//   - Player: Playback engine supplied by the session
//
// # Usage
//
//	ctrl := macro.NewController(registry, macro.NewRecorder(), macro.NewLibrary(), 8)
//	ctrl.SetPlayer(player)
//	interp.SetHandler(commands.CategoryAutomation, ctrl.Handle)
//
//	ctrl.Observe(line) // before evaluating each submitted line
package macro
