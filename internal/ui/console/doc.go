// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package console provides the full-screen MCP dashboard.
//
// The dashboard shows a header with clock and recording state, the system
// status cards, the command console, and side panels for resource
// allocation, security and the network ring. Lines typed at the console go
// to a session.Manager on a command goroutine; playback entries and task
// notifications arrive as messages sent by Run.
//
// # Key Types
//
//   - Model: the bubbletea model
//   - Options: session, monitor, config and export settings
//   - KeyMap: keyboard bindings
//
// # Usage
//
//	path, _ := config.ResolvePath()
//	err := console.Run(ctx, console.Options{
//	    Config:    cfg,
//	    Session:   sess,
//	    WatchPath: path,
//	})
package console
