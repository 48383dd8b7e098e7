// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"time"

	"github.com/jeranaias/mcp-console/internal/config"
	"github.com/jeranaias/mcp-console/internal/session"
	"github.com/jeranaias/mcp-console/internal/tasks"
)

// =============================================================================
// CONSOLE MESSAGES
// =============================================================================

// SubmitResultMsg carries the outcome of a line typed at the console.
type SubmitResultMsg struct {
	Line  string
	Entry session.Entry
	Err   error
}

// PlaybackEntryMsg carries a line evaluated by macro playback.
type PlaybackEntryMsg struct {
	Entry session.Entry
}

// PlaybackNotifyMsg carries a playback task state change.
type PlaybackNotifyMsg struct {
	Notification tasks.TaskNotification
}

// =============================================================================
// DASHBOARD MESSAGES
// =============================================================================

// StatusTickMsg refreshes the system status cards.
type StatusTickMsg struct{ Time time.Time }

// ResourceTickMsg refreshes the resource allocation bars.
type ResourceTickMsg struct{ Time time.Time }

// SecurityTickMsg advances the security panel.
type SecurityTickMsg struct{ Time time.Time }

// =============================================================================
// CONFIG AND FILE MESSAGES
// =============================================================================

// ConfigReloadMsg is sent when the config file changed on disk. Config is
// nil when the new file could not be loaded.
type ConfigReloadMsg struct {
	Config *config.Config
	Err    error
}

// ExportDoneMsg reports a finished transcript export.
type ExportDoneMsg struct {
	Path string
	Err  error
}
