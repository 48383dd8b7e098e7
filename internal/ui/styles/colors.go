// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the mcp dashboard.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mcp-console/internal/commands"
	"github.com/jeranaias/mcp-console/internal/telemetry"
)

// =============================================================================
// BRAND COLORS
// =============================================================================

// MCPBlue - Primary brand color, headers, prompt
var MCPBlue = lipgloss.AdaptiveColor{Light: "#0369A1", Dark: "#38BDF8"}

// MCPBlueDeep - Panel borders and header background
var MCPBlueDeep = lipgloss.AdaptiveColor{Light: "#BAE6FD", Dark: "#0C4A6E"}

// Cyan - Info responses, commands, highlights
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Success - success responses, healthy metrics
var Success = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Warning - warning responses, metrics at 60% and above
var Warning = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Danger - error responses, metrics at 80% and above
var Danger = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0B1120"}

// SurfaceDim - Header, footer and toast background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F1F5F9", Dark: "#0F172A"}

// Overlay - Borders, separators, empty bar segments
var Overlay = lipgloss.AdaptiveColor{Light: "#CBD5E1", Dark: "#1E293B"}

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#0F172A", Dark: "#E2E8F0"}

// TextSecondary - Labels
var TextSecondary = lipgloss.AdaptiveColor{Light: "#475569", Dark: "#94A3B8"}

// TextMuted - Hints, timestamps
var TextMuted = lipgloss.AdaptiveColor{Light: "#94A3B8", Dark: "#64748B"}

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicatorSet contains text indicators for status states so status is
// readable without colour.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
	Pending string
	Active  string
}

// StatusIndicators are ASCII-only for maximum compatibility.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
	Pending: "[ ]",
	Active:  "[*]",
}

// StatusColor returns the colour of a response status.
func StatusColor(s commands.Status) lipgloss.AdaptiveColor {
	switch s {
	case commands.StatusSuccess:
		return Success
	case commands.StatusWarning:
		return Warning
	case commands.StatusError:
		return Danger
	default:
		return Cyan
	}
}

// StatusIndicator returns the indicator of a response status.
func StatusIndicator(s commands.Status) string {
	switch s {
	case commands.StatusSuccess:
		return StatusIndicators.Success
	case commands.StatusWarning:
		return StatusIndicators.Warning
	case commands.StatusError:
		return StatusIndicators.Error
	default:
		return StatusIndicators.Info
	}
}

// LevelColor returns the colour of a metric level.
func LevelColor(l telemetry.Level) lipgloss.AdaptiveColor {
	switch l {
	case telemetry.LevelDanger:
		return Danger
	case telemetry.LevelWarning:
		return Warning
	default:
		return Success
	}
}

// =============================================================================
// RENDER HELPERS
// =============================================================================

// RenderStatus renders message prefixed with the indicator of s in its colour.
func RenderStatus(s commands.Status, message string) string {
	return lipgloss.NewStyle().
		Foreground(StatusColor(s)).
		Bold(s.IsAlert()).
		Render(StatusIndicator(s) + " " + message)
}

// RenderSuccess renders a success line for CLI output.
func RenderSuccess(message string) string {
	return RenderStatus(commands.StatusSuccess, message)
}

// RenderError renders an error line for CLI output.
func RenderError(message string) string {
	return RenderStatus(commands.StatusError, message)
}

// RenderWarning renders a warning line for CLI output.
func RenderWarning(message string) string {
	return RenderStatus(commands.StatusWarning, message)
}
