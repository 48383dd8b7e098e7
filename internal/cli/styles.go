// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mcp-console/internal/commands"
	"github.com/jeranaias/mcp-console/internal/ui/styles"
)

// init configures lipgloss for stdout: NO_COLOR, FORCE_COLOR and piping
// are honoured by every command.
func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES FOR ALL CLI COMMANDS
// =============================================================================

var (
	// TitleStyle is used for command titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.MCPBlue)

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Width(20)

	// PromptStyle renders the echoed prompt in front of commands
	PromptStyle = lipgloss.NewStyle().
			Foreground(styles.MCPBlue).
			Bold(true)

	// CommandStyle renders echoed command lines
	CommandStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimary)

	// DimStyle is used for secondary information and hints
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	// SystemStyle marks console notices that are not command responses
	SystemStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Italic(true)
)

// =============================================================================
// HELPERS
// =============================================================================

// RenderLabel renders a label padded to the label column.
func RenderLabel(label string) string {
	return LabelStyle.Render(label)
}

// RenderSeparator renders a horizontal rule width cells wide.
func RenderSeparator(width int) string {
	if width <= 0 {
		width = 70
	}
	return DimStyle.Render(strings.Repeat("─", width))
}

// RenderResponse renders "[OK] message" coloured by status.
func RenderResponse(resp commands.Response) string {
	return styles.RenderStatus(resp.Status, resp.Message)
}
