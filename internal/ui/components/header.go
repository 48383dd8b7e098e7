// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mcp-console/internal/ui/styles"
	"github.com/jeranaias/mcp-console/internal/util"
)

// =============================================================================
// HEADER
// =============================================================================

// Header is the top bar: brand, session, recording state and clock.
type Header struct {
	theme *styles.Theme
	width int

	SessionID string
	Uptime    string
	Recording string // active macro name, "" when idle
	Activity  string // playback indicator, "" when idle
}

// NewHeader creates a header.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{theme: theme}
}

// SetWidth sets the header width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// View renders the header for now.
func (h *Header) View(now time.Time) string {
	left := h.theme.HeaderTitle.Render("MCP") + " " + h.theme.Label.Render("Master Control Program")
	if h.SessionID != "" {
		left += h.theme.Muted.Render("  " + h.SessionID)
	}

	var right []string
	if h.Recording != "" {
		right = append(right, lipgloss.NewStyle().Foreground(styles.Danger).Bold(true).
			Render("● REC "+util.TruncateWidth(h.Recording, 16)))
	}
	if h.Activity != "" {
		right = append(right, lipgloss.NewStyle().Foreground(styles.Cyan).Render(h.Activity))
	}
	if h.Uptime != "" {
		right = append(right, h.theme.Muted.Render("up "+h.Uptime))
	}
	right = append(right, h.theme.HeaderClock.Render(now.Format("15:04:05")))
	rightText := strings.Join(right, "  ")

	inner := h.width - h.theme.Header.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(rightText)
	if gap < 1 {
		// Narrow terminals drop the descriptive part first.
		left = h.theme.HeaderTitle.Render("MCP")
		gap = inner - lipgloss.Width(left) - lipgloss.Width(rightText)
		if gap < 1 {
			gap = 1
		}
	}
	return h.theme.Header.Width(max(inner, 0) + h.theme.Header.GetHorizontalPadding()).
		Render(left + strings.Repeat(" ", gap) + rightText)
}
