// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mcp-console/internal/telemetry"
	"github.com/jeranaias/mcp-console/internal/ui/styles"
	"github.com/jeranaias/mcp-console/internal/util"
)

// =============================================================================
// SECURITY PANEL
// =============================================================================

// SecurityRows returns the component rows of the security panel as
// (name, status, detail).
func SecurityRows(s telemetry.SecurityState) [][3]string {
	return [][3]string{
		{"Quantum Encryption", s.QuantumStatus, "checked " + s.LastChecked.Format("15:04:05")},
		{"Neural Firewall", s.FirewallStatus, fmtNumber(s.BlockedAttempts) + " blocked"},
		{"Authentication", s.AuthStatus, util.IntToString(s.Sessions) + " sessions"},
		{"Anomaly Detection", s.AnomalyStatus, "scan " + s.LastScan.Format("15:04:05")},
	}
}

// RenderSecurity renders the security panel width columns wide.
func RenderSecurity(theme *styles.Theme, s telemetry.SecurityState, width int) string {
	inner := width - theme.Panel.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	overallColor := styles.LevelColor(telemetry.StatusLevel(s.Overall))
	lines := []string{
		kv(theme, "Overall", lipgloss.NewStyle().Foreground(overallColor).Bold(true).Render(strings.ToUpper(s.Overall)), inner),
	}

	for _, row := range SecurityRows(s) {
		color := styles.LevelColor(telemetry.StatusLevel(row[1]))
		status := lipgloss.NewStyle().Foreground(color).Render(row[1])
		lines = append(lines, kv(theme, util.TruncateWidth(row[0], inner/2), status, inner))
		lines = append(lines, theme.Muted.Render("  "+util.TruncateWidth(row[2], inner-2)))
	}
	return panel(theme, "Security Systems", strings.Join(lines, "\n"), width)
}
