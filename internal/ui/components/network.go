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
// NETWORK RING
// =============================================================================

// nodeGlyph returns the single-letter type marker of a node.
func nodeGlyph(kind string) string {
	switch kind {
	case "server":
		return "S"
	case "gateway":
		return "G"
	case "security":
		return "#"
	case "storage":
		return "D"
	default:
		return "o"
	}
}

// NetworkSummary counts nodes, warnings and links.
func NetworkSummary(nodes []telemetry.Node) (total, warnings, links int) {
	for _, n := range nodes {
		if !n.Healthy() {
			warnings++
		}
		links += len(n.Connections)
	}
	return len(nodes), warnings, links
}

// RenderNetwork renders the nodes as a ring wrapped to width: every node is
// joined to the next by a link, the last back to the first.
func RenderNetwork(theme *styles.Theme, nodes []telemetry.Node, width int) string {
	inner := width - theme.Panel.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	okStyle := lipgloss.NewStyle().Foreground(styles.Success)
	warnStyle := lipgloss.NewStyle().Foreground(styles.Warning).Bold(true)
	link := theme.Muted.Render("─")

	var rows []string
	var row strings.Builder
	rowWidth := 0
	for i, n := range nodes {
		name := strings.TrimPrefix(n.Name, "Node ")
		style := okStyle
		if !n.Healthy() {
			style = warnStyle
		}
		cell := style.Render(nodeGlyph(n.Type) + name)
		cellWidth := lipgloss.Width(cell) + 1

		if rowWidth+cellWidth > inner && rowWidth > 0 {
			rows = append(rows, row.String())
			row.Reset()
			rowWidth = 0
		}
		row.WriteString(cell)
		if i < len(nodes)-1 {
			row.WriteString(link)
		} else {
			row.WriteString(theme.Muted.Render("↺"))
		}
		rowWidth += cellWidth
	}
	if row.Len() > 0 {
		rows = append(rows, row.String())
	}

	total, warnings, links := NetworkSummary(nodes)
	summary := theme.Label.Render(util.IntToString(total)+" nodes  ") +
		warnStyle.Render(util.IntToString(warnings)+" warning") +
		theme.Label.Render("  "+util.IntToString(links)+" links")
	rows = append(rows, "", summary)

	return panel(theme, "Network Topology", strings.Join(rows, "\n"), width)
}
