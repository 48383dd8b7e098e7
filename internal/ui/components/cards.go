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
// STATUS CARDS
// =============================================================================

// Card is one status tile: a title, a headline value and detail rows.
type Card struct {
	Title    string
	Headline string
	Level    telemetry.Level
	Rows     [][2]string
}

// StatusCards turns a system status sample into the five dashboard cards.
func StatusCards(s telemetry.SystemStatus) []Card {
	lossText := util.FloatToStringPrec(s.Network.PacketLoss, 2) + "%"
	return []Card{
		{
			Title:    "CPU",
			Headline: util.Percent(s.CPU.Usage),
			Level:    telemetry.LevelOf(s.CPU.Usage),
			Rows: [][2]string{
				{"Cores", util.IntToString(s.CPU.Cores)},
				{"Temp", util.IntToString(s.CPU.Temperature) + "°C"},
			},
		},
		{
			Title:    "Memory",
			Headline: util.Percent(s.Memory.Usage),
			Level:    telemetry.LevelOf(s.Memory.Usage),
			Rows: [][2]string{
				{"Total", s.Memory.Total},
				{"Free", s.Memory.Available},
			},
		},
		{
			Title:    "Network",
			Headline: util.Percent(s.Network.Bandwidth),
			Level:    telemetry.LevelOf(s.Network.Bandwidth),
			Rows: [][2]string{
				{"Links", fmtNumber(s.Network.ActiveConnections)},
				{"Loss", lossText},
			},
		},
		{
			Title:    "Security",
			Headline: strings.ToUpper(s.Security.Status),
			Level:    telemetry.StatusLevel(s.Security.Status),
			Rows: [][2]string{
				{"Threat", s.Security.ThreatLevel},
				{"Defenses", util.IntToString(len(s.Security.ActiveDefenses))},
			},
		},
		{
			Title:    "AI Core",
			Headline: strings.ToUpper(s.AI.Status),
			Level:    telemetry.LevelNormal,
			Rows: [][2]string{
				{"Procs", util.IntToString(s.AI.Processes)},
				{"Conf", util.Percent(s.AI.Confidence)},
			},
		},
	}
}

// RenderCard renders one card width columns wide.
func RenderCard(theme *styles.Theme, card Card, width int) string {
	inner := width - theme.Panel.GetHorizontalFrameSize()
	if inner < 12 {
		inner = 12
	}

	head := theme.PanelTitle.Render(util.TruncateWidth(card.Title, inner))
	value := lipgloss.NewStyle().
		Foreground(styles.LevelColor(card.Level)).
		Bold(true).
		Render(util.TruncateWidth(card.Headline, inner))

	lines := []string{head, value}
	for _, row := range card.Rows {
		lines = append(lines, kv(theme, row[0], util.TruncateWidth(row[1], inner-len(row[0])-1), inner))
	}
	return theme.Panel.Width(inner + theme.Panel.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}

// RenderStatusRow lays the five cards side by side in width columns. When
// the row is too narrow the cards wrap onto two rows.
func RenderStatusRow(theme *styles.Theme, s telemetry.SystemStatus, width int) string {
	cards := StatusCards(s)

	perRow := len(cards)
	for perRow > 1 && width/perRow < 18 {
		perRow--
	}
	cardWidth := width / perRow

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := start + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rendered := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			rendered = append(rendered, RenderCard(theme, c, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
