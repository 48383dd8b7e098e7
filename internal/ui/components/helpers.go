// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mcp-console/internal/ui/styles"
	"github.com/jeranaias/mcp-console/internal/util"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// fmtNumber formats a number with thousand separators.
func fmtNumber(n int) string {
	if n < 0 {
		return "-" + fmtNumber(-n)
	}
	s := util.IntToString(n)
	if n < 1000 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// panel renders body inside the theme's panel border with a title row,
// sized to width columns including the border.
func panel(theme *styles.Theme, title, body string, width int) string {
	inner := width - theme.Panel.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}
	head := theme.PanelTitle.Render(util.TruncateWidth(strings.ToUpper(title), inner))
	return theme.Panel.Width(inner + theme.Panel.GetHorizontalPadding()).Render(head + "\n" + body)
}

// kv renders "label value" with the value right aligned in width cells.
func kv(theme *styles.Theme, label, value string, width int) string {
	l := theme.Label.Render(label)
	v := theme.Value.Render(value)
	gap := width - lipgloss.Width(l) - lipgloss.Width(v)
	if gap < 1 {
		gap = 1
	}
	return l + strings.Repeat(" ", gap) + v
}

// hexFor resolves an adaptive colour for the theme's background.
func hexFor(theme *styles.Theme, c lipgloss.AdaptiveColor) string {
	if theme.IsDark {
		return c.Dark
	}
	return c.Light
}
