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
// SUGGESTION CHIPS
// =============================================================================

// maxChipWidth bounds one chip's label.
const maxChipWidth = 24

// RenderSuggestions renders suggestions as a single row of chips that fits
// width. selected is highlighted; -1 highlights none. Chips that do not fit
// are summarised as "+N".
func RenderSuggestions(theme *styles.Theme, suggestions []string, selected, width int) string {
	if len(suggestions) == 0 || width <= 0 {
		return ""
	}

	var chips []string
	used := 0
	for i, s := range suggestions {
		style := theme.Chip
		if i == selected {
			style = theme.ChipSelected
		}
		chip := style.Render(util.TruncateWidth(s, maxChipWidth))
		w := lipgloss.Width(chip)

		remaining := len(suggestions) - i
		more := ""
		if remaining > 1 {
			more = theme.Muted.Render("+" + util.IntToString(remaining-1))
		}
		if used+w+lipgloss.Width(more) > width && len(chips) > 0 {
			chips = append(chips, theme.Muted.Render("+"+util.IntToString(remaining)))
			break
		}
		chips = append(chips, chip)
		used += w
	}
	return strings.Join(chips, "")
}
