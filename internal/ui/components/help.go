// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/mcp-console/internal/commands"
)

// =============================================================================
// COMMAND REFERENCE
// =============================================================================

// CommandReference builds a Markdown reference of every registered command,
// grouped by category in catalog order.
func CommandReference(reg *commands.Registry) string {
	var sb strings.Builder
	sb.WriteString("# MCP Command Reference\n\n")

	for _, cat := range commands.Categories() {
		defs := reg.ByCategory(cat)
		if len(defs) == 0 {
			continue
		}
		sb.WriteString("## " + cat.Title() + "\n\n")
		for _, def := range defs {
			sb.WriteString("### `" + def.Name + "`\n\n")
			sb.WriteString(def.Description + "\n\n")
			if def.Usage != "" {
				sb.WriteString("- **Usage**: `" + def.Usage + "`\n")
			}
			if len(def.Aliases) > 0 {
				sb.WriteString("- **Aliases**: " + strings.Join(def.Aliases, ", ") + "\n")
			}
			if len(def.Examples) > 0 {
				quoted := make([]string, len(def.Examples))
				for i, ex := range def.Examples {
					quoted[i] = "`" + ex + "`"
				}
				sb.WriteString("- **Examples**: " + strings.Join(quoted, ", ") + "\n")
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("## Console\n\n")
	sb.WriteString("- `clear` empties the transcript and stops macro playback\n")
	sb.WriteString("- `exit` / `quit` leaves the console\n")
	return sb.String()
}

// MarkdownRenderer renders Markdown for the terminal with glamour.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer for style ("dark", "light",
// "notty" or "auto") wrapping at width.
func NewMarkdownRenderer(style string, width int) *MarkdownRenderer {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return &MarkdownRenderer{}
	}
	return &MarkdownRenderer{renderer: r}
}

// Render returns the rendered Markdown, or the source when rendering fails.
func (m *MarkdownRenderer) Render(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
