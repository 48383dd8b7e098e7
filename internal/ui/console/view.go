// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mcp-console/internal/session"
	"github.com/jeranaias/mcp-console/internal/ui/components"
	"github.com/jeranaias/mcp-console/internal/ui/styles"
	"github.com/jeranaias/mcp-console/internal/util"
)

// =============================================================================
// LAYOUT
// =============================================================================

const (
	sideWidthWide   = 42
	sideWidthMedium = 34
	minViewport     = 3
)

// sideWidth returns the width of the right-hand panel column, 0 when the
// terminal is too narrow for one.
func (m *Model) sideWidth() int {
	switch m.theme.GetLayoutMode() {
	case styles.LayoutWide:
		return sideWidthWide
	case styles.LayoutMedium:
		return sideWidthMedium
	default:
		return 0
	}
}

func (m *Model) consoleWidth() int {
	return m.width - m.sideWidth()
}

// layout sizes the viewport and input for the current terminal.
func (m *Model) layout() {
	m.header.SetWidth(m.width)
	if side := m.sideWidth(); side > 0 {
		m.resources.SetWidth(side)
	}

	inner := m.consoleWidth() - m.theme.Panel.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}
	m.viewport.Width = inner
	m.input.Width = inner - lipgloss.Width(m.input.Prompt) - 1

	// Border, title, input and chip rows surround the transcript.
	h := m.bodyHeight() - m.theme.Panel.GetVerticalFrameSize() - 3
	if h < minViewport {
		h = minViewport
	}
	m.viewport.Height = h
}

func (m *Model) statusRow() string {
	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		return ""
	}
	return components.RenderStatusRow(m.theme, m.mon.Status(), m.width)
}

func (m *Model) bodyHeight() int {
	used := lipgloss.Height(m.header.View(m.clock)) + 1 // footer
	if row := m.statusRow(); row != "" {
		used += lipgloss.Height(row)
	}
	return m.height - used
}

// refreshViewport re-renders the transcript and scrolls to the newest line.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderTranscript(m.viewport.Width))
	m.viewport.GotoBottom()
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

func (m *Model) renderTranscript(width int) string {
	if width <= 0 {
		width = 80
	}
	wrap := lipgloss.NewStyle().Width(width)

	blocks := make([]string, 0, len(m.transcript))
	for _, line := range m.transcript {
		switch line.kind {
		case lineSystem:
			blocks = append(blocks, wrap.Render(m.theme.System.Render(line.text)))
		case lineEntry:
			blocks = append(blocks, m.renderEntry(line.entry, wrap))
		}
	}
	return strings.Join(blocks, "\n")
}

func (m *Model) renderEntry(e session.Entry, wrap lipgloss.Style) string {
	head := m.theme.Timestamp.Render("["+e.Timestamp.Format("15:04:05")+"]") + " " +
		m.theme.Prompt.Render(strings.TrimSpace(m.cfg.Console.Prompt)) + " " +
		m.theme.Command.Render(e.Command)
	if e.Origin == session.OriginPlayback {
		head += m.theme.Muted.Render("  (macro)")
	}

	parts := []string{
		wrap.Render(head),
		wrap.Render("  " + styles.RenderStatus(e.Response.Status, e.Response.Message)),
	}
	if m.cfg.UI.ShowPayloads && len(e.Response.Data) > 0 {
		parts = append(parts, m.theme.Payload.Render(m.highlighter.HighlightPayload(e.Response.Data)))
	}
	return strings.Join(parts, "\n")
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the dashboard.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing MCP..."
	}

	sections := []string{m.header.View(m.clock)}
	if row := m.statusRow(); row != "" {
		sections = append(sections, row)
	}

	body := m.renderConsole()
	if side := m.sideWidth(); side > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderSide(side))
	}
	sections = append(sections, body, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderConsole() string {
	width := m.consoleWidth()
	inner := width - m.theme.Panel.GetHorizontalFrameSize()

	title := m.theme.PanelTitle.Render("COMMAND CONSOLE")
	if m.pending > 0 {
		title += m.theme.Muted.Render("  running...")
	}

	chips := components.RenderSuggestions(m.theme, m.chips(), m.completion.Selected, inner)
	if chips == "" {
		chips = " "
	}
	if m.showHelp && m.sideWidth() == 0 {
		chips = renderBindings(m.theme, m.keys.ShortHelp(), "  ")
	}

	content := strings.Join([]string{title, m.viewport.View(), m.input.View(), chips}, "\n")
	return m.theme.Panel.Width(inner + m.theme.Panel.GetHorizontalPadding()).Render(content)
}

// chips are the completions being cycled, or the live suggestions.
func (m *Model) chips() []string {
	if !m.completing {
		return m.suggestions
	}
	values := make([]string, 0, len(m.completion.Completions))
	for _, c := range m.completion.Completions {
		values = append(values, c.Value)
	}
	return values
}

func (m *Model) renderSide(width int) string {
	var blocks []string
	if stack := components.RenderToastStack(m.toasts.Toasts(), width); stack != "" {
		blocks = append(blocks, stack)
	}

	if m.showHelp {
		blocks = append(blocks, m.renderKeyHelp(width))
	} else {
		blocks = append(blocks,
			m.resources.View(m.mon.Resources()),
			components.RenderSecurity(m.theme, m.mon.Security(), width),
		)
		if m.theme.GetLayoutMode() == styles.LayoutWide {
			blocks = append(blocks, components.RenderNetwork(m.theme, m.mon.Network(), width))
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		MaxHeight(max(m.bodyHeight(), 1)).
		Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

func (m *Model) renderKeyHelp(width int) string {
	inner := width - m.theme.Panel.GetHorizontalFrameSize()
	groups := m.keys.FullHelp()
	lines := []string{m.theme.PanelTitle.Render("KEYS")}
	for i, group := range groups {
		if i > 0 {
			lines = append(lines, "")
		}
		for _, b := range group {
			h := b.Help()
			lines = append(lines, m.theme.HelpKey.Render(util.PadRight(h.Key, 7))+" "+m.theme.HelpDesc.Render(h.Desc))
		}
	}
	lines = append(lines, "", m.theme.Muted.Render(`Console verbs: clear, exit`))
	return m.theme.Panel.Width(inner + m.theme.Panel.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	var left []string
	if label := m.playbackLabel(); label != "" {
		left = append(left, label)
	}
	if m.sideWidth() == 0 {
		// No side column: surface the newest toast here.
		if toasts := m.toasts.Toasts(); len(toasts) > 0 {
			left = append(left, toasts[0].Title+": "+toasts[0].Message)
		}
	}
	if m.statusMsg != "" {
		left = append(left, m.statusMsg)
	}
	if n := m.toasts.Suppressed(); n > 0 {
		left = append(left, util.IntToString(n)+" notifications suppressed")
	}

	leftText := strings.Join(left, " | ")
	help := renderBindings(m.theme, m.keys.ShortHelp(), "  ")
	inner := m.width - m.theme.Footer.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(leftText) - lipgloss.Width(help)
	if gap < 1 {
		return m.theme.Footer.Render(util.TruncateWidth(leftText, max(inner, 0)))
	}
	return m.theme.Footer.Render(leftText + strings.Repeat(" ", gap) + help)
}
