// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components of the dashboard.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderClock lipgloss.Style

	// Panels
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	Muted      lipgloss.Style

	// Console transcript
	Prompt    lipgloss.Style
	Command   lipgloss.Style
	Timestamp lipgloss.Style
	Payload   lipgloss.Style
	System    lipgloss.Style

	// Suggestions
	Chip         lipgloss.Style
	ChipSelected lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Footer
	Footer lipgloss.Style
}

// NewTheme creates a theme for mode "auto", "dark" or "light". Auto asks the
// terminal for its background.
func NewTheme(mode string) *Theme {
	profile := termenv.ColorProfile()

	var isDark bool
	switch mode {
	case "dark":
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case "light":
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(MCPBlueDeep).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(MCPBlue)

	t.HeaderClock = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(MCPBlueDeep).
		Padding(0, 1)

	t.PanelTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(MCPBlue)

	t.Label = lipgloss.NewStyle().Foreground(TextSecondary)
	t.Value = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)

	t.Prompt = lipgloss.NewStyle().Foreground(MCPBlue).Bold(true)
	t.Command = lipgloss.NewStyle().Foreground(TextPrimary)
	t.Timestamp = lipgloss.NewStyle().Foreground(TextMuted)
	t.Payload = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(4)
	t.System = lipgloss.NewStyle().Foreground(Cyan).Italic(true)

	t.Chip = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(Overlay).
		Padding(0, 1).
		MarginRight(1)

	t.ChipSelected = t.Chip.
		Foreground(Surface).
		Background(MCPBlue).
		Bold(true)

	t.HelpKey = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.HelpDesc = lipgloss.NewStyle().Foreground(TextMuted)

	t.Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 80 {
		return LayoutNarrow
	}
	if t.Width < 120 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 80 columns: console only
	LayoutMedium                   // 80-120 columns: console and one side column
	LayoutWide                     // > 120 columns: every panel
)

func (l LayoutMode) String() string {
	switch l {
	case LayoutNarrow:
		return "narrow"
	case LayoutMedium:
		return "medium"
	default:
		return "wide"
	}
}
