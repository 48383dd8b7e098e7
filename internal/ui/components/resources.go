// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/jeranaias/mcp-console/internal/telemetry"
	"github.com/jeranaias/mcp-console/internal/ui/styles"
	"github.com/jeranaias/mcp-console/internal/util"
)

// =============================================================================
// RESOURCE ALLOCATION
// =============================================================================

// ResourcePanel renders allocation bars coloured by level.
type ResourcePanel struct {
	theme *styles.Theme
	width int
	bars  map[telemetry.Level]progress.Model
}

// NewResourcePanel creates a panel width columns wide.
func NewResourcePanel(theme *styles.Theme, width int) *ResourcePanel {
	p := &ResourcePanel{theme: theme}
	p.SetWidth(width)
	return p
}

// SetWidth resizes the panel and its bars.
func (p *ResourcePanel) SetWidth(width int) {
	p.width = width
	barWidth := p.inner() - 5
	if barWidth < 4 {
		barWidth = 4
	}

	p.bars = make(map[telemetry.Level]progress.Model, 3)
	for _, level := range []telemetry.Level{telemetry.LevelNormal, telemetry.LevelWarning, telemetry.LevelDanger} {
		bar := progress.New(
			progress.WithSolidFill(hexFor(p.theme, styles.LevelColor(level))),
			progress.WithoutPercentage(),
			progress.WithWidth(barWidth),
		)
		bar.EmptyColor = hexFor(p.theme, styles.Overlay)
		p.bars[level] = bar
	}
}

func (p *ResourcePanel) inner() int {
	inner := p.width - p.theme.Panel.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}
	return inner
}

// View renders the bars.
func (p *ResourcePanel) View(resources []telemetry.Resource) string {
	inner := p.inner()
	lines := make([]string, 0, len(resources)*2)
	for _, r := range resources {
		lines = append(lines, p.theme.Label.Render(util.TruncateWidth(r.Name, inner)))
		bar := p.bars[r.Level()]
		lines = append(lines, bar.ViewAs(float64(r.Allocation)/100)+" "+
			p.theme.Value.Render(util.PadRight(util.Percent(r.Allocation), 4)))
	}
	return panel(p.theme, "Resource Allocation", strings.Join(lines, "\n"), p.width)
}
