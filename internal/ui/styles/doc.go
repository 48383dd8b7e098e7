// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the mcp dashboard.
//
// Colours are lipgloss AdaptiveColors so the same palette works on dark and
// light terminals. The theme can be forced with ui.theme = "dark" or "light".
//
// # Key Types
//
//   - Theme: every lipgloss style the dashboard uses
//   - StatusIndicatorSet: ASCII status markers shown next to colour
//   - LayoutMode: narrow, medium and wide layouts by terminal width
//
// # Usage
//
//	theme := styles.NewTheme(cfg.UI.Theme)
//	line := styles.RenderStatus(resp.Status, resp.Message)
package styles
