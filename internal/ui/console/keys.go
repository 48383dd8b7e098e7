// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/mcp-console/internal/ui/styles"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings of the dashboard.
type KeyMap struct {
	Submit         key.Binding
	HistoryPrev    key.Binding
	HistoryNext    key.Binding
	Complete       key.Binding
	CompletePrev   key.Binding
	PageUp         key.Binding
	PageDown       key.Binding
	Export         key.Binding
	Copy           key.Binding
	CancelPlayback key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "run"),
		),
		HistoryPrev: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("Up", "previous command"),
		),
		HistoryNext: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("Down", "next command"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "complete"),
		),
		CompletePrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous completion"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "export"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy response"),
		),
		CancelPlayback: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "stop playback"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Complete, k.CancelPlayback, k.Help, k.Quit}
}

// FullHelp returns the bindings shown by the help panel, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.HistoryPrev, k.HistoryNext, k.Complete, k.CompletePrev},
		{k.PageUp, k.PageDown},
		{k.Export, k.Copy, k.CancelPlayback},
		{k.Help, k.Quit},
	}
}

// renderBindings renders "key desc" pairs separated by sep.
func renderBindings(theme *styles.Theme, bindings []key.Binding, sep string) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, theme.HelpKey.Render(h.Key)+" "+theme.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, sep)
}
