// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the MCP command registry and interpreter.
package commands

// =============================================================================
// SUGGESTION ENGINE
// =============================================================================

// defaultSuggestions are offered for empty input with no history.
var defaultSuggestions = []string{"status", "help"}

// followUps are the next-argument completions per canonical command name.
var followUps = map[string][]string{
	"status":   {"status network", "status security", "status resources", "status ai"},
	"network":  {"network status", "network optimize", "network diagram", "network scan"},
	"security": {"security scan", "security threat-level", "security protocols"},
	"allocate": {"allocate quantum 80", "allocate neural 60", "allocate storage 40"},
	"help":     {"help status", "help allocate", "help security", "help network", "help macro"},
	"macro":    {"macro record", "macro stop", "macro run", "macro list"},
}

// Completer produces suggestions from the registry and the history log.
type Completer struct {
	registry *Registry
}

// NewCompleter creates a completer over the given registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Suggest returns candidate completions for partial input. It never mutates
// its inputs and always returns a non-nil slice.
func (c *Completer) Suggest(partial string, history []HistoryItem) []string {
	input := Normalize(partial)

	if input == "" {
		if len(history) > 0 {
			return []string{history[len(history)-1].Command}
		}
		return append([]string{}, defaultSuggestions...)
	}

	parts := Tokenize(input)
	if len(parts) > 1 {
		def, ok := c.registry.Lookup(parts[0])
		if !ok {
			return []string{}
		}
		return append([]string{}, followUps[def.Name]...)
	}

	out := []string{}
	for _, def := range c.registry.All() {
		if def.HasPrefix(parts[0]) {
			out = append(out, def.Name)
		}
	}
	return out
}

// Completion is a suggestion decorated for display.
type Completion struct {
	// Value to insert into the input line
	Value string `json:"value"`

	// Description of the command the value resolves to
	Description string `json:"description,omitempty"`
}

// Complete returns decorated suggestions for a front end.
func (c *Completer) Complete(partial string, history []HistoryItem) []Completion {
	values := c.Suggest(partial, history)
	out := make([]Completion, 0, len(values))
	for _, v := range values {
		comp := Completion{Value: v}
		if parts := Tokenize(Normalize(v)); len(parts) > 0 {
			if def, ok := c.registry.Lookup(parts[0]); ok {
				comp.Description = def.Description
			}
		}
		out = append(out, comp)
	}
	return out
}

// =============================================================================
// COMPLETION NAVIGATION
// =============================================================================

// CompletionState tracks Tab cycling through completions in a front end.
type CompletionState struct {
	// OriginalInput is the text the completions were computed for
	OriginalInput string

	// Completions currently offered
	Completions []Completion

	// Selected index (-1 for none)
	Selected int

	// Visible indicates if completions should be shown
	Visible bool
}

// NewCompletionState creates an empty completion state.
func NewCompletionState() *CompletionState {
	return &CompletionState{Selected: -1}
}

// Update replaces the completions. Nothing is selected until Next is called.
func (cs *CompletionState) Update(input string, completions []Completion) {
	cs.OriginalInput = input
	cs.Completions = completions
	cs.Selected = -1
	cs.Visible = len(completions) > 0
}

// Next moves to the next completion, wrapping around.
func (cs *CompletionState) Next() {
	if len(cs.Completions) == 0 {
		return
	}
	cs.Selected = (cs.Selected + 1) % len(cs.Completions)
}

// Prev moves to the previous completion, wrapping around.
func (cs *CompletionState) Prev() {
	if len(cs.Completions) == 0 {
		return
	}
	cs.Selected--
	if cs.Selected < 0 {
		cs.Selected = len(cs.Completions) - 1
	}
}

// Accept returns the selected value, the first value when nothing is
// selected, or "" when there are no completions.
func (cs *CompletionState) Accept() string {
	if len(cs.Completions) == 0 {
		return ""
	}
	if cs.Selected < 0 || cs.Selected >= len(cs.Completions) {
		return cs.Completions[0].Value
	}
	return cs.Completions[cs.Selected].Value
}

// Clear resets the state.
func (cs *CompletionState) Clear() {
	cs.OriginalInput = ""
	cs.Completions = nil
	cs.Selected = -1
	cs.Visible = false
}

// GetSelected returns the selected completion, or nil.
func (cs *CompletionState) GetSelected() *Completion {
	if cs.Selected < 0 || cs.Selected >= len(cs.Completions) {
		return nil
	}
	return &cs.Completions[cs.Selected]
}
