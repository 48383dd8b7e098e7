// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the MCP command registry and interpreter.
package commands

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// CATEGORIES
// =============================================================================

// Category selects the handler a command is dispatched to.
type Category int

const (
	CategorySystem Category = iota
	CategoryResource
	CategorySecurity
	CategoryNetwork
	CategoryHelp
	CategoryAutomation
)

var categoryNames = [...]string{
	CategorySystem:     "system",
	CategoryResource:   "resource",
	CategorySecurity:   "security",
	CategoryNetwork:    "network",
	CategoryHelp:       "help",
	CategoryAutomation: "automation",
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategorySystem,
		CategoryResource,
		CategorySecurity,
		CategoryNetwork,
		CategoryHelp,
		CategoryAutomation,
	}
}

// String returns the lowercase category name.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Title returns the category name for headings ("System", "Automation").
func (c Category) Title() string {
	return cases.Title(language.English).String(c.String())
}

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Definition describes one recognized command. Definitions are fixed once the
// registry is built.
type Definition struct {
	// Name is the canonical command name (e.g., "status")
	Name string `json:"name"`

	// Aliases resolve to the same definition (e.g., "health")
	Aliases []string `json:"aliases,omitempty"`

	// Category selects the handler
	Category Category `json:"category"`

	// Description is shown in help output
	Description string `json:"description"`

	// Usage shows argument syntax (e.g., "status [component]")
	Usage string `json:"usage"`

	// Examples are complete sample lines
	Examples []string `json:"examples,omitempty"`
}

// Matches reports whether token equals the name or one of the aliases.
func (d *Definition) Matches(token string) bool {
	token = strings.ToLower(token)
	if d.Name == token {
		return true
	}
	for _, alias := range d.Aliases {
		if alias == token {
			return true
		}
	}
	return false
}

// HasPrefix reports whether the name or any alias starts with prefix.
func (d *Definition) HasPrefix(prefix string) bool {
	if strings.HasPrefix(d.Name, prefix) {
		return true
	}
	for _, alias := range d.Aliases {
		if strings.HasPrefix(alias, prefix) {
			return true
		}
	}
	return false
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// DuplicateError is returned when a name or alias is registered twice.
type DuplicateError struct {
	Token    string
	Existing string
	New      string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("command token %q already registered by %q (while registering %q)", e.Token, e.Existing, e.New)
}

// Registry is the static command catalog. Lookups are case-insensitive and
// always unambiguous: a token maps to at most one definition.
type Registry struct {
	defs    []*Definition
	names   map[string]*Definition
	aliases map[string]*Definition
}

// NewRegistry creates a registry holding the built-in MCP commands.
// It panics if the built-in catalog violates the uniqueness invariant.
func NewRegistry() *Registry {
	r := newEmptyRegistry()
	for _, def := range builtinDefinitions() {
		if err := r.Register(def); err != nil {
			panic(fmt.Sprintf("commands: invalid built-in catalog: %v", err))
		}
	}
	return r
}

func newEmptyRegistry() *Registry {
	return &Registry{
		names:   make(map[string]*Definition),
		aliases: make(map[string]*Definition),
	}
}

// Register adds a definition. Names and aliases are stored lowercase and must
// not collide with any name or alias already present.
func (r *Registry) Register(def *Definition) error {
	if def == nil || strings.TrimSpace(def.Name) == "" {
		return fmt.Errorf("command definition requires a name")
	}

	def.Name = strings.ToLower(def.Name)
	for i, alias := range def.Aliases {
		def.Aliases[i] = strings.ToLower(alias)
	}

	tokens := append([]string{def.Name}, def.Aliases...)
	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		if seen[token] {
			return &DuplicateError{Token: token, Existing: def.Name, New: def.Name}
		}
		seen[token] = true
		if existing := r.owner(token); existing != nil {
			return &DuplicateError{Token: token, Existing: existing.Name, New: def.Name}
		}
	}

	r.defs = append(r.defs, def)
	r.names[def.Name] = def
	for _, alias := range def.Aliases {
		r.aliases[alias] = def
	}
	return nil
}

func (r *Registry) owner(token string) *Definition {
	if def, ok := r.names[token]; ok {
		return def
	}
	return r.aliases[token]
}

// Lookup resolves a token by canonical name first, then by alias.
func (r *Registry) Lookup(token string) (*Definition, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil, false
	}
	if def, ok := r.names[token]; ok {
		return def, true
	}
	if def, ok := r.aliases[token]; ok {
		return def, true
	}
	return nil, false
}

// All returns every definition in registration order.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// ByCategory returns the definitions of one category in registration order.
func (r *Registry) ByCategory(c Category) []*Definition {
	var out []*Definition
	for _, def := range r.defs {
		if def.Category == c {
			out = append(out, def)
		}
	}
	return out
}

// Names returns the canonical names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.defs))
	for i, def := range r.defs {
		names[i] = def.Name
	}
	return names
}

// Validate re-checks that no two definitions share a name or alias.
func (r *Registry) Validate() error {
	owners := make(map[string]string)
	for _, def := range r.defs {
		for _, token := range append([]string{def.Name}, def.Aliases...) {
			if prev, ok := owners[token]; ok {
				return &DuplicateError{Token: token, Existing: prev, New: def.Name}
			}
			owners[token] = def.Name
		}
	}
	return nil
}

// =============================================================================
// BUILT-IN CATALOG
// =============================================================================

func builtinDefinitions() []*Definition {
	return []*Definition{
		{
			Name:        "status",
			Aliases:     []string{"health", "diagnostics"},
			Category:    CategorySystem,
			Description: "Display the current status of MCP systems",
			Usage:       "status [component]",
			Examples:    []string{"status", "status network", "health"},
		},
		{
			Name:        "allocate",
			Aliases:     []string{"resource", "assign"},
			Category:    CategoryResource,
			Description: "Optimize resource allocation based on current workloads",
			Usage:       "allocate [resource] [amount]",
			Examples:    []string{"allocate", "resource optimize", "assign quantum 80"},
		},
		{
			Name:        "security",
			Aliases:     []string{"secure", "threat", "protection"},
			Category:    CategorySecurity,
			Description: "Manage security systems and threat assessment",
			Usage:       "security [scan|config|status]",
			Examples:    []string{"security", "security scan", "threat analyze"},
		},
		{
			Name:        "network",
			Aliases:     []string{"connect", "topology", "route"},
			Category:    CategoryNetwork,
			Description: "Manage network configuration and connections",
			Usage:       "network [status|optimize|diagram]",
			Examples:    []string{"network", "connect status", "topology map"},
		},
		{
			Name:        "help",
			Aliases:     []string{"?", "guide", "docs"},
			Category:    CategoryHelp,
			Description: "Display help information for available commands",
			Usage:       "help [command]",
			Examples:    []string{"help", "help security", "?"},
		},
		{
			Name:        "macro",
			Aliases:     []string{"script", "automate", "batch"},
			Category:    CategoryAutomation,
			Description: "Record, manage and run command macros",
			Usage:       "macro [record|stop|run|list] [name]",
			Examples:    []string{"macro record daily_check", "macro stop", "macro run daily_check"},
		},
	}
}
