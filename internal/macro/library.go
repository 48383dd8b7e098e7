// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package macro

import (
	"fmt"
	"sync"
	"time"
)

// Macro is a named, ordered list of raw command lines.
type Macro struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Commands    []string  `json:"commands" yaml:"commands"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	Preset      bool      `json:"preset,omitempty" yaml:"preset,omitempty"`
}

// New builds a macro with the generated "Macro with N commands" description.
func New(name string, lines []string, now time.Time) Macro {
	return Macro{
		Name:        name,
		Description: fmt.Sprintf("Macro with %d commands", len(lines)),
		Commands:    append([]string{}, lines...),
		CreatedAt:   now,
	}
}

// Library is the session's saved-macro collection. Names may repeat; lookups
// return the most recently saved macro with that name.
type Library struct {
	mu     sync.RWMutex
	macros []Macro
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{}
}

// Add appends m.
func (l *Library) Add(m Macro) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m.Commands = append([]string{}, m.Commands...)
	l.macros = append(l.macros, m)
}

// Find returns the most recently saved macro named name. Names match exactly.
func (l *Library) Find(name string) (Macro, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := len(l.macros) - 1; i >= 0; i-- {
		if l.macros[i].Name == name {
			m := l.macros[i]
			m.Commands = append([]string{}, m.Commands...)
			return m, true
		}
	}
	return Macro{}, false
}

// All returns every saved macro in save order.
func (l *Library) All() []Macro {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Macro, len(l.macros))
	for i, m := range l.macros {
		m.Commands = append([]string{}, m.Commands...)
		out[i] = m
	}
	return out
}

// Names returns the distinct macro names in first-saved order.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	seen := make(map[string]bool, len(l.macros))
	names := []string{}
	for _, m := range l.macros {
		if !seen[m.Name] {
			seen[m.Name] = true
			names = append(names, m.Name)
		}
	}
	return names
}

// Len returns the number of saved macros, counting repeated names.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.macros)
}
