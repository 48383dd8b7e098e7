// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history holds the console's command log and the recall cursor.
package history

import (
	"sync"

	"github.com/jeranaias/mcp-console/internal/commands"
)

// =============================================================================
// COMMAND LOG
// =============================================================================

// Log is an append-only record of evaluated lines. Entries are never edited;
// the only removal is Clear.
type Log struct {
	mu    sync.RWMutex
	items []commands.HistoryItem
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append adds an entry and returns its position.
func (l *Log) Append(item commands.HistoryItem) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, item)
	return len(l.items) - 1
}

// Items returns a copy of every entry, oldest first.
func (l *Log) Items() []commands.HistoryItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]commands.HistoryItem, len(l.items))
	copy(out, l.items)
	return out
}

// Lines returns the raw command text of every entry, oldest first.
func (l *Log) Lines() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.items))
	for i, item := range l.items {
		out[i] = item.Command
	}
	return out
}

// Last returns the most recent entry.
func (l *Log) Last() (commands.HistoryItem, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.items) == 0 {
		return commands.HistoryItem{}, false
	}
	return l.items[len(l.items)-1], true
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Clear removes every entry.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}
