// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import "sync"

// Direction selects which way Recall moves the cursor.
type Direction int

const (
	// Back moves toward older entries
	Back Direction = iota

	// Forward moves toward newer entries
	Forward
)

// Neutral is the cursor value when no entry is being recalled.
const Neutral = -1

// Recall moves cursor one step in dir over lines (oldest first) and returns the
// new cursor and the line to show. Cursor 0 is the most recent entry. Moving
// back from the oldest entry is a no-op; moving forward from the most recent
// entry returns to Neutral with an empty line.
func Recall(lines []string, cursor int, dir Direction) (int, string, bool) {
	n := len(lines)
	if cursor < Neutral || cursor >= n {
		cursor = Neutral
	}

	switch dir {
	case Back:
		if cursor >= n-1 {
			return cursor, lineAt(lines, cursor), false
		}
		cursor++
		return cursor, lineAt(lines, cursor), true
	case Forward:
		if cursor == Neutral {
			return Neutral, "", false
		}
		cursor--
		return cursor, lineAt(lines, cursor), true
	}
	return cursor, lineAt(lines, cursor), false
}

func lineAt(lines []string, cursor int) string {
	if cursor == Neutral {
		return ""
	}
	return lines[len(lines)-1-cursor]
}

// =============================================================================
// NAVIGATOR
// =============================================================================

// Navigator is the Up/Down recall state of one input line. It reads the log
// on every move, so entries appended meanwhile are visible. It is safe for
// concurrent use: sessions reset it from the submitting goroutine.
type Navigator struct {
	log   *Log
	limit int

	mu     sync.Mutex
	cursor int
}

// NewNavigator creates a navigator over log. A positive limit restricts recall
// to the most recent limit entries.
func NewNavigator(log *Log, limit int) *Navigator {
	return &Navigator{log: log, cursor: Neutral, limit: limit}
}

// Back recalls the next older entry.
func (n *Navigator) Back() (string, bool) {
	return n.move(Back)
}

// Forward recalls the next newer entry, or "" once past the most recent.
func (n *Navigator) Forward() (string, bool) {
	return n.move(Forward)
}

func (n *Navigator) move(dir Direction) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	lines := n.log.Lines()
	if n.limit > 0 && len(lines) > n.limit {
		lines = lines[len(lines)-n.limit:]
	}
	cursor, line, moved := Recall(lines, n.cursor, dir)
	n.cursor = cursor
	return line, moved
}

// Cursor returns the current position (Neutral when not recalling).
func (n *Navigator) Cursor() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cursor
}

// Active reports whether an entry is being recalled.
func (n *Navigator) Active() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cursor != Neutral
}

// Reset returns the cursor to Neutral. Called on every submission.
func (n *Navigator) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cursor = Neutral
}
