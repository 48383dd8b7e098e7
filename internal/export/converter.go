// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/mcp-console/internal/commands"
)

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is an exportable copy of a session's history log.
type Transcript struct {
	ID         string    `json:"id" yaml:"id"`
	SessionID  string    `json:"sessionId" yaml:"sessionId"`
	CreatedAt  time.Time `json:"createdAt" yaml:"createdAt"`
	ExportedAt time.Time `json:"exportedAt" yaml:"exportedAt"`
	Entries    []Entry   `json:"entries" yaml:"entries"`
}

// Entry is one command and its response.
type Entry struct {
	Index     int              `json:"index" yaml:"index"`
	Command   string           `json:"command" yaml:"command"`
	Timestamp time.Time        `json:"timestamp" yaml:"timestamp"`
	Status    commands.Status  `json:"status" yaml:"status"`
	Message   string           `json:"message" yaml:"message"`
	Data      commands.Payload `json:"data,omitempty" yaml:"data,omitempty"`
}

// FromHistory converts a history log into a transcript. createdAt is the
// session start; the first entry's timestamp is used when it is zero.
func FromHistory(sessionID string, createdAt time.Time, items []commands.HistoryItem, now time.Time) *Transcript {
	if createdAt.IsZero() && len(items) > 0 {
		createdAt = items[0].Timestamp
	}

	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		entries = append(entries, Entry{
			Index:     i + 1,
			Command:   item.Command,
			Timestamp: item.Timestamp,
			Status:    item.Response.Status,
			Message:   item.Response.Message,
			Data:      item.Response.Data,
		})
	}

	return &Transcript{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		CreatedAt:  createdAt,
		ExportedAt: now,
		Entries:    entries,
	}
}

// Counts returns the number of entries per response status.
func (t *Transcript) Counts() map[commands.Status]int {
	counts := make(map[commands.Status]int)
	for _, e := range t.Entries {
		counts[e.Status]++
	}
	return counts
}
