// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the MCP command registry and interpreter.
package commands

import "time"

// =============================================================================
// STATUS
// =============================================================================

// Status is the severity of a command response.
type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
	StatusInfo    Status = "info"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusSuccess, StatusWarning, StatusError, StatusInfo:
		return true
	}
	return false
}

// IsAlert reports whether the status must raise a transient notification.
func (s Status) IsAlert() bool {
	return s == StatusWarning || s == StatusError
}

// String returns the wire form of the status.
func (s Status) String() string {
	return string(s)
}

// =============================================================================
// RESPONSE
// =============================================================================

// Payload is the category-specific structured data of a response.
type Payload map[string]any

// Response is the result of evaluating one input line.
type Response struct {
	Message string  `json:"message" yaml:"message"`
	Status  Status  `json:"status" yaml:"status"`
	Data    Payload `json:"data,omitempty" yaml:"data,omitempty"`
}

// SuggestionBlock is carried under Data["suggestions"] by unknown-command
// responses.
type SuggestionBlock struct {
	Text     string   `json:"text" yaml:"text"`
	Commands []string `json:"commands" yaml:"commands"`
}

// Suggestions returns the nested suggestion block, or nil when absent.
func (r Response) Suggestions() *SuggestionBlock {
	if r.Data == nil {
		return nil
	}
	switch v := r.Data["suggestions"].(type) {
	case *SuggestionBlock:
		return v
	case SuggestionBlock:
		return &v
	}
	return nil
}

// HasData reports whether the response carries a non-empty payload.
func (r Response) HasData() bool {
	return len(r.Data) > 0
}

func respond(status Status, message string, data Payload) Response {
	return Response{Message: message, Status: status, Data: data}
}

// Success builds a success response.
func Success(message string, data Payload) Response {
	return respond(StatusSuccess, message, data)
}

// Info builds an info response.
func Info(message string, data Payload) Response {
	return respond(StatusInfo, message, data)
}

// Warning builds a warning response.
func Warning(message string, data Payload) Response {
	return respond(StatusWarning, message, data)
}

// Error builds an error response.
func Error(message string, data Payload) Response {
	return respond(StatusError, message, data)
}

// =============================================================================
// HISTORY ITEM
// =============================================================================

// HistoryItem is one entry of the interaction log: the raw line as typed and
// the response it produced.
type HistoryItem struct {
	Command   string    `json:"command" yaml:"command"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Response  Response  `json:"response" yaml:"response"`
}

// isoTimestamp formats t the way payload timestamps are rendered.
func isoTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
