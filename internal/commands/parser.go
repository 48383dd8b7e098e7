// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the MCP command registry and interpreter.
package commands

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// REQUEST
// =============================================================================

// Request is a parsed input line handed to a category handler.
type Request struct {
	// Raw is the line exactly as submitted, used for echo
	Raw string

	// Line is the normalized, lowercase form used for matching
	Line string

	// Parts are the whitespace-separated tokens of Line
	Parts []string

	// Base is Parts[0], or "" for a blank line
	Base string

	// History is the interaction log at evaluation time
	History []HistoryItem

	// Now is the evaluation time for payload timestamps
	Now time.Time
}

// Arg returns the n-th argument after the base token, or "".
func (r Request) Arg(n int) string {
	idx := n + 1
	if idx < 1 || idx >= len(r.Parts) {
		return ""
	}
	return r.Parts[idx]
}

// Args returns every token after the base.
func (r Request) Args() []string {
	if len(r.Parts) < 2 {
		return nil
	}
	return r.Parts[1:]
}

// =============================================================================
// PARSING
// =============================================================================

// Normalize trims the line, folds compatibility forms (full-width letters,
// ligatures) and lowercases it.
func Normalize(raw string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(raw)))
}

// Tokenize splits a normalized line on runs of whitespace.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// ParseLine builds a Request from a raw line. History and Now are left for
// the interpreter to fill.
func ParseLine(raw string) Request {
	line := Normalize(raw)
	parts := Tokenize(line)
	req := Request{
		Raw:   raw,
		Line:  line,
		Parts: parts,
	}
	if len(parts) > 0 {
		req.Base = parts[0]
	}
	return req
}

// IsBlank reports whether a line has no tokens. Front ends reject such lines
// before they reach the interpreter.
func IsBlank(raw string) bool {
	return len(Tokenize(Normalize(raw))) == 0
}

// parseAmount parses an allocation amount. A trailing "%" is accepted; any
// other non-numeric text yields ok=false.
func parseAmount(s string) (int, bool) {
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
