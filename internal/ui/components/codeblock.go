// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"

	"github.com/jeranaias/mcp-console/internal/commands"
)

// =============================================================================
// PAYLOAD HIGHLIGHTING (Chroma-based)
// =============================================================================

// PayloadJSON returns the indented JSON of a response payload, or "" when
// the payload is empty.
func PayloadJSON(data commands.Payload) string {
	if len(data) == 0 {
		return ""
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return ""
	}
	return string(out)
}

// Highlighter colours JSON for a terminal. The zero value is not usable;
// call NewHighlighter.
type Highlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewHighlighter picks a chroma style for the background and a formatter
// for the colour depth ("terminal16m", "terminal256" or "noop").
func NewHighlighter(dark bool, formatter string) *Highlighter {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}

	styleName := "github"
	if dark {
		styleName = "monokai"
	}
	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	f := formatters.Get(formatter)
	if f == nil {
		f = formatters.Fallback
	}

	return &Highlighter{lexer: chroma.Coalesce(lexer), style: style, formatter: f}
}

// FormatterFor maps a terminal colour profile to a chroma formatter name.
func FormatterFor(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return "noop"
	}
}

// Highlight colours code, returning it unchanged when tokenising fails.
func (h *Highlighter) Highlight(code string) string {
	iterator, err := h.lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}

// HighlightPayload renders a payload as coloured, indented JSON.
func (h *Highlighter) HighlightPayload(data commands.Payload) string {
	js := PayloadJSON(data)
	if js == "" {
		return ""
	}
	return h.Highlight(js)
}
