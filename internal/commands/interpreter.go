// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the MCP command registry and interpreter.
package commands

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// =============================================================================
// INTERPRETER
// =============================================================================

// macroBase is routed to the Automation handler before registry lookup.
const macroBase = "macro"

// Interpreter maps raw lines to responses. It holds no session state; the
// caller owns history and passes it in on every call.
type Interpreter struct {
	registry  *Registry
	completer *Completer
	now       func() time.Time

	mu       sync.RWMutex
	handlers map[Category]Handler
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithClock overrides the clock used for payload timestamps.
func WithClock(now func() time.Time) Option {
	return func(in *Interpreter) {
		in.now = now
	}
}

// NewInterpreter creates an interpreter over registry with the built-in
// category handlers.
func NewInterpreter(registry *Registry, opts ...Option) *Interpreter {
	in := &Interpreter{
		registry:  registry,
		completer: NewCompleter(registry),
		now:       time.Now,
		handlers:  builtinHandlers(registry),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// SetHandler installs or replaces the handler for a category after
// construction. The session uses it to attach the macro sub-protocol.
func (in *Interpreter) SetHandler(c Category, h Handler) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.handlers[c] = h
}

// Registry returns the registry the interpreter resolves against.
func (in *Interpreter) Registry() *Registry {
	return in.registry
}

// Completer returns the suggestion engine bound to the registry.
func (in *Interpreter) Completer() *Completer {
	return in.completer
}

// Suggest is a shorthand for Completer().Suggest.
func (in *Interpreter) Suggest(partial string, history []HistoryItem) []string {
	return in.completer.Suggest(partial, history)
}

// Resolve parses raw and reports the definition its base resolves to.
func (in *Interpreter) Resolve(raw string) (Request, *Definition, bool) {
	req := ParseLine(raw)
	if req.Base == macroBase {
		def, _ := in.registry.Lookup(macroBase)
		return req, def, def != nil
	}
	def, ok := in.registry.Lookup(req.Base)
	return req, def, ok
}

// Evaluate interprets one raw line. It never panics and never returns an
// error: unknown or malformed input becomes a warning response.
func (in *Interpreter) Evaluate(ctx context.Context, raw string, history []HistoryItem) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = Error(fmt.Sprintf("Internal error while evaluating %q.", raw), Payload{
				"panic": fmt.Sprint(r),
			})
		}
	}()

	req, def, ok := in.Resolve(raw)
	req.History = history
	req.Now = in.now()

	if !ok {
		return in.unknown(req)
	}

	in.mu.RLock()
	handler := in.handlers[def.Category]
	in.mu.RUnlock()

	if handler == nil {
		return Warning(fmt.Sprintf("%s commands are not available in this console.", def.Category.Title()), nil)
	}
	return handler(ctx, req)
}

// unknown builds the "command not recognized" response. An empty suggestion
// list leaves data.suggestions null.
func (in *Interpreter) unknown(req Request) Response {
	suggestions := in.completer.Suggest(req.Line, req.History)

	var block any
	if len(suggestions) > 0 {
		block = &SuggestionBlock{
			Text:     "Did you mean:",
			Commands: suggestions,
		}
	}
	return Warning(`Command not recognized: "`+req.Raw+`".`, Payload{
		"suggestions": block,
	})
}
