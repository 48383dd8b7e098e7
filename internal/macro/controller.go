// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package macro

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jeranaias/mcp-console/internal/commands"
)

// DefaultMaxDepth bounds nested "macro run" playback.
const DefaultMaxDepth = 8

// subVerbs lists the verbs of the macro sub-protocol in help order.
var subVerbs = []string{"record", "stop", "run", "list"}

// Player plays saved macros by resubmitting their lines.
type Player interface {
	// Play starts playback in the background and returns a task ID.
	Play(ctx context.Context, m Macro) (string, error)

	// PlayInline plays m on the calling goroutine and returns when every
	// line has been evaluated.
	PlayInline(ctx context.Context, m Macro) error
}

// =============================================================================
// PLAYBACK DEPTH
// =============================================================================

type depthKey struct{}

// WithDepth marks ctx as belonging to playback nested depth levels deep.
func WithDepth(ctx context.Context, depth int) context.Context {
	return context.WithValue(ctx, depthKey{}, depth)
}

// Depth returns the playback depth of ctx; 0 means the line was typed.
func Depth(ctx context.Context) int {
	if d, ok := ctx.Value(depthKey{}).(int); ok {
		return d
	}
	return 0
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller implements the "macro" sub-protocol over a recorder and library.
// Its Handle method is installed as the interpreter's Automation handler.
type Controller struct {
	registry *commands.Registry
	recorder *Recorder
	library  *Library
	maxDepth int

	mu     sync.RWMutex
	player Player
}

// NewController creates a controller. maxDepth <= 0 selects DefaultMaxDepth.
func NewController(registry *commands.Registry, recorder *Recorder, library *Library, maxDepth int) *Controller {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Controller{
		registry: registry,
		recorder: recorder,
		library:  library,
		maxDepth: maxDepth,
	}
}

// SetPlayer attaches the playback engine.
func (c *Controller) SetPlayer(p Player) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.player = p
}

// Recorder returns the recording-session state machine.
func (c *Controller) Recorder() *Recorder {
	return c.recorder
}

// Library returns the saved-macro collection.
func (c *Controller) Library() *Library {
	return c.library
}

// SubVerb returns the sub-verb of line when its base resolves to the
// Automation category ("script stop" yields "stop").
func (c *Controller) SubVerb(line string) (string, bool) {
	req := commands.ParseLine(line)
	if req.Base == "" {
		return "", false
	}
	def, ok := c.registry.Lookup(req.Base)
	if !ok || def.Category != commands.CategoryAutomation {
		return "", false
	}
	return req.Arg(0), true
}

// IsRecordLine reports whether line starts a recording.
func (c *Controller) IsRecordLine(line string) bool {
	verb, ok := c.SubVerb(line)
	return ok && verb == "record"
}

// Observe captures a line typed by the user into the active recording. Record
// and stop lines are never captured. Call it before the line is evaluated.
func (c *Controller) Observe(line string) bool {
	if verb, ok := c.SubVerb(line); ok && (verb == "record" || verb == "stop") {
		return false
	}
	return c.recorder.Capture(line)
}

// Handle evaluates one "macro ..." request.
func (c *Controller) Handle(ctx context.Context, req commands.Request) commands.Response {
	switch req.Arg(0) {
	case "record":
		return c.record(req)
	case "stop":
		return c.stop(req)
	case "run":
		return c.run(ctx, req)
	case "list":
		return c.list()
	}
	return commands.Warning("Unknown macro command. Available options: record, stop, run, list", commands.Payload{
		"options": append([]string{}, subVerbs...),
	})
}

func (c *Controller) record(req commands.Request) commands.Response {
	name := req.Arg(1)
	if name == "" {
		name = "macro_" + req.Now.Format("20060102_150405")
	}

	if err := c.recorder.Start(name, req.Now); errors.Is(err, ErrAlreadyRecording) {
		_, active, captured := c.recorder.Status()
		return commands.Warning(fmt.Sprintf(`Already recording macro "%s". Type "macro stop" to finish recording.`, active), commands.Payload{
			"recording": true,
			"macroName": active,
			"captured":  captured,
		})
	}

	return commands.Info(fmt.Sprintf(`Started recording macro "%s". Type "macro stop" to finish recording.`, name), commands.Payload{
		"recording": true,
		"macroName": name,
	})
}

func (c *Controller) stop(req commands.Request) commands.Response {
	name, captured, err := c.recorder.Stop()
	if err != nil {
		return commands.Warning(`No macro is being recorded. Type "macro record <name>" to start.`, commands.Payload{
			"recording": false,
		})
	}

	if len(captured) == 0 {
		return commands.Error(fmt.Sprintf(`Nothing was recorded. Macro "%s" was not saved.`, name), commands.Payload{
			"recording": false,
			"macroName": name,
		})
	}

	m := New(name, captured, req.Now)
	c.library.Add(m)
	return commands.Success(fmt.Sprintf(`Macro "%s" saved with %d commands.`, m.Name, len(m.Commands)), commands.Payload{
		"recording":    false,
		"macroName":    m.Name,
		"description":  m.Description,
		"commandCount": len(m.Commands),
		"commands":     append([]string{}, m.Commands...),
	})
}

func (c *Controller) run(ctx context.Context, req commands.Request) commands.Response {
	name := req.Arg(1)
	if name == "" {
		return commands.Warning("Please specify a macro name to run.", commands.Payload{
			"macros": c.library.Names(),
		})
	}

	m, ok := c.library.Find(name)
	if !ok {
		return commands.Warning(fmt.Sprintf(`No macro found with name: "%s"`, name), commands.Payload{
			"macros": c.library.Names(),
		})
	}

	c.mu.RLock()
	player := c.player
	c.mu.RUnlock()
	if player == nil {
		return commands.Warning("Macro playback is not available in this console.", nil)
	}

	depth := Depth(ctx)
	if depth >= c.maxDepth {
		return commands.Warning(fmt.Sprintf(`Macro "%s" not run: nesting limit of %d reached.`, m.Name, c.maxDepth), commands.Payload{
			"depth": depth,
		})
	}

	if depth > 0 {
		if err := player.PlayInline(WithDepth(ctx, depth+1), m); err != nil {
			if errors.Is(err, context.Canceled) {
				return commands.Warning(fmt.Sprintf(`Macro "%s" playback canceled.`, m.Name), nil)
			}
			return commands.Error(fmt.Sprintf(`Macro "%s" failed: %v`, m.Name, err), nil)
		}
		return commands.Success(fmt.Sprintf(`Executed macro "%s" with %d commands.`, m.Name, len(m.Commands)), commands.Payload{
			"executed":     true,
			"macroName":    m.Name,
			"commandCount": len(m.Commands),
		})
	}

	id, err := player.Play(WithDepth(ctx, 1), m)
	if err != nil {
		return commands.Error(fmt.Sprintf(`Could not start macro "%s": %v`, m.Name, err), nil)
	}
	return commands.Success(fmt.Sprintf(`Executing macro "%s" with %d commands.`, m.Name, len(m.Commands)), commands.Payload{
		"executing":    true,
		"macroName":    m.Name,
		"commandCount": len(m.Commands),
		"taskId":       id,
	})
}

func (c *Controller) list() commands.Response {
	saved := c.library.All()
	entries := make([]commands.Payload, 0, len(saved))
	for _, m := range saved {
		entries = append(entries, commands.Payload{
			"name":         m.Name,
			"commandCount": len(m.Commands),
			"description":  m.Description,
		})
	}

	if len(entries) == 0 {
		return commands.Info(`No macros saved. Type "macro record <name>" to start recording.`, commands.Payload{
			"macros": entries,
		})
	}
	return commands.Info("Available macros:", commands.Payload{
		"macros": entries,
	})
}
