// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jeranaias/mcp-console/internal/config"
	"github.com/jeranaias/mcp-console/internal/macro"
	"github.com/jeranaias/mcp-console/internal/session"
	"github.com/jeranaias/mcp-console/internal/ui/components"
)

// =============================================================================
// CONFIG AND SESSION SETUP
// =============================================================================

// loadConfig loads the file named by --config, or the resolved default. It
// returns the path that was (or would be) read.
func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		cfg, err := config.LoadFromPath(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	resolved, err := config.ResolvePath()
	if err != nil {
		resolved = ""
	}
	return cfg, resolved, nil
}

// SessionConfig converts the [console] section and [[macros]] presets into a
// session configuration.
func SessionConfig(cfg *config.Config) session.Config {
	sc := session.DefaultConfig()
	sc.StepDelay = cfg.StepDelay()
	sc.MaxMacroDepth = cfg.Console.MaxMacroDepth
	sc.HistoryLimit = cfg.Console.HistoryLimit
	for _, p := range cfg.Macros {
		sc.Presets = append(sc.Presets, macro.Macro{
			Name:        p.Name,
			Description: p.Description,
			Commands:    append([]string(nil), p.Commands...),
		})
	}
	return sc
}

// =============================================================================
// CONSOLE VERBS
// =============================================================================

type verb int

const (
	verbNone verb = iota
	verbClear
	verbExit
)

// consoleVerb recognises the lines every front end handles itself instead
// of sending them to the interpreter.
func consoleVerb(line string) verb {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "clear":
		return verbClear
	case "exit", "quit":
		return verbExit
	}
	return verbNone
}

// =============================================================================
// ENTRY PRINTER
// =============================================================================

// printer writes evaluated entries. Playback entries arrive on the playback
// goroutine, so writes are serialized.
type printer struct {
	mu           sync.Mutex
	w            io.Writer
	prompt       string
	showPayloads bool
	highlighter  *components.Highlighter
}

func newPrinter(w io.Writer, cfg *config.Config) *printer {
	dark := true
	if cfg.UI.Theme == "light" {
		dark = false
	}
	return &printer{
		w:            w,
		prompt:       strings.TrimSpace(cfg.Console.Prompt),
		showPayloads: cfg.UI.ShowPayloads,
		highlighter:  components.NewHighlighter(dark, components.FormatterFor(GetColorProfile())),
	}
}

// Entry prints one evaluated line and its response.
func (p *printer) Entry(e session.Entry) {
	p.mu.Lock()
	defer p.mu.Unlock()

	head := PromptStyle.Render(p.prompt) + " " + CommandStyle.Render(e.Command)
	if e.Origin == session.OriginPlayback {
		head += DimStyle.Render("  (macro)")
	}
	fmt.Fprintln(p.w, head)
	fmt.Fprintln(p.w, "  "+RenderResponse(e.Response))
	if p.showPayloads && len(e.Response.Data) > 0 {
		for _, line := range strings.Split(p.highlighter.HighlightPayload(e.Response.Data), "\n") {
			fmt.Fprintln(p.w, "    "+line)
		}
	}
}

// System prints a console notice.
func (p *printer) System(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, SystemStyle.Render(msg))
}
