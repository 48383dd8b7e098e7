// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/mcp-console/internal/commands"
	"github.com/jeranaias/mcp-console/internal/config"
	"github.com/jeranaias/mcp-console/internal/session"
	"github.com/jeranaias/mcp-console/internal/ui/console"
	"github.com/jeranaias/mcp-console/internal/util"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// lineREPL provides line editing, persistent input history and Tab
// completion for the console prompt.
type lineREPL struct {
	line        *liner.State
	historyFile string
}

// newLineREPL creates a prompt whose Tab completion asks complete. An empty
// historyFile disables persistence.
func newLineREPL(historyFile string, complete func(string) []string) *lineREPL {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		return complete(partial)
	})

	r := &lineREPL{line: line, historyFile: historyFile}
	r.loadHistory()
	return r
}

func (r *lineREPL) loadHistory() {
	if r.historyFile == "" {
		return
	}
	if f, err := os.Open(r.historyFile); err == nil {
		_, _ = r.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads one line, adding non-blank input to the history.
func (r *lineREPL) ReadInput(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if !commands.IsBlank(input) {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// saveHistory persists the input history owner-readable only.
func (r *lineREPL) saveHistory() {
	if r.historyFile == "" {
		return
	}
	var buf bytes.Buffer
	if _, err := r.line.WriteHistory(&buf); err != nil {
		return
	}
	if err := util.AtomicWriteFileWithDir(r.historyFile, buf.Bytes(), 0o600, 0o700); err != nil {
		log.Printf("WARNING: failed to save console history: %v", err)
	}
}

// Close saves history and restores the terminal.
func (r *lineREPL) Close() {
	r.saveHistory()
	r.line.Close()
}

// =============================================================================
// CONSOLE COMMAND
// =============================================================================

func newConsoleCmd(opts *rootOptions) *cobra.Command {
	var noHistory bool
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Interactive line console with history and Tab completion",
		Long: `Start a line-oriented MCP console.

Up/Down recall earlier lines (kept in ~/.mcp/history), Tab cycles the
suggestion engine's completions. "clear" empties the session history,
"exit" or Ctrl+D leaves.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}

			sess := session.NewManager(SessionConfig(cfg))
			defer sess.Close()

			pr := newPrinter(cmd.OutOrStdout(), cfg)
			sess.OnPlayback(pr.Entry)

			historyFile := ""
			if !noHistory {
				if p, err := config.HistoryPath(); err == nil {
					historyFile = p
				}
			}
			repl := newLineREPL(historyFile, sess.Suggest)
			defer repl.Close()

			return runREPL(cmd.Context(), sess, pr, repl.ReadInput, cfg.Console.Prompt)
		},
	}
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not read or write ~/.mcp/history")
	return cmd
}

// runREPL reads lines with read until exit, EOF or Ctrl+C.
func runREPL(ctx context.Context, sess *session.Manager, pr *printer, read func(string) (string, error), prompt string) error {
	pr.System(console.WelcomeLine)
	for {
		input, err := read(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		switch consoleVerb(input) {
		case verbExit:
			return nil
		case verbClear:
			sess.Clear()
			pr.System("Console cleared.")
			continue
		}

		entry, err := sess.Submit(ctx, input)
		if errors.Is(err, session.ErrBlankLine) {
			continue
		}
		if err != nil {
			return err
		}
		pr.Entry(entry)
	}
}
