// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/mcp-console/internal/commands"
	"github.com/jeranaias/mcp-console/internal/export"
	"github.com/jeranaias/mcp-console/internal/session"
)

type execOptions struct {
	file      string
	jsonOut   bool
	exportFmt string
	exportDir string
	strict    bool
}

func newExecCmd(opts *rootOptions) *cobra.Command {
	eo := &execOptions{}
	cmd := &cobra.Command{
		Use:   "exec [command line]...",
		Short: "Evaluate command lines non-interactively",
		Long: `Evaluate each argument as one console line, in order.

Lines can also come from --file (use "-" for stdin) or from a pipe. Blank
lines and lines starting with "#" are skipped. Macro playback started by a
line finishes before the next line runs.`,
		Example: `  mcp exec status "allocate quantum 80"
  mcp exec --json "status network"
  mcp exec -f checks.mcp --export markdown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if eo.exportFmt != "" {
				if _, err := export.ForFormat(eo.exportFmt, export.DefaultOptions()); err != nil {
					return err
				}
			}
			lines, err := execLines(cmd.InOrStdin(), args, eo.file)
			if err != nil {
				return err
			}
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			sess := session.NewManager(SessionConfig(cfg))
			defer sess.Close()
			return runExec(cmd, sess, newPrinter(cmd.OutOrStdout(), cfg), lines, eo)
		},
	}
	cmd.Flags().StringVarP(&eo.file, "file", "f", "", `read lines from a file ("-" for stdin)`)
	cmd.Flags().BoolVar(&eo.jsonOut, "json", false, "print the transcript as JSON")
	cmd.Flags().StringVar(&eo.exportFmt, "export", "", "also export the transcript: "+strings.Join(export.Formats(), ", "))
	cmd.Flags().StringVar(&eo.exportDir, "export-dir", ".", "directory for --export")
	cmd.Flags().BoolVar(&eo.strict, "strict", false, "exit non-zero when any response is an error")
	return cmd
}

// execLines collects lines from args, then --file, then a piped stdin.
func execLines(stdin io.Reader, args []string, file string) ([]string, error) {
	lines := append([]string(nil), args...)

	var src io.Reader
	switch {
	case file == "-":
		src = stdin
	case file != "":
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", file, err)
		}
		defer f.Close()
		src = f
	case len(args) == 0 && !IsTTY():
		src = stdin
	}

	if src != nil {
		scanner := bufio.NewScanner(src)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			lines = append(lines, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read lines: %w", err)
		}
	}

	if len(lines) == 0 {
		return nil, errors.New("no command lines given")
	}
	return lines, nil
}

func runExec(cmd *cobra.Command, sess *session.Manager, pr *printer, lines []string, eo *execOptions) error {
	ctx := cmd.Context()
	if !eo.jsonOut {
		sess.OnPlayback(pr.Entry)
	}

run:
	for _, line := range lines {
		switch consoleVerb(line) {
		case verbExit:
			break run
		case verbClear:
			sess.Clear()
			continue
		}

		entry, err := sess.Submit(ctx, line)
		if errors.Is(err, session.ErrBlankLine) {
			continue
		}
		if err != nil {
			return err
		}
		if !eo.jsonOut {
			pr.Entry(entry)
		}
		sess.Wait()
	}

	st := sess.GetStatus()
	t := export.FromHistory(st.SessionID, st.StartTime, sess.History(), time.Now())

	if eo.jsonOut {
		if err := NewJSONResponse("exec", t).Print(cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	if eo.exportFmt != "" {
		opts := export.DefaultOptions()
		opts.OutputDir = eo.exportDir
		path, err := export.ExportFormat(t, eo.exportFmt, opts)
		if err != nil {
			return fmt.Errorf("export transcript: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported transcript to %s\n", path)
	}

	if eo.strict {
		if n := t.Counts()[commands.StatusError]; n > 0 {
			return fmt.Errorf("%d command(s) returned an error", n)
		}
	}
	return nil
}
