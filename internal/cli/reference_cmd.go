// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/mcp-console/internal/commands"
	"github.com/jeranaias/mcp-console/internal/config"
	"github.com/jeranaias/mcp-console/internal/session"
	"github.com/jeranaias/mcp-console/internal/ui/components"
	"github.com/jeranaias/mcp-console/internal/util"
)

// =============================================================================
// COMMANDS
// =============================================================================

func newCommandsCmd(opts *rootOptions) *cobra.Command {
	var raw, jsonOut bool
	cmd := &cobra.Command{
		Use:     "commands [command]",
		Aliases: []string{"reference"},
		Short:   "Show the MCP command reference",
		Long: `Show every console command grouped by category, rendered as Markdown.

With a command name, show the console's own help for it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			sess := session.NewManager(SessionConfig(cfg))
			defer sess.Close()
			w := cmd.OutOrStdout()

			if len(args) == 1 {
				entry, err := sess.Submit(cmd.Context(), "help "+args[0])
				if err != nil {
					return err
				}
				return OutputJSON(w, jsonOut, "commands", func() (interface{}, error) {
					if !jsonOut {
						newPrinter(w, cfg).Entry(entry)
					}
					return entry.Response, nil
				})
			}

			reg := sess.Registry()
			return OutputJSON(w, jsonOut, "commands", func() (interface{}, error) {
				if jsonOut {
					return reg.All(), nil
				}
				md := components.CommandReference(reg)
				if !raw {
					md = components.NewMarkdownRenderer(markdownStyle(cfg), GetTerminalWidth()).Render(md)
				}
				fmt.Fprint(w, md)
				return nil, nil
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the Markdown source")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

// markdownStyle picks the glamour style for stdout.
func markdownStyle(cfg *config.Config) string {
	if !ColorsEnabled() {
		return "notty"
	}
	return cfg.UI.Theme
}

// =============================================================================
// SUGGEST
// =============================================================================

type suggestResult struct {
	Input       string                `json:"input"`
	Suggestions []commands.Completion `json:"suggestions"`
}

func newSuggestCmd(opts *rootOptions) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "suggest [partial input]",
		Short: "Show completions for partial input",
		Example: `  mcp suggest sta
  mcp suggest status n`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			sess := session.NewManager(SessionConfig(cfg))
			defer sess.Close()

			input := strings.Join(args, " ")
			result := suggestResult{Input: input, Suggestions: sess.Complete(input)}
			w := cmd.OutOrStdout()
			return OutputJSON(w, jsonOut, "suggest", func() (interface{}, error) {
				if jsonOut {
					return result, nil
				}
				if len(result.Suggestions) == 0 {
					fmt.Fprintln(w, DimStyle.Render("No suggestions."))
					return nil, nil
				}
				for _, c := range result.Suggestions {
					fmt.Fprintln(w, CommandStyle.Render(util.PadRight(c.Value, 28))+DimStyle.Render(c.Description))
				}
				return nil, nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}
