// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jeranaias/mcp-console/internal/config"
	"github.com/jeranaias/mcp-console/internal/session"
	"github.com/jeranaias/mcp-console/internal/ui/console"
)

// Version information (can be overridden at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	theme      string
}

// load reads the configuration and applies flag overrides.
func (o *rootOptions) load() (*config.Config, string, error) {
	cfg, path, err := loadConfig(o.configPath)
	if err != nil {
		return nil, "", err
	}
	if o.theme != "" {
		cfg.UI.Theme = o.theme
		if err := cfg.Validate(); err != nil {
			return nil, "", fmt.Errorf("--theme: %w", err)
		}
	}
	config.SetGlobal(cfg)
	return cfg, path, nil
}

// NewRootCmd builds the mcp command tree. Without a subcommand it opens the
// dashboard.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "mcp",
		Short: "MCP - Master Control Program command console",
		Long: `mcp is a command console for the Master Control Program.

Run without arguments for the full-screen dashboard, "mcp console" for a
line-oriented prompt, or "mcp exec" to evaluate commands from arguments,
a file or a pipe.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, opts)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.mcp/config.toml)")
	root.PersistentFlags().StringVar(&opts.theme, "theme", "", "colour theme: auto, dark or light")

	root.AddCommand(
		newConsoleCmd(opts),
		newExecCmd(opts),
		newCommandsCmd(opts),
		newSuggestCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func runDashboard(cmd *cobra.Command, opts *rootOptions) error {
	if err := RequiresTTY("open the dashboard"); err != nil {
		return err
	}
	cfg, path, err := opts.load()
	if err != nil {
		return err
	}

	// Only an existing file can be watched for edits.
	watch := ""
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			watch = path
		}
	}

	return console.Run(cmd.Context(), console.Options{
		Config:    cfg,
		Session:   session.NewManager(SessionConfig(cfg)),
		WatchPath: watch,
	})
}

// =============================================================================
// VERSION
// =============================================================================

type versionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func newVersionCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versionInfo{
				Version:   Version,
				GitCommit: GitCommit,
				BuildDate: BuildDate,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			w := cmd.OutOrStdout()
			return OutputJSON(w, jsonOut, "version", func() (interface{}, error) {
				if !jsonOut {
					fmt.Fprintf(w, "mcp %s (%s, built %s) %s %s\n",
						info.Version, info.GitCommit, info.BuildDate, info.GoVersion, info.Platform)
				}
				return info, nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}
