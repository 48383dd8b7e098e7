// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for mcp.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides, validation and hot reload.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - ConsoleConfig: prompt, playback delay, macro nesting depth
//   - DashboardConfig: mock metric refresh rates and generator seed
//   - UIConfig: theme, suggestion chips, payloads, toast throttling
//   - MacroPreset: a [[macros]] entry loaded into every session
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (MCP_*)
//   - $MCP_CONFIG
//   - ~/.mcp/config.toml
//   - ~/.mcp/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	delay := cfg.StepDelay()
//
// Dot-notation access backs "mcp config get|set":
//
//	cfg.Set("console.playback_step_delay_ms", "250")
//	v, _ := cfg.Get("ui.theme")
//
// Watch delivers a reloaded Config whenever the file changes.
package config
