// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the MCP command registry and interpreter.
package commands

import (
	"context"
	"fmt"
)

// Handler evaluates a resolved request for one category. Handlers must be
// total: every input maps to a Response.
type Handler func(ctx context.Context, req Request) Response

// builtinHandlers returns the handler table for every category except
// Automation, which the session installs.
func builtinHandlers(registry *Registry) map[Category]Handler {
	return map[Category]Handler{
		CategorySystem:   handleSystem,
		CategoryResource: handleResource,
		CategorySecurity: handleSecurity,
		CategoryNetwork:  handleNetwork,
		CategoryHelp:     helpHandler(registry),
	}
}

// =============================================================================
// SYSTEM
// =============================================================================

func handleSystem(_ context.Context, req Request) Response {
	switch req.Arg(0) {
	case "network":
		return Success("Network systems operating at optimal efficiency.", Payload{
			"network": Payload{
				"status":      "optimal",
				"throughput":  "12.7 TB/s",
				"latency":     "0.8ms",
				"activeNodes": 42,
			},
		})
	case "security":
		return Info("Security systems active. Threat assessment ongoing.", Payload{
			"security": Payload{
				"status":          "vigilant",
				"threatLevel":     "minimal",
				"activeProtocols": 7,
				"lastBreach":      "none detected",
			},
		})
	case "resources":
		return Success("System resources are balanced and available.", Payload{
			"cpu":     32,
			"memory":  47,
			"storage": 28,
			"quantum": 63,
		})
	case "ai":
		return Success("AI core operational. Confidence within expected range.", Payload{
			"ai": Payload{
				"status":     "operational",
				"processes":  128,
				"confidence": 97,
			},
		})
	}
	return Success("All MCP systems operating within normal parameters.", Payload{
		"cpu":      24,
		"memory":   42,
		"network":  78,
		"security": "optimal",
	})
}

// =============================================================================
// RESOURCE
// =============================================================================

func handleResource(_ context.Context, req Request) Response {
	resource := req.Arg(0)
	amount, ok := parseAmount(req.Arg(1))
	if resource != "" && ok {
		return Success(fmt.Sprintf("Allocated %d%% to %s systems.", amount, resource), Payload{
			"allocated": true,
			"resource":  resource,
			"amount":    amount,
			"timestamp": isoTimestamp(req.Now),
		})
	}
	return Success("Resource allocation optimized based on current workloads.", Payload{
		"allocated":  true,
		"efficiency": 92.7,
	})
}

// =============================================================================
// SECURITY
// =============================================================================

func handleSecurity(_ context.Context, req Request) Response {
	switch req.Arg(0) {
	case "scan":
		return Success("Security scan complete. No vulnerabilities detected.", Payload{
			"scanned":         true,
			"vulnerabilities": 0,
			"timestamp":       isoTimestamp(req.Now),
		})
	case "threat-level":
		return Info("Current threat level: MINIMAL", Payload{
			"threatLevel": "minimal",
			"factors": []string{
				"No unusual network activity",
				"All authentication systems secure",
				"Quantum encryption stable",
			},
		})
	}
	return Info("Security systems active. No immediate threats detected.", Payload{
		"threatLevel": "low",
		"scanResults": Payload{
			"network":   "secure",
			"endpoints": "monitored",
			"quantum":   "stable",
		},
	})
}

// =============================================================================
// NETWORK
// =============================================================================

func handleNetwork(_ context.Context, req Request) Response {
	switch req.Arg(0) {
	case "optimize":
		return Success("Network routes optimized for maximum throughput.", Payload{
			"optimized":   true,
			"improvement": "23%",
			"timestamp":   isoTimestamp(req.Now),
		})
	case "diagram":
		return Info("Generating network topology visualization.", Payload{
			"visualization": true,
			"nodes":         42,
			"connections":   128,
		})
	}
	return Success("Network topology mapped and optimized.", Payload{
		"nodes":       42,
		"connections": 128,
		"bandwidth":   "10.4 TB/s",
	})
}

// =============================================================================
// HELP
// =============================================================================

const helpTip = `Type "help [command]" for detailed information on a specific command.`

func helpHandler(registry *Registry) Handler {
	return func(_ context.Context, req Request) Response {
		topic := req.Arg(0)
		if topic != "" {
			def, ok := registry.Lookup(topic)
			if !ok {
				return Warning(`No help available for: "`+topic+`"`, nil)
			}
			return Info("Help for command: "+def.Name, Payload{
				"command":     def.Name,
				"description": def.Description,
				"usage":       def.Usage,
				"examples":    append([]string{}, def.Examples...),
				"aliases":     append([]string{}, def.Aliases...),
			})
		}

		categories := make([]Payload, 0, len(Categories()))
		for _, c := range Categories() {
			names := []string{}
			for _, def := range registry.ByCategory(c) {
				names = append(names, def.Name)
			}
			categories = append(categories, Payload{
				"name":     c.Title(),
				"commands": names,
			})
		}
		return Info("MCP Command System - Available Categories", Payload{
			"categories": categories,
			"tip":        helpTip,
		})
	}
}
