// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry produces the synthetic metrics shown on the dashboard.
//
// Nothing here measures the host. A Generator draws values from fixed ranges
// (CPU 20-49%, six subsystem allocations, a ring of network nodes) and a
// Monitor keeps the latest sample of each panel for the UI to read.
//
// # Usage
//
//	gen := telemetry.NewGenerator(cfg.Dashboard.Seed)
//	mon := telemetry.NewMonitor(gen, cfg.Dashboard.NetworkNodes, time.Now())
//	mon.RefreshSecurity(time.Now())
//	panel := mon.Security()
//
// A non-zero seed makes the sequence repeatable, which the tests rely on.
package telemetry
