// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import "time"

// =============================================================================
// SYSTEM STATUS
// =============================================================================

// SystemStatus is one sample of the five dashboard status cards.
type SystemStatus struct {
	CPU      CPUStats      `json:"cpu"`
	Memory   MemoryStats   `json:"memory"`
	Network  NetworkStats  `json:"network"`
	Security SecurityStats `json:"security"`
	AI       AIStats       `json:"ai"`
}

// CPUStats describes processor load.
type CPUStats struct {
	Usage       int `json:"usage"`
	Cores       int `json:"cores"`
	Temperature int `json:"temperature"`
}

// MemoryStats describes memory load.
type MemoryStats struct {
	Usage     int    `json:"usage"`
	Total     string `json:"total"`
	Available string `json:"available"`
}

// NetworkStats describes link load.
type NetworkStats struct {
	Bandwidth         int     `json:"bandwidth"`
	ActiveConnections int     `json:"activeConnections"`
	PacketLoss        float64 `json:"packetLoss"`
}

// SecurityStats is the security card summary.
type SecurityStats struct {
	Status         string   `json:"status"`
	ThreatLevel    string   `json:"threatLevel"`
	ActiveDefenses []string `json:"activeDefenses"`
}

// AIStats describes the AI subsystem.
type AIStats struct {
	Status     string `json:"status"`
	Processes  int    `json:"processes"`
	Confidence int    `json:"confidence"`
}

// =============================================================================
// RESOURCE ALLOCATION
// =============================================================================

// Level classifies a percentage for colouring.
type Level int

const (
	LevelNormal Level = iota
	LevelWarning
	LevelDanger
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelDanger:
		return "danger"
	default:
		return "success"
	}
}

// LevelOf returns danger at 80 and above, warning at 60 and above.
func LevelOf(pct int) Level {
	switch {
	case pct >= 80:
		return LevelDanger
	case pct >= 60:
		return LevelWarning
	default:
		return LevelNormal
	}
}

// Resource is one subsystem allocation bar.
type Resource struct {
	Name       string `json:"name"`
	Allocation int    `json:"allocation"`
}

// Level classifies the allocation.
func (r Resource) Level() Level {
	return LevelOf(r.Allocation)
}

// =============================================================================
// SECURITY PANEL
// =============================================================================

// SecurityState is the evolving security panel.
type SecurityState struct {
	Overall         string    `json:"overall"`
	QuantumStatus   string    `json:"quantumStatus"`
	LastChecked     time.Time `json:"lastChecked"`
	FirewallStatus  string    `json:"firewallStatus"`
	BlockedAttempts int       `json:"blockedAttempts"`
	AuthStatus      string    `json:"authStatus"`
	Sessions        int       `json:"sessions"`
	AnomalyStatus   string    `json:"anomalyStatus"`
	LastScan        time.Time `json:"lastScan"`
}

// InitialSecurity returns the panel state shown at start.
func InitialSecurity(now time.Time) SecurityState {
	return SecurityState{
		Overall:         "optimal",
		QuantumStatus:   "secure",
		LastChecked:     now,
		FirewallStatus:  "active",
		BlockedAttempts: 42,
		AuthStatus:      "verified",
		Sessions:        7,
		AnomalyStatus:   "clear",
		LastScan:        now,
	}
}

// StatusLevel maps a component status word to a colour level.
func StatusLevel(status string) Level {
	switch status {
	case "warning", "attention":
		return LevelWarning
	case "breach", "danger", "detected":
		return LevelDanger
	default:
		return LevelNormal
	}
}

// =============================================================================
// NETWORK
// =============================================================================

// NodeTypes are the kinds of network node.
var NodeTypes = []string{"server", "gateway", "endpoint", "security", "storage"}

// Node is one vertex of the network ring.
type Node struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Connections []int  `json:"connections"`
}

// Healthy reports whether the node is operational.
func (n Node) Healthy() bool {
	return n.Status == "operational"
}
