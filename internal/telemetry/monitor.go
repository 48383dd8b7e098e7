// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"sync"
	"time"
)

// =============================================================================
// MONITOR
// =============================================================================

// Monitor holds the latest sample of every dashboard panel. Refresh methods
// are called from panel tickers; readers get copies.
type Monitor struct {
	mu       sync.RWMutex
	gen      *Generator
	nodes    int
	status   SystemStatus
	res      []Resource
	security SecurityState
	network  []Node
	updated  time.Time
}

// NewMonitor creates a monitor with every panel sampled once.
func NewMonitor(gen *Generator, nodes int, now time.Time) *Monitor {
	m := &Monitor{
		gen:      gen,
		nodes:    nodes,
		security: InitialSecurity(now),
	}
	m.status = gen.SystemStatus()
	m.res = gen.Resources()
	m.network = gen.Network(nodes)
	m.updated = now
	return m
}

// RefreshStatus resamples the status cards.
func (m *Monitor) RefreshStatus(now time.Time) {
	s := m.gen.SystemStatus()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = s
	m.updated = now
}

// RefreshResources resamples the allocation bars.
func (m *Monitor) RefreshResources(now time.Time) {
	r := m.gen.Resources()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.res = r
	m.updated = now
}

// RefreshSecurity advances the security panel by one tick.
func (m *Monitor) RefreshSecurity(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.security = m.gen.NextSecurity(m.security, now)
	m.updated = now
}

// Status returns the latest status cards.
func (m *Monitor) Status() SystemStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.status
	s.Security.ActiveDefenses = append([]string{}, s.Security.ActiveDefenses...)
	return s
}

// Resources returns the latest allocation bars.
func (m *Monitor) Resources() []Resource {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Resource{}, m.res...)
}

// Security returns the security panel.
func (m *Monitor) Security() SecurityState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.security
}

// Network returns the network ring.
func (m *Monitor) Network() []Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Node, len(m.network))
	for i, n := range m.network {
		n.Connections = append([]int{}, n.Connections...)
		out[i] = n
	}
	return out
}

// Updated returns the time of the last refresh.
func (m *Monitor) Updated() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.updated
}
