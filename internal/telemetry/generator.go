// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/jeranaias/mcp-console/internal/util"
)

// Generator produces synthetic dashboard metrics. A fixed seed yields a
// repeatable sequence.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator. seed 0 seeds from the clock.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// between returns an int in [lo, lo+span).
func (g *Generator) between(lo, span int) int {
	return lo + g.rng.Intn(span)
}

// SystemStatus samples the status cards.
func (g *Generator) SystemStatus() SystemStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	return SystemStatus{
		CPU: CPUStats{
			Usage:       g.between(20, 30),
			Cores:       16,
			Temperature: g.between(60, 10),
		},
		Memory: MemoryStats{
			Usage:     g.between(30, 20),
			Total:     "128 TB",
			Available: "86 TB",
		},
		Network: NetworkStats{
			Bandwidth:         g.between(60, 40),
			ActiveConnections: g.between(800, 200),
			PacketLoss:        math.Round(g.rng.Float64()*0.4*100) / 100,
		},
		Security: SecurityStats{
			Status:         "optimal",
			ThreatLevel:    "low",
			ActiveDefenses: []string{"quantum encryption", "neural firewall", "heuristic scanning"},
		},
		AI: AIStats{
			Status:     "operational",
			Processes:  g.between(100, 50),
			Confidence: g.between(90, 10),
		},
	}
}

// Resources samples the six allocation bars.
func (g *Generator) Resources() []Resource {
	g.mu.Lock()
	defer g.mu.Unlock()

	return []Resource{
		{Name: "Quantum Computing", Allocation: g.between(50, 30)},
		{Name: "Neural Processing", Allocation: g.between(70, 20)},
		{Name: "Data Storage", Allocation: g.between(30, 40)},
		{Name: "Network Bandwidth", Allocation: g.between(60, 25)},
		{Name: "Security Systems", Allocation: g.between(75, 15)},
		{Name: "User Interfaces", Allocation: g.between(20, 50)},
	}
}

// NextSecurity evolves the security panel by one tick: 5% an anomaly is
// detected, 5% more firewall blocks, otherwise everything is clear again.
func (g *Generator) NextSecurity(prev SecurityState, now time.Time) SecurityState {
	g.mu.Lock()
	defer g.mu.Unlock()

	next := prev
	roll := g.rng.Float64()
	switch {
	case roll > 0.95:
		next.Overall = "attention"
		next.AnomalyStatus = "detected"
		next.LastScan = now
	case roll > 0.9:
		next.FirewallStatus = "active"
		next.BlockedAttempts += g.between(1, 5)
	default:
		next.Overall = "optimal"
		next.QuantumStatus = "secure"
		next.LastChecked = now
		next.AnomalyStatus = "clear"
		next.LastScan = now
	}
	return next
}

// Network samples a ring of n nodes. Each node links to 1..5 distinct others.
func (g *Generator) Network(n int) []Node {
	g.mu.Lock()
	defer g.mu.Unlock()

	nodes := make([]Node, n)
	for i := range nodes {
		status := "operational"
		if g.rng.Float64() > 0.9 {
			status = "warning"
		}
		nodes[i] = Node{
			ID:     "node-" + util.IntToString(i),
			Name:   "Node " + nodeLetter(i),
			Type:   NodeTypes[g.rng.Intn(len(NodeTypes))],
			Status: status,
		}
	}

	for i := range nodes {
		want := g.between(1, 5)
		if want > n-1 {
			want = n - 1
		}
		for _, j := range g.rng.Perm(n) {
			if len(nodes[i].Connections) == want {
				break
			}
			if j != i {
				nodes[i].Connections = append(nodes[i].Connections, j)
			}
		}
	}
	return nodes
}

// nodeLetter names nodes A..Z, then AA, AB and so on.
func nodeLetter(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return nodeLetter(i/26-1) + string(rune('A'+i%26))
}
