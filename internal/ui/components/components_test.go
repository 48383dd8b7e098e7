// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/mcp-console/internal/commands"
	"github.com/jeranaias/mcp-console/internal/telemetry"
	"github.com/jeranaias/mcp-console/internal/ui/styles"
)

var epoch = time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

func newClockedToasts(perSecond float64, burst int) (*ToastManager, *time.Time) {
	now := epoch
	m := NewToastManager(perSecond, burst)
	m.SetClock(func() time.Time { return now })
	return m, &now
}

// =============================================================================
// TOAST TESTS
// =============================================================================

func TestToastForResponse(t *testing.T) {
	m, _ := newClockedToasts(10, 10)

	assert.Zero(t, m.AddForResponse(commands.Success("ok", nil)))
	assert.Zero(t, m.AddForResponse(commands.Info("fyi", nil)))

	m.AddForResponse(commands.Warning("careful", nil))
	m.AddForResponse(commands.Error("broken", nil))

	toasts := m.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, TitleCommandError, toasts[0].Title, "newest first")
	assert.Equal(t, "broken", toasts[0].Message)
	assert.Equal(t, ToastKindError, toasts[0].Kind)
	assert.Equal(t, TitleCommandWarning, toasts[1].Title)
}

func TestToastThrottle(t *testing.T) {
	m, now := newClockedToasts(2, 3)

	var shown int
	for i := 0; i < 10; i++ {
		if m.Add(ToastKindError, TitleCommandError, "x") != 0 {
			shown++
		}
	}
	assert.Equal(t, 3, shown, "burst only")
	assert.Equal(t, 7, m.Suppressed())

	*now = now.Add(time.Second)
	assert.NotZero(t, m.Add(ToastKindError, TitleCommandError, "later"))
}

func TestToastExpiry(t *testing.T) {
	m, now := newClockedToasts(10, 10)
	m.Add(ToastKindStatus, TitleConsoleCleared, "")
	m.Add(ToastKindError, TitleCommandError, "x")

	*now = now.Add(DefaultToastDuration)
	remaining := m.Tick()
	require.Len(t, remaining, 1)
	assert.Equal(t, ToastKindError, remaining[0].Kind)
	assert.Equal(t, ErrorToastDuration-DefaultToastDuration, remaining[0].TimeRemaining(*now))

	*now = now.Add(ErrorToastDuration)
	assert.Empty(t, m.Tick())
}

func TestToastCapAndRemove(t *testing.T) {
	m, _ := newClockedToasts(100, 100)
	var ids []int
	for i := 0; i < 8; i++ {
		ids = append(ids, m.Add(ToastKindWarning, TitleCommandWarning, "w"))
	}
	assert.Len(t, m.Toasts(), 5)

	m.Remove(ids[7])
	assert.Len(t, m.Toasts(), 4)
	m.Clear()
	assert.Empty(t, m.Toasts())
}

func TestToastDisabled(t *testing.T) {
	m, _ := newClockedToasts(10, 10)
	m.SetEnabled(false)
	assert.Zero(t, m.AddForResponse(commands.Error("x", nil)))
	assert.Empty(t, m.Toasts())
}

func TestRenderToastStack(t *testing.T) {
	m, _ := newClockedToasts(10, 10)
	m.Add(ToastKindWarning, TitleCommandWarning, "first")
	m.Add(ToastKindError, TitleCommandError, "second")

	out := RenderToastStack(m.Toasts(), 80)
	assert.Contains(t, out, "Command Warning")
	assert.Contains(t, out, "Command Error")
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "second"), "newest at the bottom")
	assert.Empty(t, RenderToastStack(nil, 80))
}

// =============================================================================
// PANEL TESTS
// =============================================================================

func TestFmtNumber(t *testing.T) {
	tests := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		912345:   "912,345",
		-1234567: "-1,234,567",
	}
	for in, want := range tests {
		if got := fmtNumber(in); got != want {
			t.Errorf("fmtNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusCards(t *testing.T) {
	s := telemetry.NewGenerator(1).SystemStatus()
	s.CPU.Usage = 85

	cards := StatusCards(s)
	require.Len(t, cards, 5)
	assert.Equal(t, "CPU", cards[0].Title)
	assert.Equal(t, "85%", cards[0].Headline)
	assert.Equal(t, telemetry.LevelDanger, cards[0].Level)
	assert.Equal(t, "OPTIMAL", cards[3].Headline)

	theme := styles.NewTheme("dark")
	row := RenderStatusRow(theme, s, 120)
	assert.Contains(t, row, "Memory")
	assert.Contains(t, row, "AI Core")
	for _, line := range strings.Split(row, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 120)
	}
}

func TestResourcePanel(t *testing.T) {
	theme := styles.NewTheme("dark")
	p := NewResourcePanel(theme, 40)

	out := p.View([]telemetry.Resource{{Name: "Quantum Computing", Allocation: 63}})
	assert.Contains(t, out, "RESOURCE ALLOCATION")
	assert.Contains(t, out, "Quantum Computing")
	assert.Contains(t, out, "63%")
}

func TestRenderSecurity(t *testing.T) {
	theme := styles.NewTheme("dark")
	s := telemetry.InitialSecurity(epoch)
	s.Overall = "attention"

	out := RenderSecurity(theme, s, 40)
	assert.Contains(t, out, "ATTENTION")
	assert.Contains(t, out, "Neural Firewall")
	assert.Contains(t, out, "42 blocked")
}

func TestRenderNetwork(t *testing.T) {
	theme := styles.NewTheme("dark")
	nodes := []telemetry.Node{
		{Name: "Node A", Type: "server", Status: "operational", Connections: []int{1}},
		{Name: "Node B", Type: "gateway", Status: "warning", Connections: []int{0, 2}},
		{Name: "Node C", Type: "storage", Status: "operational", Connections: []int{0}},
	}

	total, warnings, links := NetworkSummary(nodes)
	assert.Equal(t, [3]int{3, 1, 4}, [3]int{total, warnings, links})

	out := RenderNetwork(theme, nodes, 40)
	assert.Contains(t, out, "SA")
	assert.Contains(t, out, "GB")
	assert.Contains(t, out, "3 nodes")
}

// =============================================================================
// HELP, SUGGESTION AND PAYLOAD TESTS
// =============================================================================

func TestCommandReference(t *testing.T) {
	reg := commands.NewRegistry()
	md := CommandReference(reg)

	for _, cat := range commands.Categories() {
		if len(reg.ByCategory(cat)) > 0 {
			assert.Contains(t, md, "## "+cat.Title())
		}
	}
	for _, def := range reg.All() {
		assert.Contains(t, md, "### `"+def.Name+"`")
	}
	assert.Contains(t, md, "`clear`")
}

func TestMarkdownRendererFallsBackToSource(t *testing.T) {
	r := &MarkdownRenderer{}
	assert.Equal(t, "# x", r.Render("# x"))

	out := NewMarkdownRenderer("notty", 60).Render("# Title\n\nbody")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
}

func TestRenderSuggestions(t *testing.T) {
	theme := styles.NewTheme("dark")

	assert.Empty(t, RenderSuggestions(theme, nil, -1, 80))

	out := RenderSuggestions(theme, []string{"status", "security", "macro"}, 0, 80)
	assert.Contains(t, out, "status")
	assert.Contains(t, out, "macro")

	narrow := RenderSuggestions(theme, []string{"status", "security", "macro", "network"}, -1, 20)
	assert.Contains(t, narrow, "status")
	assert.Contains(t, narrow, "+")
	assert.NotContains(t, narrow, "network")
}

func TestPayloadJSON(t *testing.T) {
	assert.Empty(t, PayloadJSON(nil))
	assert.Equal(t, "{\n  \"cpu\": 24\n}", PayloadJSON(commands.Payload{"cpu": 24}))
}

func TestHighlighterNoop(t *testing.T) {
	h := NewHighlighter(true, "noop")
	payload := commands.Payload{"allocated": true, "efficiency": 92.7}

	assert.Equal(t, PayloadJSON(payload), h.HighlightPayload(payload))
	assert.Empty(t, h.HighlightPayload(nil))
}

func TestFormatterFor(t *testing.T) {
	tests := []struct {
		profile termenv.Profile
		want    string
	}{
		{termenv.TrueColor, "terminal16m"},
		{termenv.ANSI256, "terminal256"},
		{termenv.ANSI, "terminal16"},
		{termenv.Ascii, "noop"},
	}
	for _, tt := range tests {
		if got := FormatterFor(tt.profile); got != tt.want {
			t.Errorf("FormatterFor(%v) = %q, want %q", tt.profile, got, tt.want)
		}
	}
}

func TestHeader(t *testing.T) {
	h := NewHeader(styles.NewTheme("dark"))
	h.SetWidth(100)
	h.SessionID = "sess_20250314_150000"
	h.Recording = "daily"
	h.Uptime = "3m"

	out := h.View(epoch)
	assert.Contains(t, out, "MCP")
	assert.Contains(t, out, "REC daily")
	assert.Contains(t, out, "15:00:00")
}
