// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/mcp-console/internal/commands"
	"github.com/jeranaias/mcp-console/internal/macro"
)

func newTestManager(t *testing.T, delay time.Duration) *Manager {
	t.Helper()
	cfg := DefaultConfig()
	cfg.StepDelay = delay
	m := NewManager(cfg)
	t.Cleanup(m.Close)
	return m
}

func mustSubmit(t *testing.T, m *Manager, line string) Entry {
	t.Helper()
	entry, err := m.Submit(context.Background(), line)
	require.NoError(t, err)
	return entry
}

func commandsOf(items []commands.HistoryItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Command
	}
	return out
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.StepDelay != 500*time.Millisecond {
		t.Errorf("Default StepDelay = %v, want 500ms", cfg.StepDelay)
	}
	if cfg.MaxMacroDepth != macro.DefaultMaxDepth {
		t.Errorf("Default MaxMacroDepth = %d, want %d", cfg.MaxMacroDepth, macro.DefaultMaxDepth)
	}
}

func TestNewManager(t *testing.T) {
	m := newTestManager(t, 0)

	if !strings.HasPrefix(m.SessionID(), "sess_") {
		t.Errorf("SessionID should start with 'sess_', got %q", m.SessionID())
	}
	if len(m.History()) != 0 {
		t.Error("new session should have an empty history")
	}
}

// =============================================================================
// SUBMISSION TESTS
// =============================================================================

func TestSubmitAppendsHistory(t *testing.T) {
	m := newTestManager(t, 0)

	entry := mustSubmit(t, m, "  Status Network ")
	assert.Equal(t, "Status Network", entry.Command)
	assert.Equal(t, OriginUser, entry.Origin)
	assert.Equal(t, commands.StatusSuccess, entry.Response.Status)

	mustSubmit(t, m, "frobnicate")
	assert.Equal(t, []string{"Status Network", "frobnicate"}, commandsOf(m.History()))
}

func TestSubmitRejectsBlankLines(t *testing.T) {
	m := newTestManager(t, 0)

	for _, line := range []string{"", "   ", "\t\n"} {
		_, err := m.Submit(context.Background(), line)
		assert.ErrorIs(t, err, ErrBlankLine)
	}
	assert.Empty(t, m.History())
}

func TestSuggestUsesSessionHistory(t *testing.T) {
	m := newTestManager(t, 0)
	assert.Equal(t, []string{"status", "help"}, m.Suggest(""))

	mustSubmit(t, m, "security scan")
	assert.Equal(t, []string{"security scan"}, m.Suggest(""))
	assert.Equal(t, []string{"network"}, m.Suggest("net"))
}

func TestNavigatorResetsOnSubmit(t *testing.T) {
	m := newTestManager(t, 0)
	mustSubmit(t, m, "status")
	mustSubmit(t, m, "help")

	line, _ := m.Navigator().Back()
	assert.Equal(t, "help", line)
	line, _ = m.Navigator().Back()
	assert.Equal(t, "status", line)

	mustSubmit(t, m, "network")
	assert.False(t, m.Navigator().Active())
	line, _ = m.Navigator().Back()
	assert.Equal(t, "network", line)
}

func TestConcurrentSubmitAndRecall(t *testing.T) {
	m := newTestManager(t, 0)
	mustSubmit(t, m, "status")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, _ = m.Submit(context.Background(), "status")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			m.Navigator().Back()
			m.Navigator().Forward()
		}
	}()
	wg.Wait()

	assert.Len(t, m.History(), 201)
}

func TestSessionsAreIndependent(t *testing.T) {
	a := newTestManager(t, 0)
	b := newTestManager(t, 0)

	mustSubmit(t, a, "macro record m")
	mustSubmit(t, a, "status")
	mustSubmit(t, a, "macro stop")

	assert.Len(t, a.Macros(), 1)
	assert.Empty(t, b.Macros())
	assert.Empty(t, b.History())
}

// =============================================================================
// MACRO TESTS
// =============================================================================

func TestMacroRecordAndPlayback(t *testing.T) {
	m := newTestManager(t, time.Millisecond)

	var mu sync.Mutex
	var played []Entry
	m.OnPlayback(func(e Entry) {
		mu.Lock()
		defer mu.Unlock()
		played = append(played, e)
	})

	mustSubmit(t, m, "macro record m")
	mustSubmit(t, m, "status")
	mustSubmit(t, m, "network optimize")
	stop := mustSubmit(t, m, "macro stop")
	require.Equal(t, commands.StatusSuccess, stop.Response.Status)

	run := mustSubmit(t, m, "macro run m")
	require.Equal(t, commands.StatusSuccess, run.Response.Status, run.Response.Message)
	m.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, played, 2)
	assert.Equal(t, "status", played[0].Command)
	assert.Equal(t, "network optimize", played[1].Command)
	assert.Equal(t, OriginPlayback, played[0].Origin)
	assert.False(t, played[1].Timestamp.Before(played[0].Timestamp))

	assert.Equal(t,
		[]string{"macro record m", "status", "network optimize", "macro stop", "macro run m", "status", "network optimize"},
		commandsOf(m.History()))
}

func TestRecordingAcrossPlaybackCapturesOnlyTypedLines(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StepDelay = 0
	cfg.Presets = []macro.Macro{{Name: "m", Commands: []string{"status", "help"}}}
	m := NewManager(cfg)
	t.Cleanup(m.Close)

	mustSubmit(t, m, "macro record r")
	mustSubmit(t, m, "macro run m")
	m.Wait()
	stop := mustSubmit(t, m, "macro stop")
	require.Equal(t, commands.StatusSuccess, stop.Response.Status, stop.Response.Message)

	var saved macro.Macro
	for _, mac := range m.Macros() {
		if mac.Name == "r" {
			saved = mac
		}
	}
	assert.Equal(t, []string{"macro run m"}, saved.Commands)

	// Replaying runs each preset step once.
	m.Clear()
	mustSubmit(t, m, "macro run r")
	m.Wait()
	assert.Equal(t, []string{"macro run r", "status", "help", "macro run m"}, commandsOf(m.History()))
}

func TestEmptyRecordingSavesNothing(t *testing.T) {
	m := newTestManager(t, 0)

	mustSubmit(t, m, "macro record m")
	stop := mustSubmit(t, m, "macro stop")

	assert.Equal(t, commands.StatusError, stop.Response.Status)
	assert.Empty(t, m.Macros())
}

func TestRunUnknownMacro(t *testing.T) {
	m := newTestManager(t, 0)

	entry := mustSubmit(t, m, "macro run ghost")
	assert.Equal(t, commands.StatusWarning, entry.Response.Status)
	assert.Contains(t, entry.Response.Message, `"ghost"`)
}

func TestNestedMacroPlaysInOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StepDelay = 0
	cfg.Presets = []macro.Macro{
		{Name: "inner", Commands: []string{"security scan", "network diagram"}},
		{Name: "outer", Commands: []string{"status", "macro run inner", "help"}},
	}
	m := NewManager(cfg)
	t.Cleanup(m.Close)

	mustSubmit(t, m, "macro run outer")
	m.Wait()

	assert.Equal(t,
		[]string{"macro run outer", "status", "security scan", "network diagram", "macro run inner", "help"},
		commandsOf(m.History()))
}

func TestRecursiveMacroStopsAtDepthLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StepDelay = 0
	cfg.MaxMacroDepth = 3
	cfg.Presets = []macro.Macro{{Name: "loop", Commands: []string{"macro run loop"}}}
	m := NewManager(cfg)
	t.Cleanup(m.Close)

	mustSubmit(t, m, "macro run loop")
	m.Wait()

	history := m.History()
	last := history[len(history)-1]
	assert.Equal(t, commands.StatusSuccess, last.Response.Status)

	var limited int
	for _, item := range history {
		if strings.Contains(item.Response.Message, "nesting limit") {
			limited++
		}
	}
	assert.Equal(t, 1, limited)
}

func TestRecordingCancelsPlayback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StepDelay = time.Hour
	cfg.Presets = []macro.Macro{{Name: "slow", Commands: []string{"status", "help"}}}
	m := NewManager(cfg)
	t.Cleanup(m.Close)

	mustSubmit(t, m, "macro run slow")
	require.Eventually(t, func() bool { return m.GetStatus().ActivePlayback == 1 }, time.Second, time.Millisecond)

	mustSubmit(t, m, "macro record fresh")
	m.Wait()

	assert.Equal(t, []string{"macro run slow", "macro record fresh"}, commandsOf(m.History()))
	assert.Zero(t, m.GetStatus().ActivePlayback)
}

func TestClearCancelsPlaybackAndEmptiesHistory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StepDelay = time.Hour
	cfg.Presets = []macro.Macro{{Name: "slow", Commands: []string{"status"}}}
	m := NewManager(cfg)
	t.Cleanup(m.Close)

	mustSubmit(t, m, "macro run slow")
	m.Clear()
	m.Wait()

	assert.Empty(t, m.History())
	assert.Zero(t, m.GetStatus().ActivePlayback)
}

func TestPresetsAreMarked(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Presets = []macro.Macro{{Name: "daily_check", Commands: []string{"status", "security scan", "network"}}}
	m := NewManager(cfg)
	t.Cleanup(m.Close)

	macros := m.Macros()
	require.Len(t, macros, 1)
	assert.True(t, macros[0].Preset)
	assert.Equal(t, "Macro with 3 commands", macros[0].Description)
}

func TestGetStatus(t *testing.T) {
	start := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)
	now := start
	cfg := DefaultConfig()
	cfg.Clock = func() time.Time { return now }
	m := NewManager(cfg)
	t.Cleanup(m.Close)

	mustSubmit(t, m, "macro record m")
	mustSubmit(t, m, "status")
	now = start.Add(90 * time.Second)

	st := m.GetStatus()
	assert.Equal(t, "sess_20250314_150000", st.SessionID)
	assert.Equal(t, 90*time.Second, st.Duration)
	assert.Equal(t, 90*time.Second, st.IdleTime)
	assert.Equal(t, 2, st.Commands)
	assert.True(t, st.Recording)
	assert.Equal(t, "m", st.RecordingName)
	assert.Equal(t, 1, st.Captured)
}

// =============================================================================
// FORMATTING TESTS
// =============================================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{42 * time.Second, "42s"},
		{3 * time.Minute, "3m"},
		{3*time.Minute + 5*time.Second, "3m 5s"},
		{2*time.Hour + 10*time.Minute, "2h 10m"},
	}
	for _, tc := range tests {
		if got := FormatDuration(tc.d); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
