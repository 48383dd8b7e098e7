// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package macro

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/mcp-console/internal/commands"
)

var fixedNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

// fakePlayer records playback requests instead of resubmitting lines.
type fakePlayer struct {
	played  []Macro
	inline  []Macro
	depths  []int
	err     error
	inlined func(ctx context.Context, m Macro) error
}

func (p *fakePlayer) Play(ctx context.Context, m Macro) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.played = append(p.played, m)
	p.depths = append(p.depths, Depth(ctx))
	return "task-1", nil
}

func (p *fakePlayer) PlayInline(ctx context.Context, m Macro) error {
	p.inline = append(p.inline, m)
	p.depths = append(p.depths, Depth(ctx))
	if p.inlined != nil {
		return p.inlined(ctx, m)
	}
	return nil
}

func newTestController() (*Controller, *fakePlayer) {
	c := NewController(commands.NewRegistry(), NewRecorder(), NewLibrary(), 3)
	p := &fakePlayer{}
	c.SetPlayer(p)
	return c, p
}

func request(line string) commands.Request {
	req := commands.ParseLine(line)
	req.Now = fixedNow
	return req
}

// submit mimics the session: observe, then evaluate.
func submit(c *Controller, line string) commands.Response {
	c.Observe(line)
	req := request(line)
	if _, ok := c.SubVerb(line); ok {
		return c.Handle(context.Background(), req)
	}
	return commands.Success("ok", nil)
}

// =============================================================================
// RECORDER TESTS
// =============================================================================

func TestRecorderStateMachine(t *testing.T) {
	r := NewRecorder()
	assert.False(t, r.Capture("status"), "idle recorder captures nothing")

	_, _, err := r.Stop()
	assert.ErrorIs(t, err, ErrNotRecording)

	require.NoError(t, r.Start("m", fixedNow))
	assert.ErrorIs(t, r.Start("other", fixedNow), ErrAlreadyRecording)

	r.Capture("a")
	r.Capture("b")
	state, name, n := r.Status()
	assert.Equal(t, Recording, state)
	assert.Equal(t, "m", name)
	assert.Equal(t, 2, n)

	name, lines, err := r.Stop()
	require.NoError(t, err)
	assert.Equal(t, "m", name)
	assert.Equal(t, []string{"a", "b"}, lines)
	assert.False(t, r.Recording())
	assert.Equal(t, "idle", Idle.String())
}

// =============================================================================
// LIBRARY TESTS
// =============================================================================

func TestLibraryLatestWins(t *testing.T) {
	l := NewLibrary()
	l.Add(New("daily", []string{"status"}, fixedNow))
	l.Add(New("scan", []string{"security scan"}, fixedNow))
	l.Add(New("daily", []string{"status", "network"}, fixedNow))

	m, ok := l.Find("daily")
	require.True(t, ok)
	assert.Equal(t, []string{"status", "network"}, m.Commands)
	assert.Equal(t, "Macro with 2 commands", m.Description)

	assert.Equal(t, []string{"daily", "scan"}, l.Names())
	assert.Equal(t, 3, l.Len())

	_, ok = l.Find("DAILY")
	assert.False(t, ok, "names match exactly")

	m.Commands[0] = "mutated"
	again, _ := l.Find("daily")
	assert.Equal(t, "status", again.Commands[0])
}

// =============================================================================
// SUB-PROTOCOL TESTS
// =============================================================================

func TestMacroRoundTrip(t *testing.T) {
	c, _ := newTestController()

	resp := submit(c, "macro record m")
	assert.Equal(t, commands.StatusInfo, resp.Status)
	assert.Equal(t, `Started recording macro "m". Type "macro stop" to finish recording.`, resp.Message)

	submit(c, "a")
	submit(c, "b")
	resp = submit(c, "macro stop")

	assert.Equal(t, commands.StatusSuccess, resp.Status)
	assert.Equal(t, `Macro "m" saved with 2 commands.`, resp.Message)

	m, ok := c.Library().Find("m")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, m.Commands)
	assert.Equal(t, "Macro with 2 commands", m.Description)
}

func TestStopAliasFinishesRecording(t *testing.T) {
	c, _ := newTestController()

	submit(c, "macro record m")
	submit(c, "status")
	resp := submit(c, "Script STOP")

	assert.Equal(t, commands.StatusSuccess, resp.Status)
	m, _ := c.Library().Find("m")
	assert.Equal(t, []string{"status"}, m.Commands)
}

func TestEmptyMacroIsNotSaved(t *testing.T) {
	c, _ := newTestController()

	submit(c, "macro record m")
	resp := submit(c, "macro stop")

	assert.Equal(t, commands.StatusError, resp.Status)
	assert.Contains(t, resp.Message, "Nothing was recorded")
	assert.Zero(t, c.Library().Len())
	assert.False(t, c.Recorder().Recording())
}

func TestRecordWhileRecordingIsRejected(t *testing.T) {
	c, _ := newTestController()

	submit(c, "macro record first")
	submit(c, "status")
	resp := submit(c, "macro record second")

	assert.Equal(t, commands.StatusWarning, resp.Status)
	assert.Equal(t, `Already recording macro "first". Type "macro stop" to finish recording.`, resp.Message)

	submit(c, "help")
	submit(c, "macro stop")

	m, ok := c.Library().Find("first")
	require.True(t, ok)
	assert.Equal(t, []string{"status", "help"}, m.Commands)
	_, ok = c.Library().Find("second")
	assert.False(t, ok)
}

func TestRecordDefaultName(t *testing.T) {
	c, _ := newTestController()

	resp := submit(c, "macro record")
	assert.Equal(t, "macro_20250314_150926", resp.Data["macroName"])
}

func TestStopWhileIdle(t *testing.T) {
	c, _ := newTestController()

	resp := submit(c, "macro stop")
	assert.Equal(t, commands.StatusWarning, resp.Status)
}

func TestRunMissingAndUnknown(t *testing.T) {
	c, p := newTestController()
	c.Library().Add(New("daily", []string{"status"}, fixedNow))

	resp := submit(c, "macro run")
	assert.Equal(t, commands.StatusWarning, resp.Status)
	assert.Equal(t, "Please specify a macro name to run.", resp.Message)

	resp = submit(c, "macro run nightly")
	assert.Equal(t, commands.StatusWarning, resp.Status)
	assert.Equal(t, `No macro found with name: "nightly"`, resp.Message)
	assert.Equal(t, []string{"daily"}, resp.Data["macros"])

	assert.Empty(t, p.played)
}

func TestRunStartsPlayback(t *testing.T) {
	c, p := newTestController()
	c.Library().Add(New("daily", []string{"status", "network"}, fixedNow))

	resp := submit(c, "batch run daily")

	assert.Equal(t, commands.StatusSuccess, resp.Status)
	assert.Equal(t, `Executing macro "daily" with 2 commands.`, resp.Message)
	assert.Equal(t, "task-1", resp.Data["taskId"])
	require.Len(t, p.played, 1)
	assert.Equal(t, []string{"status", "network"}, p.played[0].Commands)
	assert.Equal(t, []int{1}, p.depths)
}

func TestNestedRunPlaysInline(t *testing.T) {
	c, p := newTestController()
	c.Library().Add(New("inner", []string{"status"}, fixedNow))

	resp := c.Handle(WithDepth(context.Background(), 1), request("macro run inner"))

	assert.Equal(t, commands.StatusSuccess, resp.Status)
	assert.Equal(t, `Executed macro "inner" with 1 commands.`, resp.Message)
	assert.Empty(t, p.played)
	require.Len(t, p.inline, 1)
	assert.Equal(t, []int{2}, p.depths)
}

func TestNestedRunDepthLimit(t *testing.T) {
	c, p := newTestController()
	c.Library().Add(New("loop", []string{"macro run loop"}, fixedNow))

	resp := c.Handle(WithDepth(context.Background(), 3), request("macro run loop"))

	assert.Equal(t, commands.StatusWarning, resp.Status)
	assert.Contains(t, resp.Message, "nesting limit of 3")
	assert.Empty(t, p.inline)
}

func TestNestedRunCanceled(t *testing.T) {
	c, p := newTestController()
	p.inlined = func(context.Context, Macro) error { return context.Canceled }
	c.Library().Add(New("inner", []string{"status"}, fixedNow))

	resp := c.Handle(WithDepth(context.Background(), 1), request("macro run inner"))
	assert.Equal(t, commands.StatusWarning, resp.Status)
	assert.Contains(t, resp.Message, "canceled")
}

func TestRunWithoutPlayer(t *testing.T) {
	c := NewController(commands.NewRegistry(), NewRecorder(), NewLibrary(), 0)
	c.Library().Add(New("daily", []string{"status"}, fixedNow))

	resp := c.Handle(context.Background(), request("macro run daily"))
	assert.Equal(t, commands.StatusWarning, resp.Status)
}

func TestRunPlayerError(t *testing.T) {
	c, p := newTestController()
	p.err = errors.New("runner stopped")
	c.Library().Add(New("daily", []string{"status"}, fixedNow))

	resp := c.Handle(context.Background(), request("macro run daily"))
	assert.Equal(t, commands.StatusError, resp.Status)
	assert.Contains(t, resp.Message, "runner stopped")
}

func TestList(t *testing.T) {
	c, _ := newTestController()

	resp := submit(c, "macro list")
	assert.Equal(t, commands.StatusInfo, resp.Status)
	assert.Empty(t, resp.Data["macros"])

	c.Library().Add(New("daily", []string{"status", "network"}, fixedNow))
	resp = submit(c, "automate list")
	assert.Equal(t, "Available macros:", resp.Message)
	assert.Equal(t, []commands.Payload{{
		"name":         "daily",
		"commandCount": 2,
		"description":  "Macro with 2 commands",
	}}, resp.Data["macros"])
}

func TestUnknownSubVerb(t *testing.T) {
	c, _ := newTestController()

	for _, line := range []string{"macro", "macro delete x"} {
		resp := submit(c, line)
		assert.Equal(t, commands.StatusWarning, resp.Status, line)
		assert.Equal(t, "Unknown macro command. Available options: record, stop, run, list", resp.Message)
	}
}

func TestListDoesNotAffectRecording(t *testing.T) {
	c, _ := newTestController()

	submit(c, "macro record m")
	submit(c, "macro list")
	submit(c, "macro stop")

	m, ok := c.Library().Find("m")
	require.True(t, ok)
	assert.Equal(t, []string{"macro list"}, m.Commands)
}

func TestSubVerb(t *testing.T) {
	c, _ := newTestController()

	tests := []struct {
		line string
		verb string
		ok   bool
	}{
		{"macro record x", "record", true},
		{"Script Stop", "stop", true},
		{"automate", "", true},
		{"status", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		verb, ok := c.SubVerb(tc.line)
		if verb != tc.verb || ok != tc.ok {
			t.Errorf("SubVerb(%q) = (%q, %v), want (%q, %v)", tc.line, verb, ok, tc.verb, tc.ok)
		}
	}
	assert.True(t, c.IsRecordLine("batch record nightly"))
}
