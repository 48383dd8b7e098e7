// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the state of one console session.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mcp-console/internal/commands"
	"github.com/jeranaias/mcp-console/internal/history"
	"github.com/jeranaias/mcp-console/internal/macro"
	"github.com/jeranaias/mcp-console/internal/tasks"
	"github.com/jeranaias/mcp-console/internal/util"
)

// ErrBlankLine is returned when a submitted line has no tokens.
var ErrBlankLine = errors.New("blank command line")

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config holds configuration for a session.
type Config struct {
	// StepDelay is the pause before each playback step (default: 500ms)
	StepDelay time.Duration

	// MaxMacroDepth bounds nested macro playback (default: 8)
	MaxMacroDepth int

	// HistoryLimit restricts Up/Down recall to the newest entries (0 = all)
	HistoryLimit int

	// Presets are loaded into the macro library at start
	Presets []macro.Macro

	// Clock overrides time.Now for timestamps
	Clock func() time.Time
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		StepDelay:     500 * time.Millisecond,
		MaxMacroDepth: macro.DefaultMaxDepth,
	}
}

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Origin tells who submitted a line.
type Origin int

const (
	// OriginUser marks lines typed at a front end
	OriginUser Origin = iota

	// OriginPlayback marks lines resubmitted by macro playback
	OriginPlayback
)

func (o Origin) String() string {
	if o == OriginPlayback {
		return "playback"
	}
	return "user"
}

// Entry is one evaluated line as appended to the history log.
type Entry struct {
	commands.HistoryItem
	Origin Origin
}

// Manager is one console session: interpreter, history, macro recorder and
// library, and the playback runner. Independent managers share no state.
type Manager struct {
	mu sync.Mutex

	// evalMu serializes evaluation so history order is evaluation order
	evalMu sync.Mutex

	sessionID    string
	startTime    time.Time
	lastActivity time.Time
	now          func() time.Time

	interp     *commands.Interpreter
	controller *macro.Controller
	log        *history.Log
	nav        *history.Navigator
	queue      *tasks.Queue
	runner     *tasks.Runner

	onPlayback func(Entry)
}

// NewManager creates a session with the built-in command catalog.
func NewManager(cfg Config) *Manager {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	registry := commands.NewRegistry()
	interp := commands.NewInterpreter(registry, commands.WithClock(now))

	library := macro.NewLibrary()
	for _, preset := range cfg.Presets {
		preset.Preset = true
		if preset.Description == "" {
			preset.Description = fmt.Sprintf("Macro with %d commands", len(preset.Commands))
		}
		library.Add(preset)
	}
	controller := macro.NewController(registry, macro.NewRecorder(), library, cfg.MaxMacroDepth)
	interp.SetHandler(commands.CategoryAutomation, controller.Handle)

	started := now()
	hist := history.NewLog()
	queue := tasks.NewQueue(20)
	m := &Manager{
		sessionID:    generateSessionID(started),
		startTime:    started,
		lastActivity: started,
		now:          now,
		interp:       interp,
		controller:   controller,
		log:          hist,
		nav:          history.NewNavigator(hist, cfg.HistoryLimit),
		queue:        queue,
		runner:       tasks.NewRunner(queue, cfg.StepDelay),
	}
	controller.SetPlayer(m)
	return m
}

// =============================================================================
// SUBMISSION
// =============================================================================

// Submit evaluates a line typed by the user, appends it to the history log
// and returns the entry. Blank lines are rejected with ErrBlankLine.
func (m *Manager) Submit(ctx context.Context, line string) (Entry, error) {
	return m.submit(ctx, line, OriginUser)
}

// evaluatingKey marks a context whose goroutine already holds evalMu. Nested
// macro playback submits its lines under the enclosing step's lock.
type evaluatingKey struct{}

func (m *Manager) submit(ctx context.Context, line string, origin Origin) (Entry, error) {
	if commands.IsBlank(line) {
		return Entry{}, ErrBlankLine
	}
	line = strings.TrimSpace(line)

	if ctx.Value(evaluatingKey{}) == nil {
		m.evalMu.Lock()
		defer m.evalMu.Unlock()
		ctx = context.WithValue(ctx, evaluatingKey{}, true)
	}
	if origin == OriginPlayback {
		if err := ctx.Err(); err != nil {
			return Entry{}, err
		}
	}

	if origin == OriginUser && m.controller.IsRecordLine(line) && !m.controller.Recorder().Recording() {
		m.runner.CancelAll()
	}
	if origin == OriginUser {
		m.controller.Observe(line)
	}

	resp := m.interp.Evaluate(ctx, line, m.log.Items())
	entry := Entry{
		HistoryItem: commands.HistoryItem{
			Command:   line,
			Timestamp: m.now(),
			Response:  resp,
		},
		Origin: origin,
	}
	m.log.Append(entry.HistoryItem)

	m.mu.Lock()
	m.lastActivity = entry.Timestamp
	onPlayback := m.onPlayback
	m.mu.Unlock()

	if origin == OriginUser {
		m.nav.Reset()
	} else if onPlayback != nil {
		onPlayback(entry)
	}
	return entry, nil
}

// =============================================================================
// PLAYBACK
// =============================================================================

// Play starts background playback of mac. It implements macro.Player.
func (m *Manager) Play(_ context.Context, mac macro.Macro) (string, error) {
	task := tasks.NewTask(fmt.Sprintf("Macro %q", mac.Name), mac.Name, mac.Commands)
	step := func(ctx context.Context, _ int, line string) error {
		return m.playStep(macro.WithDepth(ctx, 1), line)
	}
	if err := m.runner.Submit(task, step); err != nil {
		return "", fmt.Errorf("start playback of %q: %w", mac.Name, err)
	}
	log.Printf("Playback queued: %s (%d steps)", task.Description, len(task.Steps))
	return task.ID, nil
}

// PlayInline plays mac on the calling goroutine. It implements macro.Player.
func (m *Manager) PlayInline(ctx context.Context, mac macro.Macro) error {
	task := tasks.NewTask(fmt.Sprintf("Macro %q", mac.Name), mac.Name, mac.Commands)
	return tasks.Execute(ctx, task, m.runner.StepDelay(), func(ctx context.Context, _ int, line string) error {
		return m.playStep(ctx, line)
	})
}

func (m *Manager) playStep(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := m.submit(ctx, line, OriginPlayback)
	if errors.Is(err, ErrBlankLine) {
		return nil
	}
	return err
}

// CancelPlayback invalidates every pending playback step.
func (m *Manager) CancelPlayback() int {
	return m.runner.CancelAll()
}

// Wait blocks until background playback has finished.
func (m *Manager) Wait() {
	m.runner.Wait()
}

// Close cancels playback and waits for in-flight steps.
func (m *Manager) Close() {
	m.runner.Stop()
}

// SetStepDelay changes the playback delay for steps scheduled from now on.
func (m *Manager) SetStepDelay(d time.Duration) {
	m.runner.SetStepDelay(d)
}

// OnPlayback registers fn to receive every entry produced by playback. It is
// called on the playback goroutine.
func (m *Manager) OnPlayback(fn func(Entry)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onPlayback = fn
}

// Notifications returns playback state changes.
func (m *Manager) Notifications() <-chan tasks.TaskNotification {
	return m.queue.Notifications()
}

// ActivePlayback returns the queued and running playback tasks.
func (m *Manager) ActivePlayback() []*tasks.Task {
	return m.queue.Active()
}

// =============================================================================
// HISTORY AND SUGGESTIONS
// =============================================================================

// Clear empties the history log and cancels playback.
func (m *Manager) Clear() {
	m.runner.CancelAll()
	m.log.Clear()
	m.nav.Reset()
}

// History returns a copy of the history log.
func (m *Manager) History() []commands.HistoryItem {
	return m.log.Items()
}

// Navigator returns the Up/Down recall cursor.
func (m *Manager) Navigator() *history.Navigator {
	return m.nav
}

// Suggest returns completions for partial input against the current history.
func (m *Manager) Suggest(partial string) []string {
	return m.interp.Suggest(partial, m.log.Items())
}

// Complete returns decorated completions for partial input.
func (m *Manager) Complete(partial string) []commands.Completion {
	return m.interp.Completer().Complete(partial, m.log.Items())
}

// Registry returns the command catalog.
func (m *Manager) Registry() *commands.Registry {
	return m.interp.Registry()
}

// Macros returns the saved macros.
func (m *Manager) Macros() []macro.Macro {
	return m.controller.Library().All()
}

// =============================================================================
// SESSION STATUS
// =============================================================================

// Status is a snapshot of the session.
type Status struct {
	SessionID      string
	StartTime      time.Time
	Duration       time.Duration
	IdleTime       time.Duration
	Commands       int
	Recording      bool
	RecordingName  string
	Captured       int
	Macros         int
	ActivePlayback int
}

// GetStatus returns the current session status.
func (m *Manager) GetStatus() Status {
	state, name, captured := m.controller.Recorder().Status()

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	return Status{
		SessionID:      m.sessionID,
		StartTime:      m.startTime,
		Duration:       now.Sub(m.startTime),
		IdleTime:       now.Sub(m.lastActivity),
		Commands:       m.log.Len(),
		Recording:      state == macro.Recording,
		RecordingName:  name,
		Captured:       captured,
		Macros:         m.controller.Library().Len(),
		ActivePlayback: len(m.queue.Active()),
	}
}

// SessionID returns the session ID.
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent every second for the header clock and uptime.
type TickMsg struct {
	Time time.Time
}

// TickCmd returns a command that ticks once per second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func generateSessionID(t time.Time) string {
	return "sess_" + t.Format("20060102_150405")
}

// FormatDuration returns a short human-readable duration ("42s", "3m 5s", "2h 10m").
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return util.IntToString(int(d.Seconds())) + "s"
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		if secs == 0 {
			return util.IntToString(mins) + "m"
		}
		return util.IntToString(mins) + "m " + util.IntToString(secs) + "s"
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	return util.IntToString(hours) + "h " + util.IntToString(mins) + "m"
}
