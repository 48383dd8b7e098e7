// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mcp-console/internal/commands"
	"github.com/jeranaias/mcp-console/internal/config"
	"github.com/jeranaias/mcp-console/internal/session"
	"github.com/jeranaias/mcp-console/internal/tasks"
	"github.com/jeranaias/mcp-console/internal/telemetry"
	"github.com/jeranaias/mcp-console/internal/ui/components"
	"github.com/jeranaias/mcp-console/internal/ui/styles"
)

// WelcomeLine is the first transcript line of every console.
const WelcomeLine = `MCP v1.0 initialized. Type "help" for available commands.`

// =============================================================================
// OPTIONS
// =============================================================================

// Options wires a dashboard to its session and data sources.
type Options struct {
	// Config supplies prompt, refresh rates and UI switches (default: config.Default())
	Config *config.Config

	// Session evaluates console lines (required)
	Session *session.Manager

	// Monitor feeds the dashboard panels (default: seeded from Config)
	Monitor *telemetry.Monitor

	// Context bounds every Submit (default: context.Background())
	Context context.Context

	// ExportDir receives Ctrl+E transcripts (default: ".")
	ExportDir string

	// ExportFormat is one of export.Formats() (default: "markdown")
	ExportFormat string

	// WatchPath is the config file reloaded on change by Run ("" disables)
	WatchPath string

	// Clock overrides time.Now
	Clock func() time.Time
}

// =============================================================================
// MODEL
// =============================================================================

type lineKind int

const (
	lineSystem lineKind = iota
	lineEntry
)

// transcriptLine is one block of the console transcript: either a local
// system notice or an evaluated history entry.
type transcriptLine struct {
	kind  lineKind
	text  string
	entry session.Entry
}

// Model is the dashboard: header, status cards, the console and the side
// panels.
type Model struct {
	ctx  context.Context
	cfg  *config.Config
	sess *session.Manager
	mon  *telemetry.Monitor
	now  func() time.Time

	exportDir    string
	exportFormat string

	// Styling and components
	theme       *styles.Theme
	keys        KeyMap
	header      *components.Header
	resources   *components.ResourcePanel
	toasts      *components.ToastManager
	highlighter *components.Highlighter

	// Console widgets
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	transcript  []transcriptLine
	suggestions []string
	completion  *commands.CompletionState
	completing  bool

	// Playback tasks currently running, by task id
	playback map[string]tasks.TaskNotification
	spinning bool

	// pending counts submitted lines whose result has not arrived
	pending int

	clock     time.Time
	width     int
	height    int
	ready     bool
	showHelp  bool
	statusMsg string
	quitting  bool
}

// New creates the dashboard model.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	mon := opts.Monitor
	if mon == nil {
		mon = telemetry.NewMonitor(telemetry.NewGenerator(cfg.Dashboard.Seed), cfg.Dashboard.NetworkNodes, now())
	}
	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "."
	}
	exportFormat := opts.ExportFormat
	if exportFormat == "" {
		exportFormat = "markdown"
	}

	theme := styles.NewTheme(cfg.UI.Theme)

	input := textinput.New()
	input.Prompt = cfg.Console.Prompt
	input.PromptStyle = theme.Prompt
	input.TextStyle = theme.Command
	input.Placeholder = "Enter command..."
	input.CharLimit = 512
	input.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	sp.Style = lipgloss.NewStyle().Foreground(styles.Cyan)

	toasts := components.NewToastManager(cfg.UI.ToastsPerSecond, cfg.UI.ToastBurst)
	toasts.SetClock(now)
	toasts.SetEnabled(cfg.UI.ShowToasts)

	m := &Model{
		ctx:          ctx,
		cfg:          cfg,
		sess:         opts.Session,
		mon:          mon,
		now:          now,
		exportDir:    exportDir,
		exportFormat: exportFormat,
		theme:        theme,
		keys:         DefaultKeyMap(),
		header:       components.NewHeader(theme),
		resources:    components.NewResourcePanel(theme, 40),
		toasts:       toasts,
		highlighter:  components.NewHighlighter(theme.IsDark, components.FormatterFor(theme.ColorProfile)),
		input:        input,
		viewport:     viewport.New(80, 10),
		spinner:      sp,
		completion:   commands.NewCompletionState(),
		playback:     make(map[string]tasks.TaskNotification),
		clock:        now(),
	}
	m.header.SessionID = m.sess.SessionID()
	m.transcript = []transcriptLine{{kind: lineSystem, text: WelcomeLine}}
	m.refreshSuggestions()
	return m
}

// Init starts the cursor blink and every dashboard ticker.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		session.TickCmd(),
		components.ToastTickCmd(),
		m.statusTick(),
		m.resourceTick(),
		m.securityTick(),
	)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Input returns the current input line.
func (m *Model) Input() string {
	return m.input.Value()
}

// Suggestions returns the chips offered for the current input.
func (m *Model) Suggestions() []string {
	return append([]string(nil), m.suggestions...)
}

// Toasts returns the toast manager.
func (m *Model) Toasts() *components.ToastManager {
	return m.toasts
}

// Config returns the active configuration.
func (m *Model) Config() *config.Config {
	return m.cfg
}

// StatusMessage returns the footer notice.
func (m *Model) StatusMessage() string {
	return m.statusMsg
}

// Playing returns the number of running playback tasks.
func (m *Model) Playing() int {
	return len(m.playback)
}

// =============================================================================
// TICKERS
// =============================================================================

func refreshEvery(secs int) time.Duration {
	if secs <= 0 {
		secs = 5
	}
	return time.Duration(secs) * time.Second
}

func (m *Model) statusTick() tea.Cmd {
	return tea.Tick(refreshEvery(m.cfg.Dashboard.StatusRefreshSecs), func(t time.Time) tea.Msg {
		return StatusTickMsg{Time: t}
	})
}

func (m *Model) resourceTick() tea.Cmd {
	return tea.Tick(refreshEvery(m.cfg.Dashboard.ResourceRefreshSecs), func(t time.Time) tea.Msg {
		return ResourceTickMsg{Time: t}
	})
}

func (m *Model) securityTick() tea.Cmd {
	return tea.Tick(refreshEvery(m.cfg.Dashboard.SecurityRefreshSecs), func(t time.Time) tea.Msg {
		return SecurityTickMsg{Time: t}
	})
}
