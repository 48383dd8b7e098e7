// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mcp-console/internal/config"
	"github.com/jeranaias/mcp-console/internal/export"
	"github.com/jeranaias/mcp-console/internal/session"
	"github.com/jeranaias/mcp-console/internal/tasks"
	"github.com/jeranaias/mcp-console/internal/ui/components"
	"github.com/jeranaias/mcp-console/internal/ui/styles"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		cmds = append(cmds, cmd)

	case SubmitResultMsg:
		m.handleSubmitResult(msg)

	case PlaybackEntryMsg:
		m.appendEntry(msg.Entry)

	case PlaybackNotifyMsg:
		cmds = append(cmds, m.handlePlayback(msg.Notification))

	case session.TickMsg:
		m.clock = msg.Time
		cmds = append(cmds, session.TickCmd())

	case components.ToastTickMsg:
		m.toasts.Tick()
		cmds = append(cmds, components.ToastTickCmd())

	case StatusTickMsg:
		m.mon.RefreshStatus(msg.Time)
		cmds = append(cmds, m.statusTick())

	case ResourceTickMsg:
		m.mon.RefreshResources(msg.Time)
		cmds = append(cmds, m.resourceTick())

	case SecurityTickMsg:
		m.mon.RefreshSecurity(msg.Time)
		cmds = append(cmds, m.securityTick())

	case ConfigReloadMsg:
		m.handleConfigReload(msg)

	case ExportDoneMsg:
		if msg.Err != nil {
			log.Printf("WARNING: transcript export failed: %v", msg.Err)
			m.toasts.Add(components.ToastKindError, "Export Failed", msg.Err.Error())
		} else {
			m.statusMsg = "Exported " + msg.Path
			m.toasts.Add(components.ToastKindSuccess, "Transcript Exported", msg.Path)
		}

	case spinner.TickMsg:
		if !m.spinning {
			break
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.refreshHeader()
	return m, tea.Batch(cmds...)
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.layout()
	m.ready = true
	m.refreshViewport()
}

// =============================================================================
// KEYS
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.HistoryPrev):
		if line, ok := m.sess.Navigator().Back(); ok {
			m.setInput(line)
		}
		return nil

	case key.Matches(msg, m.keys.HistoryNext):
		if line, ok := m.sess.Navigator().Forward(); ok {
			m.setInput(line)
		}
		return nil

	case key.Matches(msg, m.keys.Complete):
		m.cycleCompletion(true)
		return nil

	case key.Matches(msg, m.keys.CompletePrev):
		m.cycleCompletion(false)
		return nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return nil

	case key.Matches(msg, m.keys.Export):
		m.statusMsg = "Exporting..."
		return m.exportCmd()

	case key.Matches(msg, m.keys.Copy):
		m.copyLastResponse()
		return nil

	case key.Matches(msg, m.keys.CancelPlayback):
		m.cancelPlayback()
		return nil
	}

	m.endCompletion()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refreshSuggestions()
	return cmd
}

// setInput replaces the input line, leaving the cursor at the end.
func (m *Model) setInput(line string) {
	m.endCompletion()
	m.input.SetValue(line)
	m.input.CursorEnd()
	m.refreshSuggestions()
}

// cycleCompletion steps through completions for the text typed before the
// first Tab.
func (m *Model) cycleCompletion(forward bool) {
	if !m.completing {
		typed := m.input.Value()
		m.completion.Update(typed, m.sess.Complete(typed))
		if !m.completion.Visible {
			return
		}
		m.completing = true
	}
	if forward {
		m.completion.Next()
	} else {
		m.completion.Prev()
	}
	m.input.SetValue(m.completion.Accept())
	m.input.CursorEnd()
	if c := m.completion.GetSelected(); c != nil {
		m.statusMsg = c.Description
	}
}

func (m *Model) endCompletion() {
	m.completing = false
	m.completion.Clear()
}

func (m *Model) refreshSuggestions() {
	if !m.cfg.UI.ShowSuggestions {
		m.suggestions = nil
		return
	}
	m.suggestions = m.sess.Suggest(m.input.Value())
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submit handles console verbs locally and sends everything else to the
// session on a command goroutine, since evaluation may wait for a playback
// step that holds the session.
func (m *Model) submit() tea.Cmd {
	line := strings.TrimSpace(m.input.Value())
	m.setInput("")
	if line == "" {
		return nil
	}

	switch strings.ToLower(line) {
	case "exit", "quit":
		m.quitting = true
		return tea.Quit
	case "clear":
		m.clearConsole()
		return nil
	}

	m.pending++
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		entry, err := sess.Submit(ctx, line)
		return SubmitResultMsg{Line: line, Entry: entry, Err: err}
	}
}

func (m *Model) handleSubmitResult(msg SubmitResultMsg) {
	if m.pending > 0 {
		m.pending--
	}
	if msg.Err != nil {
		if !errors.Is(msg.Err, session.ErrBlankLine) {
			m.addSystemLine(fmt.Sprintf("%s: %v", msg.Line, msg.Err))
		}
		return
	}
	m.appendEntry(msg.Entry)
	m.refreshSuggestions()
}

func (m *Model) appendEntry(entry session.Entry) {
	m.transcript = append(m.transcript, transcriptLine{kind: lineEntry, entry: entry})
	m.toasts.AddForResponse(entry.Response)
	m.refreshViewport()
}

func (m *Model) addSystemLine(text string) {
	m.transcript = append(m.transcript, transcriptLine{kind: lineSystem, text: text})
	m.refreshViewport()
}

// clearConsole empties the history log and transcript and cancels playback.
func (m *Model) clearConsole() {
	m.sess.Clear()
	m.transcript = nil
	m.statusMsg = ""
	m.toasts.Add(components.ToastKindStatus, components.TitleConsoleCleared, "Command history has been cleared.")
	m.refreshViewport()
	m.refreshSuggestions()
}

// =============================================================================
// PLAYBACK
// =============================================================================

func (m *Model) handlePlayback(n tasks.TaskNotification) tea.Cmd {
	switch n.Kind {
	case tasks.NotifyStarted, tasks.NotifyStep:
		m.playback[n.TaskID] = n
	case tasks.NotifyFinished:
		delete(m.playback, n.TaskID)
		switch n.Status {
		case tasks.TaskStatusComplete:
			m.addSystemLine(fmt.Sprintf("%s finished (%d steps, %.1fs)", n.Description, n.Total, n.Duration.Seconds()))
		case tasks.TaskStatusCanceled:
			m.addSystemLine(n.Description + " canceled")
		case tasks.TaskStatusFailed:
			m.addSystemLine(n.Description + " failed: " + n.Error)
		}
	}

	if len(m.playback) > 0 && !m.spinning {
		m.spinning = true
		return m.spinner.Tick
	}
	if len(m.playback) == 0 {
		m.spinning = false
	}
	return nil
}

func (m *Model) cancelPlayback() {
	n := m.sess.CancelPlayback()
	if n == 0 {
		m.statusMsg = "No playback running"
		return
	}
	m.statusMsg = fmt.Sprintf("Canceled %d playback step(s)", n)
	m.toasts.Add(components.ToastKindWarning, "Playback Canceled", m.statusMsg)
}

// playbackLabel describes the running playback for the header.
func (m *Model) playbackLabel() string {
	for _, n := range m.playback {
		label := fmt.Sprintf("%s %d/%d", strings.TrimPrefix(n.Description, "Macro "), n.Step+1, n.Total)
		if len(m.playback) > 1 {
			label += fmt.Sprintf(" +%d", len(m.playback)-1)
		}
		return m.spinner.View() + " " + label
	}
	return ""
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

func (m *Model) handleConfigReload(msg ConfigReloadMsg) {
	if msg.Err != nil {
		m.toasts.Add(components.ToastKindError, "Config Reload Failed", msg.Err.Error())
		return
	}
	m.applyConfig(msg.Config)
	m.toasts.Add(components.ToastKindStatus, "Config Reloaded", "New settings are active.")
}

// applyConfig switches the live settings to cfg. Refresh intervals take
// effect at the next tick of each panel.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	themeChanged := cfg.UI.Theme != m.cfg.UI.Theme
	m.cfg = cfg

	m.sess.SetStepDelay(cfg.StepDelay())
	m.toasts.SetRate(cfg.UI.ToastsPerSecond, cfg.UI.ToastBurst)
	m.toasts.SetEnabled(cfg.UI.ShowToasts)
	m.input.Prompt = cfg.Console.Prompt

	if themeChanged {
		m.theme = styles.NewTheme(cfg.UI.Theme)
		m.theme.SetSize(m.width, m.height)
		m.header = components.NewHeader(m.theme)
		m.header.SessionID = m.sess.SessionID()
		m.resources = components.NewResourcePanel(m.theme, 40)
		m.highlighter = components.NewHighlighter(m.theme.IsDark, components.FormatterFor(m.theme.ColorProfile))
		m.input.PromptStyle = m.theme.Prompt
		m.input.TextStyle = m.theme.Command
	}
	m.refreshSuggestions()
	if m.ready {
		m.layout()
		m.refreshViewport()
	}
}

// =============================================================================
// EXPORT AND CLIPBOARD
// =============================================================================

func (m *Model) exportCmd() tea.Cmd {
	sess, now := m.sess, m.now
	opts := export.DefaultOptions()
	opts.OutputDir = m.exportDir
	opts.IncludePayloads = m.cfg.UI.ShowPayloads
	format := m.exportFormat

	return func() tea.Msg {
		st := sess.GetStatus()
		t := export.FromHistory(st.SessionID, st.StartTime, sess.History(), now())
		path, err := export.ExportFormat(t, format, opts)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

func (m *Model) copyLastResponse() {
	items := m.sess.History()
	if len(items) == 0 {
		m.statusMsg = "No response to copy"
		return
	}
	resp := items[len(items)-1].Response

	text := resp.Message
	if js := components.PayloadJSON(resp.Data); js != "" {
		text += "\n" + js
	}
	if err := writeClipboard(text); err != nil {
		m.statusMsg = "Failed to copy"
		m.toasts.Add(components.ToastKindError, "Copy Failed", err.Error())
		return
	}
	m.statusMsg = fmt.Sprintf("Copied response to clipboard (%d chars)", len(text))
}

// =============================================================================
// HEADER
// =============================================================================

func (m *Model) refreshHeader() {
	st := m.sess.GetStatus()
	m.header.Uptime = session.FormatDuration(st.Duration)
	m.header.Recording = ""
	if st.Recording {
		m.header.Recording = st.RecordingName
	}
	m.header.Activity = m.playbackLabel()
}
