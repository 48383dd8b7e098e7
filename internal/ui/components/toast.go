// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/time/rate"

	"github.com/jeranaias/mcp-console/internal/commands"
	"github.com/jeranaias/mcp-console/internal/ui/styles"
	"github.com/jeranaias/mcp-console/internal/util"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	// ToastKindStatus is an informational toast
	ToastKindStatus ToastKind = iota
	// ToastKindError is raised by error responses
	ToastKindError
	// ToastKindWarning is raised by warning responses
	ToastKindWarning
	// ToastKindSuccess confirms a console action
	ToastKindSuccess
)

// Toast titles shown above the message.
const (
	TitleCommandWarning = "Command Warning"
	TitleCommandError   = "Command Error"
	TitleConsoleCleared = "Console Cleared"
)

// DefaultToastDuration is the auto-dismiss duration for status toasts.
const DefaultToastDuration = 4 * time.Second

// ErrorToastDuration is the auto-dismiss duration for error toasts.
const ErrorToastDuration = 8 * time.Second

// WarningToastDuration is the auto-dismiss duration for warning toasts.
const WarningToastDuration = 6 * time.Second

// Toast is a non-blocking notification shown in the bottom-right corner.
type Toast struct {
	ID        int
	Title     string
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the toast should be dismissed at now.
func (t Toast) IsExpired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// TimeRemaining returns how much time is left before auto-dismiss.
func (t Toast) TimeRemaining(now time.Time) time.Duration {
	remaining := t.Duration - now.Sub(t.CreatedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func durationFor(kind ToastKind) time.Duration {
	switch kind {
	case ToastKindError:
		return ErrorToastDuration
	case ToastKindWarning:
		return WarningToastDuration
	default:
		return DefaultToastDuration
	}
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager manages visible toasts. Creation is throttled by a token
// bucket so a macro replaying many failing lines cannot flood the screen.
type ToastManager struct {
	mu         sync.Mutex
	toasts     []Toast
	nextID     int
	maxToasts  int
	limiter    *rate.Limiter
	suppressed int
	enabled    bool
	now        func() time.Time
}

// NewToastManager creates a manager allowing perSecond toasts with bursts
// of burst.
func NewToastManager(perSecond float64, burst int) *ToastManager {
	if burst < 1 {
		burst = 1
	}
	return &ToastManager{
		nextID:    1,
		maxToasts: 5,
		limiter:   rate.NewLimiter(rate.Limit(perSecond), burst),
		enabled:   true,
		now:       time.Now,
	}
}

// SetClock overrides time.Now.
func (m *ToastManager) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// SetEnabled turns toast creation on or off.
func (m *ToastManager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// SetRate changes the throttle.
func (m *ToastManager) SetRate(perSecond float64, burst int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.limiter.SetLimit(rate.Limit(perSecond))
	if burst >= 1 {
		m.limiter.SetBurst(burst)
	}
}

// Add shows a toast unless disabled or throttled. It returns the toast ID,
// or 0 when the toast was dropped.
func (m *ToastManager) Add(kind ToastKind, title, message string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled {
		return 0
	}
	now := m.now()
	if !m.limiter.AllowN(now, 1) {
		m.suppressed++
		return 0
	}

	toast := Toast{
		ID:        m.nextID,
		Title:     title,
		Message:   message,
		Kind:      kind,
		CreatedAt: now,
		Duration:  durationFor(kind),
	}
	m.nextID++

	// Newest first
	m.toasts = append([]Toast{toast}, m.toasts...)
	if len(m.toasts) > m.maxToasts {
		m.toasts = m.toasts[:m.maxToasts]
	}
	return toast.ID
}

// AddForResponse raises "Command Warning" or "Command Error" toasts for
// alert responses and ignores the rest.
func (m *ToastManager) AddForResponse(resp commands.Response) int {
	switch resp.Status {
	case commands.StatusWarning:
		return m.Add(ToastKindWarning, TitleCommandWarning, resp.Message)
	case commands.StatusError:
		return m.Add(ToastKindError, TitleCommandError, resp.Message)
	}
	return 0
}

// Remove dismisses a toast by ID.
func (m *ToastManager) Remove(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, toast := range m.toasts {
		if toast.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// Tick removes expired toasts and returns the remaining ones.
func (m *ToastManager) Tick() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	active := m.toasts[:0]
	for _, toast := range m.toasts {
		if !toast.IsExpired(now) {
			active = append(active, toast)
		}
	}
	m.toasts = active
	return append([]Toast{}, m.toasts...)
}

// Toasts returns a copy of the visible toasts, newest first.
func (m *ToastManager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Toast{}, m.toasts...)
}

// Suppressed returns how many toasts the throttle dropped.
func (m *ToastManager) Suppressed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.suppressed
}

// Clear removes all toasts.
func (m *ToastManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toasts = nil
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg is sent periodically to expire toasts.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd returns a command that ticks toasts every 250ms.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

func toastColor(kind ToastKind) (lipgloss.AdaptiveColor, string) {
	switch kind {
	case ToastKindError:
		return styles.Danger, styles.StatusIndicators.Error
	case ToastKindWarning:
		return styles.Warning, styles.StatusIndicators.Warning
	case ToastKindSuccess:
		return styles.Success, styles.StatusIndicators.Success
	default:
		return styles.Cyan, styles.StatusIndicators.Info
	}
}

// RenderToast renders a single toast at most 50 columns wide.
func RenderToast(toast Toast, width int) string {
	maxWidth := 50
	if width > 0 && width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 24 {
		maxWidth = 24
	}

	color, icon := toastColor(toast.Kind)
	title := lipgloss.NewStyle().Foreground(color).Bold(true).
		Render(icon + " " + util.TruncateWidth(toast.Title, maxWidth-10))
	body := lipgloss.NewStyle().Foreground(styles.TextPrimary).Width(maxWidth - 6).
		Render(toast.Message)

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 2).
		Render(title + "\n" + body)
}

// RenderToastStack renders toasts stacked vertically, newest at the bottom,
// right aligned in width.
func RenderToastStack(toasts []Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(toasts))
	for i := len(toasts) - 1; i >= 0; i-- {
		rendered = append(rendered, RenderToast(toasts[i], width))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
}
