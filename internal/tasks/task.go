// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks runs macro playback as cancelable sequential tasks.
package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// TASK STATUS
// =============================================================================

// TaskStatus represents the lifecycle state of a playback task.
type TaskStatus string

const (
	// TaskStatusQueued indicates the task is waiting for a runner slot
	TaskStatusQueued TaskStatus = "Queued"

	// TaskStatusRunning indicates steps are being submitted
	TaskStatusRunning TaskStatus = "Running"

	// TaskStatusComplete indicates every step was submitted
	TaskStatusComplete TaskStatus = "Complete"

	// TaskStatusFailed indicates a step returned an error
	TaskStatusFailed TaskStatus = "Failed"

	// TaskStatusCanceled indicates the playback was invalidated
	TaskStatusCanceled TaskStatus = "Canceled"
)

// String returns the string representation of the task status.
func (s TaskStatus) String() string {
	return string(s)
}

// Terminal reports whether no further transitions are possible.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusComplete || s == TaskStatusFailed || s == TaskStatusCanceled
}

// =============================================================================
// TASK STRUCTURE
// =============================================================================

// Task is one playback of a macro: an ordered list of lines submitted one at a
// time.
type Task struct {
	// ID is a unique identifier for this task
	ID string

	// Description is shown in notifications (e.g., `Macro "daily_check"`)
	Description string

	// Macro is the name of the macro being played
	Macro string

	// Steps are the raw lines in submission order
	Steps []string

	// Status is the current state of the task
	Status TaskStatus

	// StartTime is when the first step was scheduled
	StartTime time.Time

	// EndTime is when the task reached a terminal state
	EndTime time.Time

	// Error is the failure message, if any
	Error string

	// Progress is the share of submitted steps (0-100)
	Progress int

	// Step is the index of the step currently submitted (-1 before the first)
	Step int

	cancel context.CancelFunc
	mu     sync.RWMutex
}

// NewTask creates a queued playback task for the given lines.
func NewTask(description, macro string, steps []string) *Task {
	return &Task{
		ID:          uuid.New().String(),
		Description: description,
		Macro:       macro,
		Steps:       append([]string{}, steps...),
		Status:      TaskStatusQueued,
		Step:        -1,
	}
}

// =============================================================================
// TASK METHODS
// =============================================================================

// SetStatus moves the task to status.
// Valid transitions: Queued -> Running -> Complete/Failed/Canceled, Queued -> Canceled.
func (t *Task) SetStatus(status TaskStatus) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !validTransition(t.Status, status) {
		return fmt.Errorf("invalid status transition from %s to %s", t.Status, status)
	}
	t.Status = status
	return nil
}

func validTransition(from, to TaskStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case TaskStatusQueued:
		return to == TaskStatusRunning || to == TaskStatusCanceled
	case TaskStatusRunning:
		return to.Terminal()
	default:
		return false
	}
}

// GetStatus returns the current task status.
func (t *Task) GetStatus() TaskStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Status
}

// SetProgress updates the progress, clamped to 0..100.
func (t *Task) SetProgress(progress int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	t.Progress = progress
}

// GetProgress returns the current progress.
func (t *Task) GetProgress() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Progress
}

// advance records that step i finished and recomputes progress.
func (t *Task) advance(i int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Step = i
	if n := len(t.Steps); n > 0 {
		t.Progress = (i + 1) * 100 / n
	}
}

// CurrentStep returns the index of the last submitted step, or -1.
func (t *Task) CurrentStep() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Step
}

// SetError records err and marks the task failed.
func (t *Task) SetError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.Error = err.Error()
		t.Status = TaskStatusFailed
		t.EndTime = time.Now()
	}
}

// GetError returns the failure message.
func (t *Task) GetError() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Error
}

// MarkStarted marks the task as running.
func (t *Task) MarkStarted() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = TaskStatusRunning
	t.StartTime = time.Now()
}

// MarkComplete marks the task as fully played.
func (t *Task) MarkComplete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = TaskStatusComplete
	t.EndTime = time.Now()
	t.Progress = 100
}

// MarkCanceled marks the task as canceled.
func (t *Task) MarkCanceled() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = TaskStatusCanceled
	t.EndTime = time.Now()
}

// SetCancelFunc stores the context cancel function. Call once, before the
// task is handed to a runner.
func (t *Task) SetCancelFunc(cancel context.CancelFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancel = cancel
}

// Cancel invalidates a queued or running task. Steps not yet submitted will
// never be submitted. Returns false if the task already finished.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Status.Terminal() {
		return false
	}
	if t.cancel != nil {
		t.cancel()
	}
	t.Status = TaskStatusCanceled
	t.EndTime = time.Now()
	return true
}

// Duration returns how long the task has been running or took to finish.
func (t *Task) Duration() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.StartTime.IsZero() {
		return 0
	}
	if t.EndTime.IsZero() {
		return time.Since(t.StartTime)
	}
	return t.EndTime.Sub(t.StartTime)
}

// IsRunning returns true if the task is currently running.
func (t *Task) IsRunning() bool {
	return t.GetStatus() == TaskStatusRunning
}

// IsComplete returns true if the task reached a terminal state.
func (t *Task) IsComplete() bool {
	return t.GetStatus().Terminal()
}

// Summary returns a one-line summary such as
// "[1b4e28ba] Macro "daily_check" - Running (step 2/3)".
func (t *Task) Summary() string {
	t.mu.RLock()
	status, step, total := t.Status, t.Step, len(t.Steps)
	t.mu.RUnlock()

	summary := fmt.Sprintf("[%s] %s - %s", shortID(t.ID), t.Description, status)
	if status == TaskStatusRunning {
		summary += fmt.Sprintf(" (step %d/%d)", step+1, total)
	} else if d := t.Duration(); d > 0 {
		summary += fmt.Sprintf(" (%.1fs)", d.Seconds())
	}
	return summary
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Clone returns a copy safe to read without locks.
func (t *Task) Clone() *Task {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return &Task{
		ID:          t.ID,
		Description: t.Description,
		Macro:       t.Macro,
		Steps:       append([]string{}, t.Steps...),
		Status:      t.Status,
		StartTime:   t.StartTime,
		EndTime:     t.EndTime,
		Error:       t.Error,
		Progress:    t.Progress,
		Step:        t.Step,
	}
}
