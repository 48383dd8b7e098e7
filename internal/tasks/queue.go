// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks runs macro playback as cancelable sequential tasks.
package tasks

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// =============================================================================
// TASK QUEUE
// =============================================================================

// Queue tracks playback tasks and publishes their state changes.
type Queue struct {
	// tasks holds queued, running and finished tasks in submission order
	tasks []*Task

	// running tracks tasks currently submitting steps, by ID
	running map[string]*Task

	// maxHistory caps finished tasks kept (0 = unlimited)
	maxHistory int

	mu sync.RWMutex

	notifyChan chan TaskNotification
}

// NotificationKind distinguishes step progress from lifecycle changes.
type NotificationKind int

const (
	// NotifyStarted is sent when a task begins running
	NotifyStarted NotificationKind = iota

	// NotifyStep is sent after each submitted step
	NotifyStep

	// NotifyFinished is sent when a task reaches a terminal state
	NotifyFinished
)

// TaskNotification reports a playback state change.
type TaskNotification struct {
	Kind        NotificationKind
	TaskID      string
	Description string
	Status      TaskStatus
	Step        int
	Total       int
	Line        string
	Error       string
	Duration    time.Duration
}

// NewQueue creates a task queue keeping at most maxHistory finished tasks.
func NewQueue(maxHistory int) *Queue {
	return &Queue{
		tasks:      make([]*Task, 0),
		running:    make(map[string]*Task),
		maxHistory: maxHistory,
		notifyChan: make(chan TaskNotification, 100),
	}
}

// =============================================================================
// TASK MANAGEMENT
// =============================================================================

// Add appends a task in the queued state.
func (q *Queue) Add(task *Task) error {
	if task == nil {
		return fmt.Errorf("cannot queue nil task")
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if err := task.SetStatus(TaskStatusQueued); err != nil {
		return fmt.Errorf("queue task %s: %w", shortID(task.ID), err)
	}
	q.tasks = append(q.tasks, task)
	return nil
}

// Get returns a copy of the task with the given ID, or nil.
func (q *Queue) Get(id string) *Task {
	q.mu.RLock()
	defer q.mu.RUnlock()

	for _, task := range q.tasks {
		if task.ID == id {
			return task.Clone()
		}
	}
	return nil
}

// Cancel cancels a queued or running task by ID.
func (q *Queue) Cancel(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, task := range q.tasks {
		if task.ID == id {
			return task.Cancel()
		}
	}
	return false
}

// CancelAll cancels every queued and running task and returns how many were
// canceled.
func (q *Queue) CancelAll() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	canceled := 0
	for _, task := range q.tasks {
		if task.Cancel() {
			canceled++
		}
	}
	return canceled
}

// MarkRunning marks a task as running.
func (q *Queue) MarkRunning(task *Task) {
	q.mu.Lock()
	defer q.mu.Unlock()

	task.MarkStarted()
	q.running[task.ID] = task
	q.notify(TaskNotification{
		Kind:        NotifyStarted,
		TaskID:      task.ID,
		Description: task.Description,
		Status:      TaskStatusRunning,
		Step:        -1,
		Total:       len(task.Steps),
	})
}

// MarkStep records that step i of task was submitted.
func (q *Queue) MarkStep(task *Task, i int) {
	task.advance(i)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.notify(TaskNotification{
		Kind:        NotifyStep,
		TaskID:      task.ID,
		Description: task.Description,
		Status:      TaskStatusRunning,
		Step:        i,
		Total:       len(task.Steps),
		Line:        task.Steps[i],
		Duration:    task.Duration(),
	})
}

// MarkComplete marks a task as fully played.
func (q *Queue) MarkComplete(task *Task) {
	q.finish(task, TaskStatusComplete, nil)
}

// MarkFailed marks a task as failed with err.
func (q *Queue) MarkFailed(task *Task, err error) {
	q.finish(task, TaskStatusFailed, err)
}

// MarkCanceled marks a task as canceled.
func (q *Queue) MarkCanceled(task *Task) {
	q.finish(task, TaskStatusCanceled, nil)
}

func (q *Queue) finish(task *Task, status TaskStatus, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := TaskNotification{
		Kind:        NotifyFinished,
		TaskID:      task.ID,
		Description: task.Description,
		Status:      status,
		Step:        task.CurrentStep(),
		Total:       len(task.Steps),
	}
	switch status {
	case TaskStatusComplete:
		task.MarkComplete()
	case TaskStatusFailed:
		task.SetError(err)
		n.Error = err.Error()
	default:
		task.MarkCanceled()
	}
	n.Duration = task.Duration()

	delete(q.running, task.ID)
	q.notify(n)
	q.cleanupLocked()
}

// =============================================================================
// QUEUE QUERIES
// =============================================================================

// All returns copies of every tracked task.
func (q *Queue) All() []*Task {
	q.mu.RLock()
	defer q.mu.RUnlock()

	result := make([]*Task, len(q.tasks))
	for i, task := range q.tasks {
		result[i] = task.Clone()
	}
	return result
}

// Active returns copies of queued and running tasks.
func (q *Queue) Active() []*Task {
	q.mu.RLock()
	defer q.mu.RUnlock()

	result := make([]*Task, 0)
	for _, task := range q.tasks {
		if !task.IsComplete() {
			result = append(result, task.Clone())
		}
	}
	return result
}

// Count returns the number of tracked tasks.
func (q *Queue) Count() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.tasks)
}

// RunningCount returns the number of running tasks.
func (q *Queue) RunningCount() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.running)
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

// Notifications returns the channel of task state changes.
func (q *Queue) Notifications() <-chan TaskNotification {
	return q.notifyChan
}

// notify must be called with the lock held. It never blocks.
func (q *Queue) notify(n TaskNotification) {
	select {
	case q.notifyChan <- n:
	default:
		log.Printf("WARNING: Notification channel full, dropped notification for task %s (status: %s)",
			shortID(n.TaskID), n.Status)
	}
}

// =============================================================================
// CLEANUP
// =============================================================================

// cleanupLocked drops the oldest finished tasks beyond maxHistory.
func (q *Queue) cleanupLocked() {
	if q.maxHistory <= 0 {
		return
	}

	finished := 0
	for _, task := range q.tasks {
		if task.IsComplete() {
			finished++
		}
	}

	excess := finished - q.maxHistory
	if excess <= 0 {
		return
	}
	kept := make([]*Task, 0, len(q.tasks)-excess)
	for _, task := range q.tasks {
		if task.IsComplete() && excess > 0 {
			excess--
			continue
		}
		kept = append(kept, task)
	}
	q.tasks = kept
}

// Clear forgets every finished task.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := make([]*Task, 0)
	for _, task := range q.tasks {
		if !task.IsComplete() {
			kept = append(kept, task)
		}
	}
	q.tasks = kept
}

// Summary returns counts such as "Running: 1 | Queued: 0 | Complete: 3 | Canceled: 1".
func (q *Queue) Summary() string {
	q.mu.RLock()
	defer q.mu.RUnlock()

	counts := make(map[TaskStatus]int)
	for _, task := range q.tasks {
		counts[task.GetStatus()]++
	}
	return fmt.Sprintf("Running: %d | Queued: %d | Complete: %d | Canceled: %d",
		len(q.running), counts[TaskStatusQueued], counts[TaskStatusComplete], counts[TaskStatusCanceled])
}
