// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"errors"
	"strings"
	"testing"
)

func TestNewTask(t *testing.T) {
	steps := []string{"status", "network optimize"}
	task := NewTask(`Macro "daily"`, "daily", steps)

	if task.ID == "" {
		t.Error("Task ID should not be empty")
	}
	if task.Macro != "daily" {
		t.Errorf("Expected macro 'daily', got '%s'", task.Macro)
	}
	if task.GetStatus() != TaskStatusQueued {
		t.Errorf("Expected status Queued, got %s", task.GetStatus())
	}
	if task.CurrentStep() != -1 {
		t.Errorf("Expected step -1 before playback, got %d", task.CurrentStep())
	}

	steps[0] = "mutated"
	if task.Steps[0] != "status" {
		t.Error("NewTask should copy the step list")
	}
}

func TestTaskStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to TaskStatus
		ok       bool
	}{
		{TaskStatusQueued, TaskStatusRunning, true},
		{TaskStatusQueued, TaskStatusCanceled, true},
		{TaskStatusQueued, TaskStatusComplete, false},
		{TaskStatusRunning, TaskStatusComplete, true},
		{TaskStatusRunning, TaskStatusFailed, true},
		{TaskStatusRunning, TaskStatusCanceled, true},
		{TaskStatusRunning, TaskStatusQueued, false},
		{TaskStatusComplete, TaskStatusRunning, false},
		{TaskStatusCanceled, TaskStatusCanceled, true},
	}

	for _, tc := range tests {
		task := NewTask("t", "m", nil)
		task.Status = tc.from
		err := task.SetStatus(tc.to)
		if (err == nil) != tc.ok {
			t.Errorf("SetStatus(%s -> %s) error = %v, want ok=%v", tc.from, tc.to, err, tc.ok)
		}
	}
}

func TestTaskProgress(t *testing.T) {
	task := NewTask("Test", "m", []string{"a", "b", "c", "d"})

	task.advance(0)
	if task.GetProgress() != 25 {
		t.Errorf("Expected progress 25 after first step, got %d", task.GetProgress())
	}
	task.advance(3)
	if task.GetProgress() != 100 || task.CurrentStep() != 3 {
		t.Errorf("Expected step 3 at 100%%, got step %d at %d%%", task.CurrentStep(), task.GetProgress())
	}

	task.SetProgress(150)
	if task.GetProgress() != 100 {
		t.Errorf("Expected progress capped at 100, got %d", task.GetProgress())
	}
	task.SetProgress(-10)
	if task.GetProgress() != 0 {
		t.Errorf("Expected progress floored at 0, got %d", task.GetProgress())
	}
}

func TestTaskCancel(t *testing.T) {
	task := NewTask("Test", "m", []string{"a"})
	called := false
	task.SetCancelFunc(func() { called = true })
	task.MarkStarted()

	if !task.Cancel() {
		t.Error("Cancel should succeed for running task")
	}
	if !called {
		t.Error("Cancel should invoke the cancel func")
	}
	if task.GetStatus() != TaskStatusCanceled {
		t.Error("Task should be canceled")
	}
	if task.Cancel() {
		t.Error("Second cancel should fail")
	}
}

func TestTaskSummary(t *testing.T) {
	task := NewTask(`Macro "daily"`, "daily", []string{"a", "b", "c"})
	task.MarkStarted()
	task.advance(1)

	summary := task.Summary()
	if !strings.Contains(summary, `Macro "daily" - Running (step 2/3)`) {
		t.Errorf("Summary() = %q", summary)
	}
	if !strings.HasPrefix(summary, "["+task.ID[:8]+"]") {
		t.Errorf("Summary() = %q, want short id prefix", summary)
	}
}

func TestTaskCloneIsIndependent(t *testing.T) {
	task := NewTask("Test", "m", []string{"a"})

	clone := task.Clone()
	clone.Steps[0] = "changed"

	if task.Steps[0] != "a" {
		t.Error("Clone should not share steps")
	}
}

func TestQueueOperations(t *testing.T) {
	queue := NewQueue(10)

	task1 := NewTask("Task 1", "one", []string{"status"})
	task2 := NewTask("Task 2", "two", []string{"help"})

	if err := queue.Add(task1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := queue.Add(task2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := queue.Add(nil); err == nil {
		t.Error("Add(nil) should fail")
	}

	if queue.Count() != 2 {
		t.Errorf("Expected 2 tasks, got %d", queue.Count())
	}
	retrieved := queue.Get(task1.ID)
	if retrieved == nil || retrieved.Description != "Task 1" {
		t.Errorf("Get(%s) = %+v", task1.ID, retrieved)
	}
	if queue.Get("missing") != nil {
		t.Error("Get of unknown ID should return nil")
	}
}

func TestQueueLifecycleNotifications(t *testing.T) {
	queue := NewQueue(10)

	running := NewTask("Running", "r", []string{"a", "b"})
	done := NewTask("Complete", "c", []string{"a"})
	failed := NewTask("Failed", "f", []string{"a"})
	for _, task := range []*Task{running, done, failed} {
		_ = queue.Add(task)
	}

	queue.MarkRunning(running)
	queue.MarkStep(running, 0)
	queue.MarkComplete(done)
	queue.MarkFailed(failed, errors.New("test error"))

	if queue.RunningCount() != 1 {
		t.Errorf("Expected 1 running task, got %d", queue.RunningCount())
	}
	if active := queue.Active(); len(active) != 1 || active[0].ID != running.ID {
		t.Errorf("Active() = %v", active)
	}

	var kinds []NotificationKind
	var statuses []TaskStatus
	for i := 0; i < 4; i++ {
		n := <-queue.Notifications()
		kinds = append(kinds, n.Kind)
		statuses = append(statuses, n.Status)
	}
	wantKinds := []NotificationKind{NotifyStarted, NotifyStep, NotifyFinished, NotifyFinished}
	wantStatuses := []TaskStatus{TaskStatusRunning, TaskStatusRunning, TaskStatusComplete, TaskStatusFailed}
	for i := range wantKinds {
		if kinds[i] != wantKinds[i] || statuses[i] != wantStatuses[i] {
			t.Errorf("notification %d = (%v, %s), want (%v, %s)", i, kinds[i], statuses[i], wantKinds[i], wantStatuses[i])
		}
	}

	if got := queue.Summary(); got != "Running: 1 | Queued: 0 | Complete: 1 | Canceled: 0" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestQueueCancelAll(t *testing.T) {
	queue := NewQueue(0)
	a := NewTask("a", "a", []string{"x"})
	b := NewTask("b", "b", []string{"x"})
	_ = queue.Add(a)
	_ = queue.Add(b)
	queue.MarkRunning(a)
	queue.MarkComplete(a)

	if n := queue.CancelAll(); n != 1 {
		t.Errorf("CancelAll() = %d, want 1", n)
	}
	if b.GetStatus() != TaskStatusCanceled {
		t.Errorf("queued task status = %s, want Canceled", b.GetStatus())
	}
}

func TestQueueCleanup(t *testing.T) {
	queue := NewQueue(1)
	first := NewTask("first", "m", []string{"x"})
	second := NewTask("second", "m", []string{"x"})
	_ = queue.Add(first)
	_ = queue.Add(second)

	queue.MarkComplete(first)
	queue.MarkComplete(second)

	if queue.Count() != 1 || queue.Get(second.ID) == nil {
		t.Errorf("expected only the newest finished task to be kept, have %d", queue.Count())
	}

	queue.Clear()
	if queue.Count() != 0 {
		t.Errorf("Clear() left %d tasks", queue.Count())
	}
}
