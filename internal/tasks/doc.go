// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks runs macro playback as cancelable sequential tasks.
//
// A playback is a Task holding the ordered lines of a macro. The Runner waits
// the configured step delay, submits a line through a StepFunc and waits for
// it to return before scheduling the next one, so step i+1 never overtakes
// step i. Every task carries a cancel handle; canceled tasks submit no further
// steps.
//
// # Key Types
//
//   - Task: One playback with status, progress and cancel handle
//   - Queue: Tracks tasks and publishes TaskNotifications
//   - Runner: Plays queued tasks in the background, one step at a time
//   - StepFunc: Callback that evaluates one line
//
// # Usage
//
//	queue := tasks.NewQueue(20)
//	runner := tasks.NewRunner(queue, 500*time.Millisecond)
//	task := tasks.NewTask(`Macro "daily_check"`, "daily_check", lines)
//	if err := runner.Submit(task, step); err != nil {
//	    return err
//	}
//
//	for n := range queue.Notifications() {
//	    fmt.Println(n.Description, n.Status, n.Step+1, "/", n.Total)
//	}
//
// Nested playback runs inline on the caller's goroutine:
//
//	err := tasks.Execute(ctx, inner, delay, step)
package tasks
