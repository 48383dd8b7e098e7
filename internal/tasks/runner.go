// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks runs macro playback as cancelable sequential tasks.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// ErrRunnerStopped is returned by Submit after Stop.
var ErrRunnerStopped = errors.New("playback runner stopped")

// StepFunc submits one playback line. It must return only after the line has
// been fully evaluated; the next step is not scheduled before it returns.
type StepFunc func(ctx context.Context, index int, line string) error

// =============================================================================
// TASK RUNNER
// =============================================================================

// Runner plays tasks in the background, one step at a time.
type Runner struct {
	queue         *Queue
	wg            sync.WaitGroup
	stop          chan struct{}
	stopOnce      sync.Once
	stopped       atomic.Bool
	maxConcurrent int
	semaphore     chan struct{}
	stepDelay     atomic.Int64
}

// NewRunner creates a runner that plays one task at a time with the given
// delay before each step.
func NewRunner(queue *Queue, stepDelay time.Duration) *Runner {
	return NewRunnerWithOptions(queue, 1, stepDelay)
}

// NewRunnerWithOptions creates a runner allowing maxConcurrent tasks to play
// at once (default 1).
func NewRunnerWithOptions(queue *Queue, maxConcurrent int, stepDelay time.Duration) *Runner {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	r := &Runner{
		queue:         queue,
		stop:          make(chan struct{}),
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
	}
	r.SetStepDelay(stepDelay)
	return r
}

// Queue returns the queue the runner reports to.
func (r *Runner) Queue() *Queue {
	return r.queue
}

// SetStepDelay changes the delay used for steps scheduled from now on.
func (r *Runner) SetStepDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	r.stepDelay.Store(int64(d))
}

// StepDelay returns the current per-step delay.
func (r *Runner) StepDelay() time.Duration {
	return time.Duration(r.stepDelay.Load())
}

// =============================================================================
// RUNNER LIFECYCLE
// =============================================================================

// Submit queues task and plays it in the background through step.
func (r *Runner) Submit(task *Task, step StepFunc) error {
	if r.stopped.Load() {
		return ErrRunnerStopped
	}
	if err := r.queue.Add(task); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	task.SetCancelFunc(cancel)

	r.wg.Add(1)
	go r.executeTask(ctx, cancel, task, step)
	return nil
}

// CancelAll invalidates every queued and running task.
func (r *Runner) CancelAll() int {
	n := r.queue.CancelAll()
	if n > 0 {
		log.Printf("Playback canceled: %d task(s)", n)
	}
	return n
}

// Wait blocks until every submitted task has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Stop rejects new tasks, cancels pending ones and waits for in-flight steps
// to return.
func (r *Runner) Stop() {
	r.stopped.Store(true)
	r.stopOnce.Do(func() { close(r.stop) })
	r.CancelAll()
	r.wg.Wait()
}

// =============================================================================
// TASK PROCESSING
// =============================================================================

func (r *Runner) executeTask(ctx context.Context, cancel context.CancelFunc, task *Task, step StepFunc) {
	defer r.wg.Done()
	defer cancel()

	select {
	case r.semaphore <- struct{}{}:
	case <-ctx.Done():
		r.queue.MarkCanceled(task)
		return
	case <-r.stop:
		r.queue.MarkCanceled(task)
		return
	}
	defer func() { <-r.semaphore }()

	if task.IsComplete() {
		r.queue.MarkCanceled(task)
		return
	}
	r.queue.MarkRunning(task)

	err := playSteps(ctx, task, r.StepDelay(), step, r.queue.MarkStep)
	switch {
	case err == nil:
		r.queue.MarkComplete(task)
	case errors.Is(err, context.Canceled):
		r.queue.MarkCanceled(task)
	default:
		log.Printf("WARNING: Playback of %s failed: %v", task.Description, err)
		r.queue.MarkFailed(task, err)
	}
}

// playSteps waits delay, submits a step and waits for it to return, in that
// order, for every step of task.
func playSteps(ctx context.Context, task *Task, delay time.Duration, step StepFunc, onStep func(*Task, int)) error {
	for i, line := range task.Steps {
		if err := sleep(ctx, delay); err != nil {
			return err
		}
		if err := step(ctx, i, line); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("step %d (%q): %w", i+1, line, err)
		}
		if onStep != nil {
			onStep(task, i)
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// Execute plays task on the calling goroutine without queuing it. Nested
// playback uses it so the enclosing step does not return before the inner
// macro has finished.
func Execute(ctx context.Context, task *Task, delay time.Duration, step StepFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	task.SetCancelFunc(cancel)
	defer cancel()

	task.MarkStarted()
	err := playSteps(ctx, task, delay, step, func(t *Task, i int) { t.advance(i) })
	switch {
	case err == nil:
		task.MarkComplete()
	case errors.Is(err, context.Canceled):
		task.MarkCanceled()
	default:
		task.SetError(err)
	}
	return err
}
