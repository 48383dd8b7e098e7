// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package macro implements macro recording, the saved-macro library and the
// "macro" command sub-protocol.
package macro

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrNotRecording is returned by Stop when no recording is active.
	ErrNotRecording = errors.New("no macro is being recorded")

	// ErrAlreadyRecording is returned by Start while a recording is active.
	ErrAlreadyRecording = errors.New("a macro is already being recorded")
)

// State is the recorder's state.
type State int

const (
	Idle State = iota
	Recording
)

func (s State) String() string {
	if s == Recording {
		return "recording"
	}
	return "idle"
}

// Recorder is the recording-session state machine.
type Recorder struct {
	mu        sync.Mutex
	state     State
	name      string
	lines     []string
	startedAt time.Time
}

// NewRecorder creates an idle recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start begins capturing lines under name.
func (r *Recorder) Start(name string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == Recording {
		return ErrAlreadyRecording
	}
	r.state = Recording
	r.name = name
	r.lines = nil
	r.startedAt = now
	return nil
}

// Capture appends line to the active recording. It reports false when idle.
func (r *Recorder) Capture(line string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != Recording {
		return false
	}
	r.lines = append(r.lines, line)
	return true
}

// Stop ends the recording and returns its name and captured lines.
func (r *Recorder) Stop() (string, []string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != Recording {
		return "", nil, ErrNotRecording
	}
	name, lines := r.name, r.lines
	r.state = Idle
	r.name = ""
	r.lines = nil
	return name, lines, nil
}

// Status returns the state, the active name and the number of captured lines.
func (r *Recorder) Status() (State, string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.name, len(r.lines)
}

// Recording reports whether a recording is active.
func (r *Recorder) Recording() bool {
	state, _, _ := r.Status()
	return state == Recording
}
