// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package progresstest provides testing utilities for progress loggers.
package progresstest

import (
	"strings"
	"sync"

	"golang.org/x/progress"
)

// A Line is one line emitted by a logger.
type Line struct {
	Target string
	Level  progress.Level
	Msg    string
}

// A Recorder is a progress.Sink remembering every emitted line.
// It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	lines []Line
}

var _ progress.Sink = (*Recorder)(nil)

func (r *Recorder) Emit(target string, level progress.Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, Line{target, level, msg})
}

// Lines returns a copy of the lines emitted so far.
func (r *Recorder) Lines() []Line {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Line(nil), r.lines...)
}

// Msgs returns the messages of the lines emitted so far.
func (r *Recorder) Msgs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := make([]string, len(r.lines))
	for i, l := range r.lines {
		msgs[i] = l.Msg
	}
	return msgs
}

// Reset forgets the lines emitted so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = nil
}

// String returns the emitted messages, one per line.
func (r *Recorder) String() string {
	return strings.Join(r.Msgs(), "\n")
}
