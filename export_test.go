// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package progress

import (
	"time"

	"golang.org/x/progress/internal/meminfo"
)

// SetClock makes loggers read the time from f until restore is called.
func SetClock(f func() time.Time) (restore func()) {
	old := now
	now = f
	return func() { now = old }
}

// FakeProbe is a memory probe returning fixed values.
type FakeProbe struct {
	Proc      meminfo.Process
	ProcOK    bool
	Sys       meminfo.System
	SysOK     bool
	Refreshes int
}

func (p *FakeProbe) Refresh(pid int) { p.Refreshes++ }

func (p *FakeProbe) Process(pid int) (meminfo.Process, bool) { return p.Proc, p.ProcOK }

func (p *FakeProbe) System() (meminfo.System, bool) { return p.Sys, p.SysOK }

// SetProbe makes DisplayMemory(true) use p until restore is called.
func SetProbe(p *FakeProbe) (restore func()) {
	old := newProbe
	newProbe = func() memoryProbe { return p }
	return func() { newProbe = old }
}
