// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meminfo

import (
	"errors"
	"os"
	"testing"
)

func TestProbe(t *testing.T) {
	p := New()
	if _, ok := p.System(); !ok {
		t.Skip("skipping test: system memory is not readable here")
	}
	pid := os.Getpid()
	if _, ok := p.Process(pid); ok {
		t.Error("Process reported before Refresh")
	}
	p.Refresh(pid)
	proc, ok := p.Process(pid)
	if !ok {
		t.Fatal("Process not available after Refresh")
	}
	if proc.Resident == 0 || proc.Virtual < proc.Resident {
		t.Errorf("Process = %+v, want 0 < Resident <= Virtual", proc)
	}
	if _, ok := p.Process(pid + 1); ok {
		t.Error("Process reported for a pid that was not refreshed")
	}
	sys, ok := p.System()
	if !ok || sys.Total == 0 || sys.Free > sys.Total {
		t.Errorf("System() = (%+v, %v), want 0 <= Free <= Total, Total > 0", sys, ok)
	}
}

// fakeReaders makes the probe read proc and sys, or fail with err when
// it is not nil, until the end of the test.
func fakeReaders(t *testing.T, proc Process, sys System, err error) {
	oldProc, oldSys := readProcess, readSystem
	t.Cleanup(func() { readProcess, readSystem = oldProc, oldSys })
	readProcess = func(int) (Process, error) { return proc, err }
	readSystem = func() (System, error) { return sys, err }
}

func TestProbeReaders(t *testing.T) {
	fakeReaders(t, Process{Resident: 1, Virtual: 2}, System{Available: 3, Free: 4, Total: 5}, nil)
	p := New()
	p.Refresh(42)
	if got, ok := p.Process(42); !ok || got != (Process{1, 2}) {
		t.Errorf("Process(42) = (%+v, %v), want ({1 2}, true)", got, ok)
	}
	if got, ok := p.System(); !ok || got != (System{3, 4, 5}) {
		t.Errorf("System() = (%+v, %v), want ({3 4 5}, true)", got, ok)
	}

	// A failed Refresh does not keep stale values.
	readProcess = func(int) (Process, error) { return Process{}, errors.New("no such process") }
	readSystem = func() (System, error) { return System{}, errors.New("unsupported") }
	p.Refresh(42)
	if got, ok := p.Process(42); ok {
		t.Errorf("Process(42) = (%+v, true) after a failed read", got)
	}
	if got, ok := p.System(); ok {
		t.Errorf("System() = (%+v, true) after a failed read", got)
	}
}

func TestNewUnreadable(t *testing.T) {
	fakeReaders(t, Process{}, System{}, errors.New("unsupported"))
	if _, ok := New().System(); ok {
		t.Error("System() of a new probe reported after a failed read")
	}
}
