// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meminfo reads the memory usage of a process and of the system.
package meminfo

import (
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Process is the memory used by a process, in bytes.
type Process struct {
	Resident uint64
	Virtual  uint64
}

// System is the memory of the system, in bytes.
type System struct {
	Available uint64
	Free      uint64
	Total     uint64
}

// A Probe caches a snapshot of the memory of one process and of the
// system. The snapshot changes only on Refresh.
type Probe struct {
	pid    int
	proc   Process
	procOK bool
	sys    System
	sysOK  bool
}

// Tests replace these.
var (
	readProcess = func(pid int) (Process, error) {
		p, err := process.NewProcess(int32(pid))
		if err != nil {
			return Process{}, err
		}
		info, err := p.MemoryInfo()
		if err != nil {
			return Process{}, err
		}
		return Process{Resident: info.RSS, Virtual: info.VMS}, nil
	}
	readSystem = func() (System, error) {
		vm, err := mem.VirtualMemory()
		if err != nil {
			return System{}, err
		}
		return System{Available: vm.Available, Free: vm.Free, Total: vm.Total}, nil
	}
)

// New returns a Probe holding the current system memory and no process
// information.
func New() *Probe {
	p := &Probe{pid: -1}
	p.refreshSystem()
	return p
}

// Refresh reads again the memory of the process pid and of the system.
// Memory that cannot be read is reported unavailable until the next
// successful Refresh.
func (p *Probe) Refresh(pid int) {
	p.pid = pid
	p.proc, p.procOK = Process{}, false
	if proc, err := readProcess(pid); err == nil {
		p.proc, p.procOK = proc, true
	}
	p.refreshSystem()
}

func (p *Probe) refreshSystem() {
	p.sys, p.sysOK = System{}, false
	if sys, err := readSystem(); err == nil {
		p.sys, p.sysOK = sys, true
	}
}

// Process returns the memory of pid as of the last Refresh. It reports
// false if pid was not the subject of the last Refresh or could not be
// inspected.
func (p *Probe) Process(pid int) (Process, bool) {
	if !p.procOK || pid != p.pid {
		return Process{}, false
	}
	return p.proc, true
}

// System returns the system memory as of the last Refresh. It reports
// false if it could not be read.
func (p *Probe) System() (System, bool) {
	return p.sys, p.sysOK
}
