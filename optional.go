// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package progress

import "time"

// An Optional holds either a ProgressLog, to which it delegates every
// operation, or nothing, in which case every operation does nothing.
//
// Functions reporting progress can take a ProgressLog and let their
// callers pass [None] to turn reporting off.
type Optional struct {
	pl ProgressLog
}

var _ ProgressLog = Optional{}

// Some returns an Optional delegating to pl. A nil pl, including a nil
// *Logger or *ConcurrentLogger, gives None.
func Some(pl ProgressLog) Optional {
	switch p := pl.(type) {
	case *Logger:
		if p == nil {
			return None()
		}
	case *ConcurrentLogger:
		if p == nil {
			return None()
		}
	}
	return Optional{pl}
}

// None returns an empty Optional.
func None() Optional {
	return Optional{}
}

// NoLogging is shorthand for None().
func NoLogging() ProgressLog {
	return None()
}

// Get returns the ProgressLog held by o, if any.
func (o Optional) Get() (ProgressLog, bool) {
	return o.pl, o.pl != nil
}

func (o Optional) DisplayMemory(display bool) ProgressLog {
	if o.pl != nil {
		o.pl.DisplayMemory(display)
	}
	return o
}

func (o Optional) ItemName(name string) ProgressLog {
	if o.pl != nil {
		o.pl.ItemName(name)
	}
	return o
}

func (o Optional) LogInterval(d time.Duration) ProgressLog {
	if o.pl != nil {
		o.pl.LogInterval(d)
	}
	return o
}

func (o Optional) ExpectedUpdates(n uint64) ProgressLog {
	if o.pl != nil {
		o.pl.ExpectedUpdates(n)
	}
	return o
}

func (o Optional) TimeUnit(u TimeUnit) ProgressLog {
	if o.pl != nil {
		o.pl.TimeUnit(u)
	}
	return o
}

func (o Optional) LocalSpeed(local bool) ProgressLog {
	if o.pl != nil {
		o.pl.LocalSpeed(local)
	}
	return o
}

func (o Optional) LogTarget(target string) ProgressLog {
	if o.pl != nil {
		o.pl.LogTarget(target)
	}
	return o
}

func (o Optional) LogLevel(level Level) ProgressLog {
	if o.pl != nil {
		o.pl.LogLevel(level)
	}
	return o
}

func (o Optional) Output(s Sink) ProgressLog {
	if o.pl != nil {
		o.pl.Output(s)
	}
	return o
}

func (o Optional) Start(msg string) {
	if o.pl != nil {
		o.pl.Start(msg)
	}
}

func (o Optional) Update() {
	if o.pl != nil {
		o.pl.Update()
	}
}

func (o Optional) UpdateWithCount(n uint64) {
	if o.pl != nil {
		o.pl.UpdateWithCount(n)
	}
}

func (o Optional) LightUpdate() {
	if o.pl != nil {
		o.pl.LightUpdate()
	}
}

func (o Optional) UpdateAndDisplay() {
	if o.pl != nil {
		o.pl.UpdateAndDisplay()
	}
}

func (o Optional) Stop() {
	if o.pl != nil {
		o.pl.Stop()
	}
}

func (o Optional) Done() {
	if o.pl != nil {
		o.pl.Done()
	}
}

func (o Optional) DoneWithCount(n uint64) {
	if o.pl != nil {
		o.pl.DoneWithCount(n)
	}
}

func (o Optional) Count() uint64 {
	if o.pl == nil {
		return 0
	}
	return o.pl.Count()
}

func (o Optional) Expected() (uint64, bool) {
	if o.pl == nil {
		return 0, false
	}
	return o.pl.Expected()
}

func (o Optional) Elapsed() (time.Duration, bool) {
	if o.pl == nil {
		return 0, false
	}
	return o.pl.Elapsed()
}

func (o Optional) Refresh() {
	if o.pl != nil {
		o.pl.Refresh()
	}
}

// Clone clones the held ProgressLog. The clone of None is None.
func (o Optional) Clone() ProgressLog {
	if o.pl == nil {
		return o
	}
	return Optional{o.pl.Clone()}
}

func (o Optional) Tracef(format string, args ...any) {
	if o.pl != nil {
		o.pl.Tracef(format, args...)
	}
}

func (o Optional) Debugf(format string, args ...any) {
	if o.pl != nil {
		o.pl.Debugf(format, args...)
	}
}

func (o Optional) Infof(format string, args ...any) {
	if o.pl != nil {
		o.pl.Infof(format, args...)
	}
}

func (o Optional) Warnf(format string, args ...any) {
	if o.pl != nil {
		o.pl.Warnf(format, args...)
	}
}

func (o Optional) Errorf(format string, args ...any) {
	if o.pl != nil {
		o.pl.Errorf(format, args...)
	}
}

// String renders the held ProgressLog, or returns "" for None.
func (o Optional) String() string {
	if o.pl == nil {
		return ""
	}
	return o.pl.String()
}
