// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package progress

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gertd/go-pluralize"
	"golang.org/x/progress/internal/meminfo"
	"golang.org/x/progress/internal/proginfo"
)

// now is the clock of every logger; tests replace it.
var now = time.Now

// LightUpdateMask controls how often [Logger.LightUpdate] reads the
// clock: only when the count is a multiple of LightUpdateMask+1.
const LightUpdateMask = 1<<20 - 1

// DefaultLogInterval is the default minimum time between status lines.
const DefaultLogInterval = 10 * time.Second

// memoryProbe is the view of meminfo.Probe used by loggers.
type memoryProbe interface {
	Refresh(pid int)
	Process(pid int) (meminfo.Process, bool)
	System() (meminfo.System, bool)
}

var newProbe = func() memoryProbe { return meminfo.New() }

// Building a pluralize client compiles a few hundred rules, so it is done
// once, and plurals are cached by each logger.
var pluralizer = sync.OnceValue(pluralize.NewClient)

var defaultTarget = sync.OnceValue(proginfo.DefaultName)

// A Logger tracks the progress of an activity, periodically emitting a
// status line with the count, elapsed time, speed and, if requested,
// completion estimate and memory usage.
//
// A Logger must not be used by several goroutines at once; see
// [ConcurrentLogger] for that.
//
// Loggers should be created with New. The zero Logger writes to the
// default sink, under an empty target, with no item name and no log
// interval.
type Logger struct {
	itemName    string
	plural      string
	logInterval time.Duration
	expected    uint64
	timeUnit    TimeUnit
	localSpeed  bool
	target      string
	level       Level
	sink        Sink

	started     bool
	startTime   time.Time
	stopped     bool
	stopTime    time.Time
	lastLogTime time.Time
	nextLogTime time.Time
	count       uint64
	lastCount   uint64

	mem memoryProbe
	pid int
}

var _ ProgressLog = (*Logger)(nil)

// New returns a Logger counting items every 10 seconds, writing status
// lines at LevelInfo to slog.Default() with the program name as target.
func New() *Logger {
	t := now()
	return &Logger{
		itemName:    "item",
		plural:      "items",
		logInterval: DefaultLogInterval,
		target:      defaultTarget(),
		level:       LevelInfo,
		sink:        defaultSink,
		lastLogTime: t,
		nextLogTime: t,
		pid:         os.Getpid(),
	}
}

// DisplayMemory sets whether status lines report memory usage. Enabling
// it creates the memory probe of pl.
func (pl *Logger) DisplayMemory(display bool) ProgressLog {
	switch {
	case display && pl.mem == nil:
		pl.mem = newProbe()
	case !display:
		pl.mem = nil
	}
	return pl
}

// ItemName sets the singular item name and derives its plural.
func (pl *Logger) ItemName(name string) ProgressLog {
	if name != pl.itemName {
		pl.itemName = name
		pl.plural = pluralizer().Plural(name)
	}
	return pl
}

// LogInterval sets the minimum time between automatic status lines.
// It takes effect at the next Start or emitted line.
func (pl *Logger) LogInterval(d time.Duration) ProgressLog {
	pl.logInterval = d
	return pl
}

// ExpectedUpdates sets the number of expected updates; 0 clears it.
func (pl *Logger) ExpectedUpdates(n uint64) ProgressLog {
	pl.expected = n
	return pl
}

// TimeUnit fixes the unit of timings and speeds, or restores the
// adaptive choice with Adaptive.
func (pl *Logger) TimeUnit(u TimeUnit) ProgressLog {
	pl.timeUnit = u
	return pl
}

// LocalSpeed sets whether status lines also report the speed since the
// previous line.
func (pl *Logger) LocalSpeed(local bool) ProgressLog {
	pl.localSpeed = local
	return pl
}

// LogTarget sets the target under which lines are emitted.
func (pl *Logger) LogTarget(target string) ProgressLog {
	pl.target = target
	return pl
}

// LogLevel sets the level of status lines and of the Start and Done
// messages.
func (pl *Logger) LogLevel(level Level) ProgressLog {
	pl.level = level
	return pl
}

// Output sets the sink of pl. A nil sink restores the default one.
func (pl *Logger) Output(s Sink) ProgressLog {
	if s == nil {
		s = defaultSink
	}
	pl.sink = s
	return pl
}

// Start resets the count and the timers, schedules the first status line
// one log interval later and emits msg if it is not empty.
func (pl *Logger) Start(msg string) {
	t := now()
	pl.started, pl.startTime = true, t
	pl.stopped, pl.stopTime = false, time.Time{}
	pl.count, pl.lastCount = 0, 0
	pl.lastLogTime = t
	pl.nextLogTime = t.Add(pl.logInterval)
	if msg != "" {
		pl.emit(pl.level, msg)
	}
}

// Update counts one item.
func (pl *Logger) Update() {
	pl.count++
	pl.logIf()
}

// UpdateWithCount counts n items.
func (pl *Logger) UpdateWithCount(n uint64) {
	pl.count += n
	pl.logIf()
}

// LightUpdate increments the count and reads the clock only when the
// count is a multiple of LightUpdateMask+1.
func (pl *Logger) LightUpdate() {
	pl.count++
	if pl.count&LightUpdateMask == 0 {
		pl.logIf()
	}
}

// UpdateAndDisplay counts one item and emits a status line regardless of
// the log interval.
func (pl *Logger) UpdateAndDisplay() {
	pl.count++
	pl.log(now())
}

// Stop freezes the elapsed time and clears the expected updates. No
// automatic status line is emitted until the next Start.
func (pl *Logger) Stop() {
	pl.stopped, pl.stopTime = true, now()
	pl.expected = 0
}

// Done stops pl, emits "Completed." and then a final status line with a
// fresh memory report.
func (pl *Logger) Done() {
	pl.Stop()
	pl.emit(pl.level, "Completed.")
	pl.Refresh()
	pl.emit(pl.level, pl.String())
}

// DoneWithCount sets the count to n and calls Done.
func (pl *Logger) DoneWithCount(n uint64) {
	pl.count = n
	pl.Done()
}

// Count returns the number of items counted since Start.
func (pl *Logger) Count() uint64 { return pl.count }

// Expected returns the expected updates and whether they are set.
func (pl *Logger) Expected() (uint64, bool) { return pl.expected, pl.expected != 0 }

// Elapsed returns the time since Start, or false before the first Start.
func (pl *Logger) Elapsed() (time.Duration, bool) {
	if !pl.started {
		return 0, false
	}
	return now().Sub(pl.startTime), true
}

// Refresh reads the memory usage again, if pl displays it.
func (pl *Logger) Refresh() {
	if pl.mem != nil {
		pl.mem.Refresh(pl.pid)
	}
}

// Clone returns a Logger with the configuration of pl, its own memory
// probe if pl displays memory, and counters and timestamps reset.
func (pl *Logger) Clone() ProgressLog {
	c := New()
	c.itemName, c.plural = pl.itemName, pl.plural
	c.logInterval = pl.logInterval
	c.timeUnit = pl.timeUnit
	c.localSpeed = pl.localSpeed
	c.target = pl.target
	c.level = pl.level
	c.sink = pl.sink
	if pl.mem != nil {
		c.mem = newProbe()
	}
	return c
}

// Tracef emits a formatted line at LevelTrace under the target of pl.
// Debugf, Infof, Warnf and Errorf do the same at their levels.
func (pl *Logger) Tracef(format string, args ...any) {
	pl.emit(LevelTrace, fmt.Sprintf(format, args...))
}

func (pl *Logger) Debugf(format string, args ...any) {
	pl.emit(LevelDebug, fmt.Sprintf(format, args...))
}

func (pl *Logger) Infof(format string, args ...any) {
	pl.emit(LevelInfo, fmt.Sprintf(format, args...))
}

func (pl *Logger) Warnf(format string, args ...any) {
	pl.emit(LevelWarn, fmt.Sprintf(format, args...))
}

func (pl *Logger) Errorf(format string, args ...any) {
	pl.emit(LevelError, fmt.Sprintf(format, args...))
}

// log emits a status line, assuming t is the current time, and
// reschedules the next one.
func (pl *Logger) log(t time.Time) {
	pl.Refresh()
	pl.emit(pl.level, pl.String())
	pl.lastCount = pl.count
	pl.lastLogTime = t
	pl.nextLogTime = t.Add(pl.logInterval)
}

// logIf emits a status line if the log interval has elapsed. A stopped
// logger emits nothing until the next Start.
func (pl *Logger) logIf() {
	if pl.stopped {
		return
	}
	if t := now(); !t.Before(pl.nextLogTime) {
		pl.log(t)
	}
}

func (pl *Logger) emit(level Level, msg string) {
	sink := pl.sink
	if sink == nil {
		sink = defaultSink
	}
	sink.Emit(pl.target, level, msg)
}
