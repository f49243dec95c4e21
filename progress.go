// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package progress

import (
	"fmt"
	"time"
)

// ProgressLog is the set of operations shared by [Logger],
// [ConcurrentLogger] and [Optional].
//
// Setters return the receiver so that calls can be chained:
//
//	pl := progress.New()
//	pl.ItemName("pumpkin").LogInterval(time.Second)
//	pl.Start("Smashing pumpkins...")
//	for range pumpkins {
//		pl.Update()
//	}
//	pl.Done()
type ProgressLog interface {
	// DisplayMemory sets whether the status line reports the resident and
	// virtual size of the current process together with the available,
	// free and total memory of the system.
	DisplayMemory(display bool) ProgressLog

	// ItemName sets the singular name of an item. It defaults to "item".
	ItemName(name string) ProgressLog

	// LogInterval sets the minimum time between two status lines.
	// It defaults to 10 seconds.
	LogInterval(d time.Duration) ProgressLog

	// ExpectedUpdates sets the number of expected updates, enabling the
	// display of the completion percentage and of an estimate of the time
	// to completion. Zero means unknown.
	ExpectedUpdates(n uint64) ProgressLog

	// TimeUnit forces the unit used for timings and speeds. Unless it is
	// Adaptive, counts are also printed without thousands separators, so
	// that the output can be parsed.
	TimeUnit(u TimeUnit) ProgressLog

	// LocalSpeed sets whether to also display the speed achieved since the
	// previous status line.
	LocalSpeed(local bool) ProgressLog

	// LogTarget sets the target passed to the sink, usually the name of
	// the program or package doing the work.
	LogTarget(target string) ProgressLog

	// LogLevel sets the level of status lines. It defaults to LevelInfo.
	LogLevel(level Level) ProgressLog

	// Output sets the sink receiving every emitted line.
	Output(s Sink) ProgressLog

	// Start resets the counters and the timer and emits msg, unless
	// it is empty.
	Start(msg string)

	// Update increments the count and emits a status line if the log
	// interval has elapsed.
	Update()

	// UpdateWithCount adds n to the count and emits a status line if the
	// log interval has elapsed.
	UpdateWithCount(n uint64)

	// LightUpdate increments the count, checking the time only once every
	// implementation-defined number of calls. It is meant for activities so
	// short that reading the clock on each of them would be too expensive.
	LightUpdate()

	// UpdateAndDisplay increments the count and emits a status line.
	UpdateAndDisplay()

	// Stop fixes the final time and clears the expected updates.
	Stop()

	// Done stops, emits "Completed." and then the final status line.
	Done()

	// DoneWithCount sets the count and calls Done. It is useful when the
	// updates were approximate, or when only Start and DoneWithCount are
	// used to time an activity.
	DoneWithCount(n uint64)

	// Count returns the current count.
	Count() uint64

	// Expected returns the number of expected updates, if set.
	Expected() (uint64, bool)

	// Elapsed returns the time since Start, or false if Start was never
	// called.
	Elapsed() (time.Duration, bool)

	// Refresh updates the memory information. It must be called before
	// rendering manually with String when memory display is enabled.
	Refresh()

	// Clone returns a logger with the same configuration and fresh
	// counters.
	Clone() ProgressLog

	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	// String renders the status line without changing any state.
	fmt.Stringer
}
