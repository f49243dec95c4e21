// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package progress reports the progress of long-running activities.
//
// A [Logger] counts the items processed by an activity and periodically
// emits a status line with the count, the elapsed time and the speed:
//
//	1,234,567 pumpkins, 1m 3s, 19596.30 pumpkins/s, 51.03 μs/pumpkin
//
// If the number of expected items is known, the line also reports the
// completion percentage and an estimate of the time to completion.
// Optionally it reports the speed since the previous line and the memory
// used by the process and available on the system.
//
// Status lines are emitted at most once per log interval, and only from
// Update and its variants: a Logger has no background goroutine. Lines go
// to a [Sink] under a target name, which defaults to the name of the
// program. The default sink writes records to [slog.Default].
//
// A Logger must be used by one goroutine at a time. To report the
// progress of several goroutines, give each its own [ConcurrentLogger]
// with [ConcurrentLogger.Duplicate]; updates are buffered locally and
// passed to the shared logger in batches. Close each ConcurrentLogger to
// flush its buffered updates.
//
// Functions reporting progress should take a [ProgressLog], so that
// callers can pass a Logger, a ConcurrentLogger, or [None] to disable
// reporting.
//
// [slog.Default]: https://pkg.go.dev/golang.org/x/exp/slog#Default
package progress
