// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package progress

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotStarted is the status line of a logger that was never started.
const NotStarted = "ProgressLogger not started"

var grouping = message.NewPrinter(language.English)

// String renders the status line of pl. It does not refresh the memory
// information; call Refresh first for an up-to-date memory report.
func (pl *Logger) String() string {
	if !pl.started {
		return NotStarted
	}
	var b strings.Builder
	if pl.stopped {
		elapsed := pl.stopTime.Sub(pl.startTime)
		fmt.Fprintf(&b, "Elapsed: %s", formatDuration(elapsed))
		if pl.count != 0 {
			fmt.Fprintf(&b, " [%s %s", pl.formatCount(), pl.label())
			if rate, ok := pl.rate(elapsed, pl.count); ok {
				b.WriteString(", ")
				b.WriteString(rate)
			}
			b.WriteString("]")
		}
	} else {
		t := now()
		elapsed := t.Sub(pl.startTime)
		fmt.Fprintf(&b, "%s %s, %s", pl.formatCount(), pl.label(), formatDuration(elapsed))
		if rate, ok := pl.rate(elapsed, pl.count); ok {
			b.WriteString(", ")
			b.WriteString(rate)
		}
		if pl.expected != 0 {
			fmt.Fprintf(&b, "; %.2f%% done, %s to end",
				100*float64(pl.count)/float64(pl.expected),
				formatDuration(pl.eta(elapsed)))
		}
		if pl.localSpeed {
			if rate, ok := pl.rate(t.Sub(pl.lastLogTime), pl.count-pl.lastCount); ok {
				fmt.Fprintf(&b, " [%s]", rate)
			}
		}
	}
	if pl.mem != nil {
		res, vir := na, na
		if p, ok := pl.mem.Process(pl.pid); ok {
			res, vir = formatBytes(p.Resident), formatBytes(p.Virtual)
		}
		avail, free, total := na, na, na
		if sys, ok := pl.mem.System(); ok {
			avail, free, total = formatBytes(sys.Available), formatBytes(sys.Free), formatBytes(sys.Total)
		}
		fmt.Fprintf(&b, "; res/vir/avail/free/total mem %s/%s/%s/%s/%s", res, vir, avail, free, total)
	}
	return b.String()
}

// rate renders the speed and the time per item of n items processed in
// elapsed. It reports false if they are undefined, as when n is zero.
func (pl *Logger) rate(elapsed time.Duration, n uint64) (string, bool) {
	if n == 0 {
		return "", false
	}
	secondsPerItem := elapsed.Seconds() / float64(n)
	if !(secondsPerItem > 0) || math.IsInf(secondsPerItem, 0) {
		return "", false
	}
	itemsPerSecond := 1 / secondsPerItem

	timing, speed := pl.timeUnit, pl.timeUnit
	if pl.timeUnit == Adaptive {
		timing = NiceTimeUnit(secondsPerItem)
		speed = NiceSpeedUnit(secondsPerItem)
	}
	return fmt.Sprintf("%.2f %s/%s, %.2f %s/%s",
		itemsPerSecond*speed.Seconds(), pl.plural, speed.Label(),
		secondsPerItem/timing.Seconds(), timing.Label(), pl.itemName), true
}

// eta estimates the time to completion as
// (expected - count) * elapsed / (count + 1), in milliseconds.
func (pl *Logger) eta(elapsed time.Duration) time.Duration {
	var remaining uint64
	if pl.expected > pl.count {
		remaining = pl.expected - pl.count
	}
	ms := elapsed.Milliseconds()
	neg := ms < 0
	if neg {
		ms = -ms
	}
	hi, lo := bits.Mul64(remaining, uint64(ms))
	d := pl.count + 1
	if d == 0 || hi >= d {
		return time.Duration(math.MaxInt64)
	}
	q, _ := bits.Div64(hi, lo, d)
	if q > math.MaxInt64/uint64(time.Millisecond) {
		return time.Duration(math.MaxInt64)
	}
	eta := time.Duration(q) * time.Millisecond
	if neg {
		eta = -eta
	}
	return eta
}

func (pl *Logger) formatCount() string {
	if pl.timeUnit != Adaptive {
		return strconv.FormatUint(pl.count, 10)
	}
	return grouping.Sprintf("%d", pl.count)
}

func (pl *Logger) label() string {
	if pl.count == 1 {
		return pl.itemName
	}
	return pl.plural
}

// na stands for a memory figure that could not be read.
const na = "N/A"

func formatBytes(n uint64) string {
	return Humanize(float64(n)) + "B"
}

// formatDuration formats d with FormatMillis. Negative durations, which
// only a clock going backward can produce, keep their sign.
func formatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 0 {
		return "-" + FormatMillis(uint64(-ms))
	}
	return FormatMillis(uint64(ms))
}
