// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package progress

import (
	"fmt"
	"strings"
)

// A TimeUnit is a unit used to display timings and speeds.
//
// The zero value, Adaptive, selects a readable unit for each value.
type TimeUnit int

const (
	Adaptive TimeUnit = iota
	Nanoseconds
	Microseconds
	Milliseconds
	Seconds
	Minutes
	Hours
	Days
)

// units lists the fixed time units from the smallest to the largest.
var units = [...]TimeUnit{
	Nanoseconds,
	Microseconds,
	Milliseconds,
	Seconds,
	Minutes,
	Hours,
	Days,
}

// Label returns the abbreviation of u.
func (u TimeUnit) Label() string {
	switch u {
	case Nanoseconds:
		return "ns"
	case Microseconds:
		return "μs"
	case Milliseconds:
		return "ms"
	case Seconds:
		return "s"
	case Minutes:
		return "m"
	case Hours:
		return "h"
	case Days:
		return "d"
	}
	return ""
}

// Seconds returns the number of seconds in one u.
func (u TimeUnit) Seconds() float64 {
	switch u {
	case Nanoseconds:
		return 1.0e-9
	case Microseconds:
		return 1.0e-6
	case Milliseconds:
		return 1.0e-3
	case Seconds:
		return 1
	case Minutes:
		return 60
	case Hours:
		return 3600
	case Days:
		return 86400
	}
	return 0
}

func (u TimeUnit) String() string {
	if u == Adaptive {
		return "adaptive"
	}
	return u.Label()
}

// NiceTimeUnit returns the largest unit not exceeding the given number
// of seconds, or Nanoseconds if there is none.
func NiceTimeUnit(seconds float64) TimeUnit {
	for i := len(units) - 1; i >= 0; i-- {
		if seconds >= units[i].Seconds() {
			return units[i]
		}
	}
	return Nanoseconds
}

// NiceSpeedUnit returns the smallest unit of at least one second that is
// not smaller than the given number of seconds, or Days if there is none.
func NiceSpeedUnit(seconds float64) TimeUnit {
	for _, u := range units[Seconds-1:] {
		if seconds <= u.Seconds() {
			return u
		}
	}
	return Days
}

// FormatMillis formats a duration given in milliseconds.
//
// Durations below one second are printed as "<ms>ms". Longer durations
// are split into days, hours, minutes and seconds, starting from the
// first non-zero component: FormatMillis(90_000_000) is "1d 1h 0m 0s".
func FormatMillis(ms uint64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	var b strings.Builder
	seconds := ms / 1000
	for _, u := range [...]TimeUnit{Days, Hours, Minutes} {
		n := uint64(u.Seconds())
		if seconds >= n || b.Len() > 0 {
			fmt.Fprintf(&b, "%d%s ", seconds/n, u.Label())
			seconds %= n
		}
	}
	fmt.Fprintf(&b, "%ds", seconds)
	return b.String()
}

var magnitudes = [...]string{"", "k", "M", "G", "T", "P", "E", "Z", "Y"}

// Scale divides v by 1000 until it drops below 1000, returning the
// scaled value and its SI suffix. Values beyond the yotta range keep
// the "Y" suffix.
func Scale(v float64) (float64, string) {
	for _, m := range magnitudes {
		if v < 1000 {
			return v, m
		}
		v /= 1000
	}
	return v * 1000, magnitudes[len(magnitudes)-1]
}

// Humanize formats v with two decimals and an SI suffix.
func Humanize(v float64) string {
	v, m := Scale(v)
	return fmt.Sprintf("%.2f%s", v, m)
}
