// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testenv contains helper functions for skipping tests
// based on what the environment provides.
package testenv

import "testing"

// SkipIfShort skips t in -short mode.
func SkipIfShort(t testing.TB) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
}

// NeedsBuildInfo skips t if the test binary carries no build information.
func NeedsBuildInfo(t testing.TB, ok bool) {
	t.Helper()
	if !ok {
		t.Skip("skipping test: no build information in binary")
	}
}
