// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package progress_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/progress"
	"golang.org/x/progress/internal/testenv"
	"golang.org/x/progress/progresstest"
	"golang.org/x/sync/errgroup"
)

func setupConcurrent(t *testing.T, threshold uint32) (*progress.ConcurrentLogger, *progresstest.Recorder, *fakeClock) {
	t.Helper()
	pl, rec, clock := setup(t)
	return progress.WrapWithThreshold(pl, threshold), rec, clock
}

func TestConcurrentThreshold(t *testing.T) {
	cl, _, _ := setupConcurrent(t, 10)
	cl.Start("")
	for i := 0; i < 9; i++ {
		cl.Update()
	}
	if got := cl.Count(); got != 0 {
		t.Fatalf("Count() = %d below the threshold, want 0", got)
	}
	cl.Update()
	if got := cl.Count(); got != 10 {
		t.Fatalf("Count() = %d at the threshold, want 10", got)
	}
	cl.UpdateWithCount(25)
	if got := cl.Count(); got != 35 {
		t.Errorf("Count() = %d after a large update, want 35", got)
	}
}

func TestConcurrentClose(t *testing.T) {
	cl, _, _ := setupConcurrent(t, 100)
	cl.Start("")
	for i := 0; i < 5; i++ {
		cl.Update()
	}
	if err := cl.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	cl.Close()
	if got := cl.Count(); got != 5 {
		t.Errorf("Count() = %d after closing twice, want 5", got)
	}
}

func TestConcurrentDone(t *testing.T) {
	cl, rec, clock := setupConcurrent(t, 100)
	cl.Start("")
	for i := 0; i < 7; i++ {
		cl.Update()
	}
	clock.advance(7 * time.Second)
	cl.Done()
	if got := cl.Count(); got != 7 {
		t.Errorf("Count() = %d, want 7", got)
	}
	want := []string{
		"Completed.",
		"Elapsed: 7s [7 pumpkins, 1.00 pumpkins/s, 1.00 s/pumpkin]",
	}
	if diff := cmp.Diff(want, rec.Msgs()); diff != "" {
		t.Errorf("emitted lines mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentDoneWithCount(t *testing.T) {
	cl, _, _ := setupConcurrent(t, 100)
	cl.Start("")
	for i := 0; i < 7; i++ {
		cl.Update()
	}
	cl.DoneWithCount(3)
	if got := cl.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	// The discarded updates are not flushed later.
	cl.Flush()
	if got := cl.Count(); got != 3 {
		t.Errorf("Count() = %d after Flush, want 3", got)
	}
}

func TestConcurrentUpdateAndDisplay(t *testing.T) {
	cl, rec, clock := setupConcurrent(t, 100)
	cl.Start("")
	for i := 0; i < 5; i++ {
		cl.Update()
	}
	clock.advance(3 * time.Second)
	cl.UpdateAndDisplay()
	if got := cl.Count(); got != 6 {
		t.Errorf("Count() = %d, want 6", got)
	}
	want := []string{"6 pumpkins, 3s, 2.00 pumpkins/s, 500.00 ms/pumpkin"}
	if diff := cmp.Diff(want, rec.Msgs()); diff != "" {
		t.Errorf("emitted lines mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentLightUpdate(t *testing.T) {
	cl, _, _ := setupConcurrent(t, 3000)
	cl.Start("")
	// The local count is compared with the threshold at 1024, 2048 and
	// 3072 updates.
	for i := 0; i < 3071; i++ {
		cl.LightUpdate()
	}
	if got := cl.Count(); got != 0 {
		t.Fatalf("Count() = %d, want 0", got)
	}
	cl.LightUpdate()
	if got := cl.Count(); got != 3072 {
		t.Errorf("Count() = %d, want 3072", got)
	}
}

// addRecorder is a logger remembering the increments it receives.
type addRecorder struct {
	*progress.Logger
	adds []uint64
}

func (r *addRecorder) UpdateWithCount(n uint64) {
	r.adds = append(r.adds, n)
	r.Logger.UpdateWithCount(n)
}

func TestConcurrentOverflow(t *testing.T) {
	pl, _, _ := setup(t)
	r := &addRecorder{Logger: pl}
	cl := progress.WrapWithThreshold(r, math.MaxUint32)
	cl.Start("")
	cl.UpdateWithCount(500)
	cl.UpdateWithCount(math.MaxUint64 - 200)
	want := []uint64{500, math.MaxUint64 - 200}
	if diff := cmp.Diff(want, r.adds); diff != "" {
		t.Errorf("increments mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentDuplicate(t *testing.T) {
	cl, _, _ := setupConcurrent(t, 10)
	cl.Start("")
	dup := cl.Duplicate().Threshold(1)
	cl.Update()
	dup.Update()
	if got := cl.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
	c := cl.Clone()
	c.UpdateWithCount(10)
	if got := cl.Count(); got != 11 {
		t.Errorf("Count() = %d after updating a clone, want 11", got)
	}
	cl.Close()
	if got := dup.Count(); got != 12 {
		t.Errorf("Count() = %d after Close, want 12", got)
	}
}

func TestConcurrentWorkers(t *testing.T) {
	const (
		workers = 8
		updates = 100_000
	)
	testenv.SkipIfShort(t)
	cl, rec, _ := setupConcurrent(t, progress.DefaultThreshold)
	cl.Start("")
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		pl := cl.Duplicate()
		g.Go(func() error {
			defer pl.Close()
			for j := 0; j < updates; j++ {
				if j%2 == 0 {
					pl.Update()
				} else {
					pl.LightUpdate()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	cl.Done()
	if got := cl.Count(); got != workers*updates {
		t.Errorf("Count() = %d, want %d", got, workers*updates)
	}
	msgs := rec.Msgs()
	if last := msgs[len(msgs)-1]; !strings.Contains(last, "800,000 pumpkins") {
		t.Errorf("final line %q does not report 800,000 pumpkins", last)
	}
}

type panicSink struct{}

func (panicSink) Emit(string, progress.Level, string) { panic("sink failure") }

func recoverFrom(f func()) (v any) {
	defer func() { v = recover() }()
	f()
	return nil
}

func TestConcurrentPoisoned(t *testing.T) {
	cl, _, _ := setupConcurrent(t, 10)
	cl.Output(panicSink{})
	if v := recoverFrom(func() { cl.Start("boom") }); v != "sink failure" {
		t.Fatalf("Start panicked with %v, want the sink failure", v)
	}
	dup := cl.Duplicate()
	v := recoverFrom(func() { dup.Count() })
	if err, ok := v.(error); !ok || !errors.Is(err, progress.ErrPoisoned) {
		t.Errorf("Count() on a poisoned logger panicked with %v, want %v", v, progress.ErrPoisoned)
	}
}

func TestWrapNone(t *testing.T) {
	cl := progress.Wrap(progress.None())
	cl.Start("")
	cl.UpdateWithCount(1 << 20)
	cl.Done()
	if got := cl.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
	if got := cl.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}
