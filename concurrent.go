// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package progress

import (
	"errors"
	"math"
	"sync"
	"time"
)

// DefaultThreshold is the default number of updates a ConcurrentLogger
// accumulates before passing them to the shared logger.
const DefaultThreshold = 1 << 15

// ConcurrentLightUpdateMask controls how often
// [ConcurrentLogger.LightUpdate] compares its local count with the
// threshold. It is smaller than LightUpdateMask because updates are
// further delayed by the threshold.
const ConcurrentLightUpdateMask = 1<<10 - 1

// ErrPoisoned is the panic value of operations on a shared logger after
// a panic left it in an unknown state.
var ErrPoisoned = errors.New("progress: shared logger poisoned by an earlier panic")

// shared is a logger protected by a mutex.
type shared struct {
	mu       sync.Mutex
	pl       ProgressLog
	poisoned bool
}

// do calls f with the logger while holding the lock. If f panics the
// logger is marked as poisoned, and every later call panics with
// ErrPoisoned.
func (s *shared) do(f func(pl ProgressLog)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.poisoned {
		panic(ErrPoisoned)
	}
	ok := false
	defer func() {
		if !ok {
			s.poisoned = true
		}
	}()
	f(s.pl)
	ok = true
}

// A ConcurrentLogger lets several goroutines report progress to one
// shared logger.
//
// Each goroutine must use its own ConcurrentLogger, obtained with
// Duplicate. Update and UpdateWithCount accumulate increments locally
// and take the lock of the shared logger only when the local count
// reaches the threshold. Buffered increments are passed on by Flush,
// which Close calls, so every ConcurrentLogger must be closed when its
// goroutine is done with it:
//
//	cpl := progress.NewConcurrent()
//	cpl.ItemName("pumpkin")
//	cpl.Start("Smashing pumpkins...")
//	var g errgroup.Group
//	for _, batch := range batches {
//		pl := cpl.Duplicate()
//		g.Go(func() error {
//			defer pl.Close()
//			for range batch {
//				pl.Update()
//			}
//			return nil
//		})
//	}
//	g.Wait()
//	cpl.Done()
type ConcurrentLogger struct {
	inner     *shared
	local     uint32
	threshold uint32
}

var _ ProgressLog = (*ConcurrentLogger)(nil)

// NewConcurrent returns a ConcurrentLogger wrapping a new [Logger], with
// the default threshold.
func NewConcurrent() *ConcurrentLogger {
	return WrapWithThreshold(New(), DefaultThreshold)
}

// NewConcurrentWithThreshold returns a ConcurrentLogger wrapping a new
// [Logger], with the given threshold.
func NewConcurrentWithThreshold(threshold uint32) *ConcurrentLogger {
	return WrapWithThreshold(New(), threshold)
}

// Wrap returns a ConcurrentLogger sharing pl, with the default
// threshold. pl must not be used directly afterwards.
func Wrap(pl ProgressLog) *ConcurrentLogger {
	return WrapWithThreshold(pl, DefaultThreshold)
}

// WrapWithThreshold returns a ConcurrentLogger sharing pl, with the
// given threshold.
func WrapWithThreshold(pl ProgressLog, threshold uint32) *ConcurrentLogger {
	return &ConcurrentLogger{
		inner:     &shared{pl: pl},
		threshold: threshold,
	}
}

// Threshold sets the threshold of cl. ConcurrentLoggers sharing a logger
// have independent thresholds.
func (cl *ConcurrentLogger) Threshold(threshold uint32) *ConcurrentLogger {
	cl.threshold = threshold
	return cl
}

// Duplicate returns a ConcurrentLogger sharing the logger of cl, with
// the same threshold and no buffered updates.
func (cl *ConcurrentLogger) Duplicate() *ConcurrentLogger {
	return &ConcurrentLogger{
		inner:     cl.inner,
		threshold: cl.threshold,
	}
}

// Clone is Duplicate. The result shares the logger of cl.
func (cl *ConcurrentLogger) Clone() ProgressLog {
	return cl.Duplicate()
}

// Flush passes the buffered updates of cl to the shared logger.
func (cl *ConcurrentLogger) Flush() {
	if cl.local == 0 {
		return
	}
	local := uint64(cl.local)
	cl.inner.do(func(pl ProgressLog) { pl.UpdateWithCount(local) })
	cl.local = 0
}

// Close flushes cl. It always returns nil.
func (cl *ConcurrentLogger) Close() error {
	cl.Flush()
	return nil
}

func (cl *ConcurrentLogger) DisplayMemory(display bool) ProgressLog {
	cl.inner.do(func(pl ProgressLog) { pl.DisplayMemory(display) })
	return cl
}

func (cl *ConcurrentLogger) ItemName(name string) ProgressLog {
	cl.inner.do(func(pl ProgressLog) { pl.ItemName(name) })
	return cl
}

func (cl *ConcurrentLogger) LogInterval(d time.Duration) ProgressLog {
	cl.inner.do(func(pl ProgressLog) { pl.LogInterval(d) })
	return cl
}

func (cl *ConcurrentLogger) ExpectedUpdates(n uint64) ProgressLog {
	cl.inner.do(func(pl ProgressLog) { pl.ExpectedUpdates(n) })
	return cl
}

func (cl *ConcurrentLogger) TimeUnit(u TimeUnit) ProgressLog {
	cl.inner.do(func(pl ProgressLog) { pl.TimeUnit(u) })
	return cl
}

func (cl *ConcurrentLogger) LocalSpeed(local bool) ProgressLog {
	cl.inner.do(func(pl ProgressLog) { pl.LocalSpeed(local) })
	return cl
}

func (cl *ConcurrentLogger) LogTarget(target string) ProgressLog {
	cl.inner.do(func(pl ProgressLog) { pl.LogTarget(target) })
	return cl
}

func (cl *ConcurrentLogger) LogLevel(level Level) ProgressLog {
	cl.inner.do(func(pl ProgressLog) { pl.LogLevel(level) })
	return cl
}

func (cl *ConcurrentLogger) Output(s Sink) ProgressLog {
	cl.inner.do(func(pl ProgressLog) { pl.Output(s) })
	return cl
}

func (cl *ConcurrentLogger) Start(msg string) {
	cl.inner.do(func(pl ProgressLog) { pl.Start(msg) })
	cl.local = 0
}

func (cl *ConcurrentLogger) Update() {
	cl.UpdateWithCount(1)
}

func (cl *ConcurrentLogger) UpdateWithCount(n uint64) {
	local := uint64(cl.local)
	total := local + n
	switch {
	case total < n:
		// The sum overflows: pass it on in two steps.
		cl.inner.do(func(pl ProgressLog) {
			pl.UpdateWithCount(local)
			pl.UpdateWithCount(n)
		})
		cl.local = 0
	case total >= uint64(cl.threshold):
		cl.inner.do(func(pl ProgressLog) { pl.UpdateWithCount(total) })
		cl.local = 0
	default:
		// total < threshold, so it fits.
		cl.local = uint32(total)
	}
}

// LightUpdate increments the local count, comparing it with the
// threshold only when it is a multiple of ConcurrentLightUpdateMask+1.
func (cl *ConcurrentLogger) LightUpdate() {
	cl.local++
	if cl.local&ConcurrentLightUpdateMask == 0 && cl.local >= cl.threshold || cl.local == math.MaxUint32 {
		cl.Flush()
	}
}

// UpdateAndDisplay passes the buffered updates and one more to the shared
// logger and makes it emit a status line.
func (cl *ConcurrentLogger) UpdateAndDisplay() {
	local := uint64(cl.local)
	cl.inner.do(func(pl ProgressLog) {
		if local > 0 {
			pl.UpdateWithCount(local)
		}
		pl.UpdateAndDisplay()
	})
	cl.local = 0
}

// Stop flushes cl and stops the shared logger.
func (cl *ConcurrentLogger) Stop() {
	local := uint64(cl.local)
	cl.inner.do(func(pl ProgressLog) {
		if local > 0 {
			pl.UpdateWithCount(local)
		}
		pl.Stop()
	})
	cl.local = 0
}

// Done flushes cl and completes the shared logger.
func (cl *ConcurrentLogger) Done() {
	local := uint64(cl.local)
	cl.inner.do(func(pl ProgressLog) {
		if local > 0 {
			pl.UpdateWithCount(local)
		}
		pl.Done()
	})
	cl.local = 0
}

// DoneWithCount sets the count of the shared logger, discarding the
// updates buffered by cl, and completes it.
func (cl *ConcurrentLogger) DoneWithCount(n uint64) {
	cl.inner.do(func(pl ProgressLog) { pl.DoneWithCount(n) })
	cl.local = 0
}

// Count returns the count of the shared logger. Updates still buffered
// by ConcurrentLoggers are not included.
func (cl *ConcurrentLogger) Count() (n uint64) {
	cl.inner.do(func(pl ProgressLog) { n = pl.Count() })
	return n
}

func (cl *ConcurrentLogger) Expected() (n uint64, ok bool) {
	cl.inner.do(func(pl ProgressLog) { n, ok = pl.Expected() })
	return n, ok
}

func (cl *ConcurrentLogger) Elapsed() (d time.Duration, ok bool) {
	cl.inner.do(func(pl ProgressLog) { d, ok = pl.Elapsed() })
	return d, ok
}

func (cl *ConcurrentLogger) Refresh() {
	cl.inner.do(func(pl ProgressLog) { pl.Refresh() })
}

func (cl *ConcurrentLogger) Tracef(format string, args ...any) {
	cl.inner.do(func(pl ProgressLog) { pl.Tracef(format, args...) })
}

func (cl *ConcurrentLogger) Debugf(format string, args ...any) {
	cl.inner.do(func(pl ProgressLog) { pl.Debugf(format, args...) })
}

func (cl *ConcurrentLogger) Infof(format string, args ...any) {
	cl.inner.do(func(pl ProgressLog) { pl.Infof(format, args...) })
}

func (cl *ConcurrentLogger) Warnf(format string, args ...any) {
	cl.inner.do(func(pl ProgressLog) { pl.Warnf(format, args...) })
}

func (cl *ConcurrentLogger) Errorf(format string, args ...any) {
	cl.inner.do(func(pl ProgressLog) { pl.Errorf(format, args...) })
}

// String renders the status line of the shared logger.
func (cl *ConcurrentLogger) String() (s string) {
	cl.inner.do(func(pl ProgressLog) { s = pl.String() })
	return s
}
