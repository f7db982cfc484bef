// Package leaktest checks that session, scheduler and worker goroutines shut down.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// Settle timing for goroutine counts
const (
	settleDelay  = 10 * time.Millisecond
	pollInterval = 5 * time.Millisecond
	checkTimeout = 2 * time.Second
)

// GoroutineChecker helps detect goroutine leaks
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settleDelay)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check polls until the goroutine count drops back to within tolerance of
// the recorded count, and fails the test if it never does.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	after := waitFor(g.before+tolerance, checkTimeout)
	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails if it leaves goroutines behind
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// WaitForGoroutines waits until at most target goroutines run or fails after timeout
func WaitForGoroutines(t testing.TB, target int, timeout time.Duration) {
	t.Helper()

	if n := waitFor(target, timeout); n > target {
		t.Errorf("Timeout waiting for goroutines to complete: current=%d, target=%d", n, target)
	}
}

func waitFor(target int, timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target || time.Now().After(deadline) {
			return n
		}
		time.Sleep(pollInterval)
	}
}
