// Package leaktest reports goroutines left running by a test.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleTimeout = 2 * time.Second
	pollInterval  = 10 * time.Millisecond
	stackBufBytes = 64 << 10
)

// GoroutineChecker compares the goroutine count against a baseline taken
// when the checker was created
type GoroutineChecker struct {
	t        testing.TB
	baseline int
	timeout  time.Duration
}

// NewGoroutineChecker records the current goroutine count as the baseline
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{
		t:        t,
		baseline: runtime.NumGoroutine(),
		timeout:  settleTimeout,
	}
}

// Check waits for the count to drop within tolerance of the baseline and
// fails the test with a stack dump if it does not.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	current, ok := settle(g.baseline+tolerance, g.timeout)
	if ok {
		return
	}

	buf := make([]byte, stackBufBytes)
	n := runtime.Stack(buf, true)
	g.t.Errorf("goroutine leak: baseline=%d now=%d tolerance=%d\n%s",
		g.baseline, current, tolerance, buf[:n])
}

// settle polls until at most limit goroutines remain or timeout passes
func settle(limit int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= limit {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(pollInterval)
	}
}
