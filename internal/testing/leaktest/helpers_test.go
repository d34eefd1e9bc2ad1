package leaktest

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recordingTB captures Errorf calls instead of failing the test
type recordingTB struct {
	testing.TB
	mu     sync.Mutex
	errors []string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func TestGoroutineChecker_Clean(t *testing.T) {
	checker := NewGoroutineChecker(t)
	checker.Check(0)
}

func TestGoroutineChecker_WaitsForExit(t *testing.T) {
	checker := NewGoroutineChecker(t)

	go func() {
		time.Sleep(50 * time.Millisecond)
	}()

	checker.Check(0)
}

func TestGoroutineChecker_ReportsLeak(t *testing.T) {
	rec := &recordingTB{}
	checker := NewGoroutineChecker(rec)
	checker.timeout = 50 * time.Millisecond

	stop := make(chan struct{})
	defer close(stop)
	go func() { <-stop }()

	checker.Check(0)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if assert.Len(t, rec.errors, 1) {
		assert.Contains(t, rec.errors[0], "goroutine leak")
		assert.Contains(t, rec.errors[0], "goroutine ")
	}
}

func TestGoroutineChecker_Tolerance(t *testing.T) {
	rec := &recordingTB{}
	checker := NewGoroutineChecker(rec)
	checker.timeout = 50 * time.Millisecond

	stop := make(chan struct{})
	defer close(stop)
	go func() { <-stop }()

	checker.Check(1)

	assert.Empty(t, rec.errors)
}
