package app

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerOnlyLastCallRuns(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var ran int32
	var got atomic.Value

	for _, term := range []string{"b", "bl", "blo", "bloodbath"} {
		term := term
		d.Trigger(func() {
			atomic.AddInt32(&ran, 1)
			got.Store(term)
		})
	}

	time.Sleep(150 * time.Millisecond)
	if n := atomic.LoadInt32(&ran); n != 1 {
		t.Fatalf("expected exactly one invocation, got %d", n)
	}
	if got.Load() != "bloodbath" {
		t.Fatalf("expected last value to win, got %v", got.Load())
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var ran int32
	d.Trigger(func() { atomic.AddInt32(&ran, 1) })
	d.Stop()
	time.Sleep(80 * time.Millisecond)
	if atomic.LoadInt32(&ran) != 0 {
		t.Fatalf("stopped debouncer must not fire")
	}
}

func TestThrottlerCoalesces(t *testing.T) {
	th := NewThrottler(50 * time.Millisecond)
	if !th.Allow() {
		t.Fatalf("first call must pass")
	}
	if th.Allow() {
		t.Fatalf("immediate second call must be dropped")
	}
	time.Sleep(70 * time.Millisecond)
	if !th.Allow() {
		t.Fatalf("call after interval must pass")
	}
}
