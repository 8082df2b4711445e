package debounce_test

import (
	"sync/atomic"
	"testing"
	"time"

	"inkwell/internal/platform/debounce"
)

func TestTriggerCoalesces(t *testing.T) {
	t.Parallel()
	var runs atomic.Int32
	d := debounce.New(30 * time.Millisecond)
	for i := 0; i < 5; i++ {
		d.Trigger(func() { runs.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(80 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Fatalf("expected one coalesced run, got %d", got)
	}
}

func TestCancelDropsPendingRun(t *testing.T) {
	t.Parallel()
	var runs atomic.Int32
	d := debounce.New(20 * time.Millisecond)
	d.Trigger(func() { runs.Add(1) })
	if !d.Pending() {
		t.Fatalf("run should be pending after trigger")
	}
	d.Cancel()
	if d.Pending() {
		t.Fatalf("run should not be pending after cancel")
	}
	time.Sleep(60 * time.Millisecond)
	if got := runs.Load(); got != 0 {
		t.Fatalf("cancelled run should not execute, got %d", got)
	}
}

func TestRetriggerAfterRun(t *testing.T) {
	t.Parallel()
	var runs atomic.Int32
	d := debounce.New(10 * time.Millisecond)
	d.Trigger(func() { runs.Add(1) })
	time.Sleep(40 * time.Millisecond)
	d.Trigger(func() { runs.Add(1) })
	time.Sleep(40 * time.Millisecond)
	if got := runs.Load(); got != 2 {
		t.Fatalf("expected two separate runs, got %d", got)
	}
}
