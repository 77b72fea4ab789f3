package carrace

import (
	"sync/atomic"
	"testing"
	"time"
)

type countingNotifier struct {
	n atomic.Int64
}

func (c *countingNotifier) Notify() { c.n.Add(1) }

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestTimerTicks(t *testing.T) {
	target := &countingNotifier{}
	timer := NewTimer(2*time.Millisecond, target)

	if timer.Running() {
		t.Error("new timer should not be running")
	}

	timer.Start()
	if !timer.Running() {
		t.Error("timer should be running after Start")
	}
	waitFor(t, 2*time.Second, func() bool { return target.n.Load() >= 3 })

	timer.Stop()
	if timer.Running() {
		t.Error("timer should not be running after Stop")
	}

	after := target.n.Load()
	time.Sleep(20 * time.Millisecond)
	if got := target.n.Load(); got != after {
		t.Errorf("Notify called after Stop: %d -> %d", after, got)
	}
	if timer.Ticks() != uint64(after) {
		t.Errorf("Ticks() = %d, expected %d", timer.Ticks(), after)
	}
}

func TestTimerStopIsIdempotent(t *testing.T) {
	timer := NewTimer(time.Millisecond, &countingNotifier{})
	timer.Start()
	timer.Stop()
	timer.Stop()
	timer.Stop()
}

func TestTimerStopBeforeStart(t *testing.T) {
	target := &countingNotifier{}
	timer := NewTimer(time.Millisecond, target)
	timer.Stop()

	timer.Start()
	if timer.Running() {
		t.Error("Start after Stop should do nothing")
	}
	time.Sleep(10 * time.Millisecond)
	if target.n.Load() != 0 {
		t.Error("stopped timer should never notify")
	}
}

func TestTimerDoubleStart(t *testing.T) {
	target := &countingNotifier{}
	timer := NewTimer(time.Hour, target)
	timer.Start()
	timer.Start()
	defer timer.Stop()

	if !timer.Running() {
		t.Error("timer should be running")
	}
}

func TestTimerInterval(t *testing.T) {
	timer := NewTimer(120*time.Millisecond, &countingNotifier{})
	if timer.Interval() != 120*time.Millisecond {
		t.Errorf("Interval() = %v, expected 120ms", timer.Interval())
	}
}
