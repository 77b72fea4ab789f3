package carrace

import (
	"sync"
	"sync/atomic"
	"time"
)

// Notifier receives timer ticks.
type Notifier interface {
	Notify()
}

// Timer calls Notify on its target at a fixed interval from a background
// goroutine until stopped. A tick in progress always runs to completion;
// Stop takes effect before the next one.
type Timer struct {
	interval time.Duration
	target   Notifier

	running  atomic.Bool
	ticks    atomic.Uint64
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewTimer creates a stopped timer.
func NewTimer(interval time.Duration, target Notifier) *Timer {
	return &Timer{
		interval: interval,
		target:   target,
		stopChan: make(chan struct{}),
	}
}

// Start launches the tick goroutine. Calling Start on a running or stopped
// timer does nothing.
func (t *Timer) Start() {
	select {
	case <-t.stopChan:
		return
	default:
	}
	if t.running.CompareAndSwap(false, true) {
		t.wg.Add(1)
		go t.loop()
	}
}

// Stop halts the timer and waits for the goroutine to exit.
// Safe to call more than once and before Start.
func (t *Timer) Stop() {
	t.stopOnce.Do(func() {
		t.running.Store(false)
		close(t.stopChan)
	})
	t.wg.Wait()
}

// Running reports whether the tick goroutine is active.
func (t *Timer) Running() bool {
	return t.running.Load()
}

// Ticks returns how many times Notify has been called.
func (t *Timer) Ticks() uint64 {
	return t.ticks.Load()
}

// Interval returns the tick period.
func (t *Timer) Interval() time.Duration {
	return t.interval
}

func (t *Timer) loop() {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopChan:
			return
		case <-ticker.C:
			if !t.running.Load() {
				return
			}
			t.target.Notify()
			t.ticks.Add(1)
		}
	}
}
