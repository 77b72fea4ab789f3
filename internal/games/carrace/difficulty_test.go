package carrace

import (
	"testing"
	"time"
)

func TestSpeedScheduleDue(t *testing.T) {
	clock := newMockClock()
	s := NewSpeedSchedule(10*time.Second, 0.25)
	s.Reset(clock.Now())

	clock.Advance(10 * time.Second)
	if s.Due(clock.Now()) {
		t.Error("exactly one interval should not be due")
	}

	clock.Advance(time.Millisecond)
	if !s.Due(clock.Now()) {
		t.Error("more than one interval should be due")
	}
	if s.Due(clock.Now()) {
		t.Error("Due should restart the interval")
	}

	clock.Advance(5 * time.Second)
	if s.Due(clock.Now()) {
		t.Error("half an interval after an increase should not be due")
	}
}

func TestSpeedScheduleLongGap(t *testing.T) {
	clock := newMockClock()
	s := NewSpeedSchedule(time.Second, 1)
	s.Reset(clock.Now())

	// A long stall yields a single increase, not one per missed interval
	clock.Advance(time.Minute)
	due := 0
	for i := 0; i < 5; i++ {
		if s.Due(clock.Now()) {
			due++
		}
	}
	if due != 1 {
		t.Errorf("expected 1 increase after a stall, got %d", due)
	}
}

func TestSpeedScheduleEnabled(t *testing.T) {
	tests := []struct {
		increment float64
		expected  bool
	}{
		{0.25, true},
		{0, false},
	}

	for _, tc := range tests {
		s := NewSpeedSchedule(time.Second, tc.increment)
		if s.Enabled() != tc.expected {
			t.Errorf("Enabled() with increment %v = %v, expected %v", tc.increment, s.Enabled(), tc.expected)
		}
		if s.Increment() != tc.increment {
			t.Errorf("Increment() = %v, expected %v", s.Increment(), tc.increment)
		}
	}
}
