package carrace

import "time"

// Clock supplies wall time to the speed schedule.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// SpeedSchedule decides when obstacles speed up.
// Every time more than interval has passed since the last increase, the
// obstacle step grows by increment.
type SpeedSchedule struct {
	interval  time.Duration
	increment float64
	last      time.Time
}

// NewSpeedSchedule creates a schedule; Reset must be called before Due.
func NewSpeedSchedule(interval time.Duration, increment float64) *SpeedSchedule {
	return &SpeedSchedule{
		interval:  interval,
		increment: increment,
	}
}

// Reset restarts the interval at now.
func (s *SpeedSchedule) Reset(now time.Time) {
	s.last = now
}

// Due reports whether an increase is owed at now and, if so, restarts the interval.
func (s *SpeedSchedule) Due(now time.Time) bool {
	if now.Sub(s.last) <= s.interval {
		return false
	}
	s.last = now
	return true
}

// Enabled returns whether increases change anything.
func (s *SpeedSchedule) Enabled() bool {
	return s.increment > 0
}

// Increment returns the step size added per increase.
func (s *SpeedSchedule) Increment() float64 {
	return s.increment
}

// Interval returns the wall time between increases.
func (s *SpeedSchedule) Interval() time.Duration {
	return s.interval
}
