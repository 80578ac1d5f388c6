package mocks

import (
	"time"

	"github.com/NachoToast/SpotifyQuiz/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing. Timers never fire
// on their own; tests fire them explicitly.
type MockClock struct {
	CurrentTime time.Time

	timers []*MockTimer
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// AfterFunc records a pending timer and returns it without scheduling
// anything real
func (c *MockClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	t := &MockTimer{Duration: d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// Set sets the clock to the given time
func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
}

// Timers returns every timer scheduled so far, including stopped and fired
// ones, in scheduling order
func (c *MockClock) Timers() []*MockTimer {
	return c.timers
}

// LastTimer returns the most recently scheduled timer, or nil if none
func (c *MockClock) LastTimer() *MockTimer {
	if len(c.timers) == 0 {
		return nil
	}
	return c.timers[len(c.timers)-1]
}

// MockTimer is a pending callback recorded by MockClock
type MockTimer struct {
	Duration time.Duration

	fn      func()
	stopped bool
	fired   bool
}

// Stop cancels the timer, reporting whether it was still pending
func (t *MockTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Fire runs the callback if the timer is still pending, simulating the
// deadline elapsing
func (t *MockTimer) Fire() {
	if t.stopped || t.fired {
		return
	}
	t.fired = true
	t.fn()
}

// ForceFire runs the callback even if the timer was stopped. Tests use this
// to prove that a logically-superseded timer firing anyway has no effect.
func (t *MockTimer) ForceFire() {
	t.fired = true
	t.fn()
}

// Stopped reports whether Stop was called before the timer fired
func (t *MockTimer) Stopped() bool {
	return t.stopped
}

// Fired reports whether the callback has run
func (t *MockTimer) Fired() bool {
	return t.fired
}
