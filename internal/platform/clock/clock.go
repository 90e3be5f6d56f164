// Package clock provides an injectable source of wall-clock time so that
// time-dependent engine logic stays deterministic under test.
package clock

import "time"

// Clock supplies the current time. Production code uses New(); tests use
// NewFrozen() to pin the clock to a known instant.
type Clock interface {
	// Now returns the current time in UTC.
	Now() time.Time
}

// systemClock reads from the system clock.
type systemClock struct{}

// New returns a Clock backed by the system clock.
func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// FrozenClock is a Clock pinned to a fixed instant, adjustable via Advance
// and Set. It is intended for tests.
type FrozenClock struct {
	now time.Time
}

// NewFrozen returns a FrozenClock pinned to the given instant.
func NewFrozen(now time.Time) *FrozenClock {
	return &FrozenClock{now: now.UTC()}
}

func (c *FrozenClock) Now() time.Time {
	return c.now
}

// Advance moves the frozen clock forward by the given duration.
func (c *FrozenClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set pins the frozen clock to a new instant.
func (c *FrozenClock) Set(now time.Time) {
	c.now = now.UTC()
}
