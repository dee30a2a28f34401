package step

import (
	"fmt"
	"sync"
	"time"
)

// DefaultClockStart is the instant a freshly constructed VirtualClock
// reports before anything advances it.
var DefaultClockStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// VirtualClock is a monotonic clock whose only source of advance is an
// explicit call to Advance or Set. Nothing in this package ever reads the
// OS clock; a test fully controls the passage of time by calling Advance.
//
// VirtualClock truncates to microsecond precision on every mutation, so
// Now never returns a sub-microsecond remainder regardless of the
// duration it was advanced by.
type VirtualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewVirtualClock constructs a VirtualClock starting at DefaultClockStart.
func NewVirtualClock() *VirtualClock {
	return &VirtualClock{now: DefaultClockStart.Truncate(time.Microsecond)}
}

// Now returns the current virtual instant.
func (c *VirtualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.now
}

// Advance moves the clock forward by d. d must be non-negative; a
// negative duration is a programmer error and panics rather than being
// silently clamped to zero.
func (c *VirtualClock) Advance(d time.Duration) {
	if d < 0 {
		panic(fmt.Sprintf("step: VirtualClock.Advance called with negative duration %s", d))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d).Truncate(time.Microsecond)
}

// Set pins the clock to t unconditionally, including backwards in time.
// It exists for fixture setup (e.g. pinning a scenario to a specific
// instant before the scenario's operations begin) and should not be
// called once a scenario is under way.
func (c *VirtualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = t.Truncate(time.Microsecond)
}
