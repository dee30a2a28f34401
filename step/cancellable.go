package step

import "sync/atomic"

// Cancellable is a single-writer flag shared between the scheduler that
// issues it (ScheduleOnce, ScheduleRepeatedly) and the caller that holds
// it. Cancel is idempotent; IsCancelled is a plain,
// cheap read performed by the scheduler at each of the entry's visits.
//
// Cancellable carries no wake-up protocol of its own -- callers that need
// resumption on cancellation (future slots) layer that on top via their
// own terminal-state machinery.
type Cancellable struct {
	cancelled *atomic.Bool
}

// NewCancellable returns a fresh, not-yet-cancelled token.
func NewCancellable() Cancellable {
	return Cancellable{cancelled: &atomic.Bool{}}
}

// Cancel marks the token cancelled. Calling it more than once has no
// further effect.
func (c Cancellable) Cancel() {
	c.cancelled.Store(true)
}

// IsCancelled reports whether Cancel has been called.
func (c Cancellable) IsCancelled() bool {
	return c.cancelled.Load()
}
