package step

import (
	"errors"
	"fmt"
	"time"
)

// ErrMailboxClosed is returned by Enqueue against a closed mailbox, and by
// DequeueBlocking when a closed mailbox has no remaining envelopes.
var ErrMailboxClosed = errors.New("step: mailbox closed")

// ErrFutureAlreadySettled is returned when Resolve, Fail, or Cancel is
// called on a FutureSlot that has already reached a terminal state.
var ErrFutureAlreadySettled = errors.New("step: future already settled")

// MailboxOverflowError is returned by Enqueue when a bounded mailbox is
// full and its OverflowStrategy is OverflowThrow.
type MailboxOverflowError struct {
	Path     string
	Capacity int
	Strategy OverflowStrategy
}

func (e *MailboxOverflowError) Error() string {
	return fmt.Sprintf(
		"step: mailbox %q full (capacity=%d, strategy=%s)",
		e.Path, e.Capacity, e.Strategy,
	)
}

// AskTimeoutError is delivered through a FutureSlot's Fail path when the
// slot's associated timeout timer fires before the slot was settled.
type AskTimeoutError struct {
	Path    string
	Timeout time.Duration
}

func (e *AskTimeoutError) Error() string {
	return fmt.Sprintf(
		"step: ask timed out after %s (path=%q)", e.Timeout, e.Path,
	)
}

// ErrFutureCancelled is returned from Await when Cancel won the race to
// settle a FutureSlot.
var ErrFutureCancelled = errors.New("step: future cancelled")

// ClosedMailboxPath returns the mailbox path associated with err, if err
// wraps ErrMailboxClosed in a form carrying one. It is a convenience for
// callers that want to log which mailbox closed without a type switch.
func ClosedMailboxPath(err error) (string, bool) {
	var closed *closedMailboxError
	if errors.As(err, &closed) {
		return closed.path, true
	}
	return "", false
}

type closedMailboxError struct {
	path string
}

func (e *closedMailboxError) Error() string {
	return fmt.Sprintf("step: mailbox %q closed", e.path)
}

func (e *closedMailboxError) Unwrap() error {
	return ErrMailboxClosed
}
