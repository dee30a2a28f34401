package step

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// resumable is satisfied by anything Step's scan phase can deliver work
// to: a Mailbox with a queued envelope and a parked waiter, or a
// FutureSlot that has settled but not yet woken its awaiter. Both are
// registered with the runtime in creation order, and that combined order
// is what Step's scan phase walks.
type resumable interface {
	hasDeliverableWork() bool
	resumeOnce()
}

// Runtime is the subset of the step runtime's surface that mirrors the
// production, real-time runtime's interface -- useful for code written
// against an abstract runtime that should work unmodified against either
// implementation.
type Runtime interface {
	Name() string
	CreateMailbox(cfg MailboxConfig) *Mailbox
	Spawn(loop ActorLoop) *ExecContext
	ScheduleOnce(delay time.Duration, cb func()) Cancellable
	ScheduleRepeatedly(initialDelay, interval time.Duration, cb func()) Cancellable
	Yield()
	Sleep(d time.Duration)
	Run()
	Shutdown(timeout time.Duration)
	IsRunning() bool
}

// StepController is the testing extension only the step runtime offers:
// single-stepping, explicit time control, and inspection.
type StepController interface {
	Step() bool
	Drain() int
	AdvanceTime(d time.Duration)
	Clock() *VirtualClock
	PendingMessageCount() int
	IsIdle() bool
}

// StepRuntimeConfig configures a StepRuntime at construction time. Logger
// is an fn.Option rather than a bare pointer, following the same
// optional-field idiom as the collaborator actor layer's
// ActorConfig.CleanupTimeout: an explicit "was this set" distinct from a
// nil value, resolved to a concrete default at construction time via
// UnwrapOr.
type StepRuntimeConfig struct {
	Logger fn.Option[*slog.Logger]
}

// DefaultStepRuntimeConfig returns a config with no logger override; the
// runtime falls back to slog.Default() at construction time.
func DefaultStepRuntimeConfig() StepRuntimeConfig {
	return StepRuntimeConfig{}
}

// RuntimeOption customizes a StepRuntimeConfig.
type RuntimeOption func(*StepRuntimeConfig)

// WithLogger overrides the runtime's logger.
func WithLogger(logger *slog.Logger) RuntimeOption {
	return func(cfg *StepRuntimeConfig) {
		cfg.Logger = fn.Some(logger)
	}
}

// StepRuntime is a deterministic, step-driven execution runtime. It owns
// the virtual clock, every spawned ExecContext, every Mailbox, and every
// FutureSlot created against it, and is the sole authority on when any
// of them makes progress.
type StepRuntime struct {
	logger *slog.Logger
	clock  *VirtualClock

	mu         sync.Mutex
	contexts   []*ExecContext
	mailboxes  []*Mailbox
	resumables []resumable
	nextCtxID  uint64

	timersMu sync.Mutex
	timers   []*timerEntry
	timerSeq uint64

	running atomic.Bool
}

// NewStepRuntime constructs a StepRuntime, applying opts over
// DefaultStepRuntimeConfig.
func NewStepRuntime(opts ...RuntimeOption) *StepRuntime {
	cfg := DefaultStepRuntimeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &StepRuntime{
		logger: cfg.Logger.UnwrapOr(slog.Default()),
		clock:  NewVirtualClock(),
	}
}

// Name identifies this Runtime implementation.
func (rt *StepRuntime) Name() string {
	return "step"
}

// Clock returns the runtime's virtual clock.
func (rt *StepRuntime) Clock() *VirtualClock {
	return rt.clock
}

// IsRunning reports whether Run is currently draining the runtime.
func (rt *StepRuntime) IsRunning() bool {
	return rt.running.Load()
}

// CreateMailbox constructs and registers a Mailbox.
func (rt *StepRuntime) CreateMailbox(cfg MailboxConfig) *Mailbox {
	if cfg.Logger == nil {
		cfg.Logger = rt.logger
	}

	mb := NewMailbox(cfg)

	rt.mu.Lock()
	rt.mailboxes = append(rt.mailboxes, mb)
	rt.resumables = append(rt.resumables, mb)
	rt.mu.Unlock()

	return mb
}

func (rt *StepRuntime) registerResumable(r resumable) {
	rt.mu.Lock()
	rt.resumables = append(rt.resumables, r)
	rt.mu.Unlock()
}

// Spawn registers loop as a new ExecContext. The context is not started
// until the next Step call's start phase.
func (rt *StepRuntime) Spawn(loop ActorLoop) *ExecContext {
	rt.mu.Lock()
	rt.nextCtxID++
	id := fmt.Sprintf("step-%d", rt.nextCtxID)
	ctx := newExecContext(id, loop, rt.logger)
	rt.contexts = append(rt.contexts, ctx)
	rt.mu.Unlock()

	return ctx
}

// Yield is a no-op: the step runtime has no contention to yield for.
func (rt *StepRuntime) Yield() {
	rt.logger.Debug("Yield called on step runtime; no-op")
}

// Sleep is intentionally inert: it logs a warning and returns
// immediately without advancing the virtual clock -- time only passes
// via AdvanceTime, and this runtime will not fake that for you.
func (rt *StepRuntime) Sleep(d time.Duration) {
	rt.logger.Warn("Sleep called on step runtime; no-op, virtual time only advances via AdvanceTime",
		"requested", d)
}

// Run drains the runtime to idleness, marking IsRunning true for the
// duration for interface parity with the production runtime.
func (rt *StepRuntime) Run() {
	rt.running.Store(true)
	defer rt.running.Store(false)

	rt.Drain()
}

// Shutdown closes every mailbox, which wakes any parked waiters so they
// observe ErrMailboxClosed and terminate, then discards terminated
// contexts. timeout is accepted for interface parity and ignored.
func (rt *StepRuntime) Shutdown(timeout time.Duration) {
	rt.running.Store(false)

	rt.mu.Lock()
	mailboxes := append([]*Mailbox{}, rt.mailboxes...)
	rt.mu.Unlock()

	for _, mb := range mailboxes {
		mb.Close()
	}

	rt.pruneTerminated()
}

// Step performs exactly one unit of externally visible progress: it
// starts any not-yet-started contexts, then resumes the first resumable
// (in creation order) that has deliverable work, delivering exactly one
// envelope or future settlement. It returns false if nothing was
// deliverable.
func (rt *StepRuntime) Step() bool {
	rt.mu.Lock()
	contexts := append([]*ExecContext{}, rt.contexts...)
	rt.mu.Unlock()

	for _, c := range contexts {
		if c.Status() == StatusNotStarted {
			c.start()
		}
	}

	rt.pruneTerminated()
	rt.pruneExhaustedResumables()

	rt.mu.Lock()
	resumables := append([]resumable{}, rt.resumables...)
	rt.mu.Unlock()

	for _, r := range resumables {
		if r.hasDeliverableWork() {
			r.resumeOnce()
			rt.pruneTerminated()
			return true
		}
	}

	return false
}

// Drain calls Step until it returns false, returning the number of
// steps taken.
func (rt *StepRuntime) Drain() int {
	n := 0
	for rt.Step() {
		n++
	}

	return n
}

// AdvanceTime moves the virtual clock forward by d and synchronously
// fires every timer that matures as a result, in insertion order. It
// does not drain the runtime afterwards -- call Step or Drain to process
// whatever the fired timers enqueued.
func (rt *StepRuntime) AdvanceTime(d time.Duration) {
	rt.fireDueTimers(d)
}

// PendingMessageCount sums the queue length of every mailbox created
// against this runtime.
func (rt *StepRuntime) PendingMessageCount() int {
	rt.mu.Lock()
	mailboxes := append([]*Mailbox{}, rt.mailboxes...)
	rt.mu.Unlock()

	total := 0
	for _, mb := range mailboxes {
		total += mb.Count()
	}

	return total
}

// IsIdle reports whether no mailbox has both a queued envelope and a
// parked waiter, and no future slot has settled without yet waking its
// awaiter. Contexts that no Step has started yet are not considered:
// Step starts them first, so it can still return true right after
// IsIdle reported true.
func (rt *StepRuntime) IsIdle() bool {
	rt.mu.Lock()
	resumables := append([]resumable{}, rt.resumables...)
	rt.mu.Unlock()

	for _, r := range resumables {
		if r.hasDeliverableWork() {
			return false
		}
	}

	return true
}

func (rt *StepRuntime) pruneTerminated() {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	live := rt.contexts[:0:0]
	for _, c := range rt.contexts {
		if !c.IsTerminated() {
			live = append(live, c)
		}
	}
	rt.contexts = live
}

// exhaustibleResumable is satisfied by a resumable that can report once
// it will never again have deliverable work, so Step can stop scanning
// it. Mailboxes are long-lived and never report this; FutureSlot does,
// once settled with no waiter left to wake, since a later Await against
// an already-settled slot takes its immediate fast path instead of
// registering as a waiter.
type exhaustibleResumable interface {
	exhausted() bool
}

// pruneExhaustedResumables drops resumables (in practice, settled future
// slots) that will never have deliverable work again, keeping Step's and
// IsIdle's per-call scan bounded by currently-live work rather than
// growing with every ask ever made against this runtime.
func (rt *StepRuntime) pruneExhaustedResumables() {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	live := rt.resumables[:0:0]
	for _, r := range rt.resumables {
		if eh, ok := r.(exhaustibleResumable); ok && eh.exhausted() {
			continue
		}
		live = append(live, r)
	}
	rt.resumables = live
}

var (
	_ Runtime        = (*StepRuntime)(nil)
	_ StepController = (*StepRuntime)(nil)
)
