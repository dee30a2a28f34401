// Package step implements a deterministic, step-driven execution runtime
// for actor-style workloads. It replaces wall-clock time, OS threads, and
// preemption with explicit, externally-driven progress: Step delivers
// exactly one message, AdvanceTime fires exactly the timers that are due.
//
// The package owns no actor model of its own -- no behaviors, no actor
// references, no supervision. It exposes the primitives (mailboxes,
// future slots, a virtual clock, and suspendable execution contexts) that
// an actor layer built on top can drive one observable unit of work at a
// time, which makes test suites built against it fully reproducible.
package step
