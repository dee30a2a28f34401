package scenario

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/nexus-actors/runtime-step/step"
)

// Event is one observed occurrence during a scenario run, timestamped
// against the runtime's virtual clock.
type Event struct {
	VirtualTime string
	Detail      string
}

// Trace is the ordered record of everything a scenario run observed.
type Trace struct {
	ScenarioName string
	Events       []Event
}

type envelope struct {
	correlationID string
	payload       string
}

// Run executes every directive in sc against a fresh step.StepRuntime
// and returns a Trace of what happened.
func Run(sc *Scenario) (*Trace, error) {
	rt := step.NewStepRuntime()
	trace := &Trace{ScenarioName: sc.Name}

	mailboxes := make(map[string]*step.Mailbox)
	record := func(format string, args ...any) {
		trace.Events = append(trace.Events, Event{
			VirtualTime: rt.Clock().Now().Format("15:04:05.000000"),
			Detail:      fmt.Sprintf(format, args...),
		})
	}

	for _, d := range sc.Directives {
		switch d.Kind {
		case KindSpawn:
			name, target := d.Name, d.Target
			mb := rt.CreateMailbox(step.DefaultMailboxConfig(name))
			mailboxes[name] = mb

			rt.Spawn(func(rc *step.RunContext) {
				for {
					env, err := mb.DequeueBlocking(rc, 0)
					if err != nil {
						return
					}

					e := env.(envelope)
					record("%s received %q (correlation=%s)",
						name, e.payload, e.correlationID)

					if target == "" {
						continue
					}

					targetBox, ok := mailboxes[target]
					if !ok {
						record("%s could not forward to unknown actor %q",
							name, target)
						continue
					}

					if _, err := targetBox.Enqueue(e); err != nil {
						record("%s failed to forward to %s: %v",
							name, target, err)
						continue
					}

					record("%s forwarded %q to %s (correlation=%s)",
						name, e.payload, target, e.correlationID)
				}
			})

			record("spawned %s", name)

		case KindTell:
			mb, ok := mailboxes[d.Target]
			if !ok {
				return trace, fmt.Errorf("scenario: tell targets unknown actor %q", d.Target)
			}

			correlationID := uuid.NewString()
			_, err := mb.Enqueue(envelope{correlationID: correlationID, payload: d.Payload})
			if err != nil {
				return trace, fmt.Errorf("scenario: tell %s: %w", d.Target, err)
			}

			record("told %s %q (correlation=%s)", d.Target, d.Payload, correlationID)

		case KindStep:
			delivered := rt.Step()
			record("step delivered=%t, pending=%d", delivered, rt.PendingMessageCount())

		case KindDrain:
			n := rt.Drain()
			record("drained %d steps, idle=%t", n, rt.IsIdle())

		case KindAdvance:
			d2, err := parseDuration(d.Duration)
			if err != nil {
				return trace, fmt.Errorf("scenario: advance: %w", err)
			}

			rt.AdvanceTime(d2)
			record("advanced clock by %s", d2)

		default:
			return trace, fmt.Errorf("scenario: unknown directive kind %q", d.Kind)
		}
	}

	return trace, nil
}
