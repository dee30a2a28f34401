package step

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScheduleOnceFiresExactlyOnce(t *testing.T) {
	t.Parallel()

	rt := NewStepRuntime()
	count := 0
	rt.ScheduleOnce(time.Second, func() { count++ })

	rt.AdvanceTime(500 * time.Millisecond)
	require.Equal(t, 0, count)

	rt.AdvanceTime(600 * time.Millisecond)
	require.Equal(t, 1, count)

	rt.AdvanceTime(10 * time.Second)
	require.Equal(t, 1, count)
}

func TestScheduleOnceCancelledNeverFires(t *testing.T) {
	t.Parallel()

	rt := NewStepRuntime()
	fired := false
	cancellable := rt.ScheduleOnce(time.Second, func() { fired = true })
	cancellable.Cancel()

	rt.AdvanceTime(10 * time.Second)
	require.False(t, fired)
}

func TestScheduleRepeatedlyCadenceOverBurstyAdvances(t *testing.T) {
	t.Parallel()

	rt := NewStepRuntime()
	count := 0
	rt.ScheduleRepeatedly(time.Second, time.Second, func() { count++ })

	rt.AdvanceTime(500 * time.Millisecond)
	require.Equal(t, 0, count)

	rt.AdvanceTime(600 * time.Millisecond)
	require.Equal(t, 1, count)

	rt.AdvanceTime(time.Second)
	require.Equal(t, 2, count)

	rt.AdvanceTime(time.Second)
	require.Equal(t, 3, count)
}

func TestScheduleRepeatedlyCancelStopsFutureFirings(t *testing.T) {
	t.Parallel()

	rt := NewStepRuntime()
	count := 0
	cancellable := rt.ScheduleRepeatedly(time.Second, time.Second, func() { count++ })

	rt.AdvanceTime(time.Second)
	require.Equal(t, 1, count)

	cancellable.Cancel()
	rt.AdvanceTime(5 * time.Second)
	require.Equal(t, 1, count)
}

func TestTimersFireInInsertionOrderWhenSimultaneouslyDue(t *testing.T) {
	t.Parallel()

	rt := NewStepRuntime()
	var order []int
	rt.ScheduleOnce(time.Second, func() { order = append(order, 1) })
	rt.ScheduleOnce(time.Second, func() { order = append(order, 2) })
	rt.ScheduleOnce(time.Second, func() { order = append(order, 3) })

	rt.AdvanceTime(time.Second)
	require.Equal(t, []int{1, 2, 3}, order)
}

func TestAdvanceTimeDoesNotAutoDrainEnqueuedWork(t *testing.T) {
	t.Parallel()

	rt := NewStepRuntime()
	mb := rt.CreateMailbox(DefaultMailboxConfig("test/timer-enqueue"))
	rt.ScheduleOnce(time.Second, func() {
		_, _ = mb.Enqueue("tick")
	})

	rt.AdvanceTime(time.Second)
	require.Equal(t, 1, rt.PendingMessageCount())
}

func TestPanickingTimerCallbackIsRecoveredAndLogged(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	rt := NewStepRuntime(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	ranAfter := false
	rt.ScheduleOnce(time.Second, func() { panic("boom") })
	rt.ScheduleOnce(time.Second, func() { ranAfter = true })

	require.NotPanics(t, func() {
		rt.AdvanceTime(time.Second)
	})
	require.True(t, ranAfter)
	require.Contains(t, logs.String(), "timer callback panicked")
}

func TestScheduleRepeatedlyRejectsNonPositiveInterval(t *testing.T) {
	t.Parallel()

	rt := NewStepRuntime()

	require.Panics(t, func() {
		rt.ScheduleRepeatedly(time.Second, 0, func() {})
	})
}
