package step

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFutureSlotResolveBeforeAwaitReturnsImmediately(t *testing.T) {
	t.Parallel()

	rt := NewStepRuntime()
	slot := CreateFutureSlot[int](rt, "test/early-resolve", 0)
	slot.Resolve(42)

	done := make(chan struct{})
	rt.Spawn(func(rc *RunContext) {
		v, err := slot.Await(rc)
		require.NoError(t, err)
		require.Equal(t, 42, v)
		close(done)
	})

	// Starting the context alone must be enough: Await saw the slot
	// already settled and never suspended.
	require.False(t, rt.Step())

	select {
	case <-done:
	default:
		t.Fatal("expected Await to return without suspending")
	}
}

func TestFutureSlotAwaitSuspendsUntilResolve(t *testing.T) {
	t.Parallel()

	rt := NewStepRuntime()
	slot := CreateFutureSlot[string](rt, "test/await", 0)

	resultCh := make(chan string, 1)
	rt.Spawn(func(rc *RunContext) {
		v, err := slot.Await(rc)
		require.NoError(t, err)
		resultCh <- v
	})

	require.False(t, rt.Step())

	slot.Resolve("done")

	require.True(t, rt.Step())
	require.Equal(t, "done", <-resultCh)
}

func TestFutureSlotSecondSettleIsIgnored(t *testing.T) {
	t.Parallel()

	rt := NewStepRuntime()
	slot := CreateFutureSlot[int](rt, "test/double-settle", 0)

	require.NoError(t, slot.Resolve(1))
	require.ErrorIs(t, slot.Resolve(2), ErrFutureAlreadySettled)
	require.ErrorIs(t, slot.Fail(require.AnError), ErrFutureAlreadySettled)
	require.ErrorIs(t, slot.Cancel(), ErrFutureAlreadySettled)

	require.True(t, slot.IsResolved())
}

func TestFutureSlotCancelRunsCallbacksInOrder(t *testing.T) {
	t.Parallel()

	rt := NewStepRuntime()
	slot := CreateFutureSlot[int](rt, "test/cancel", 0)

	var order []int
	slot.OnCancel(func() { order = append(order, 1) })
	slot.OnCancel(func() { order = append(order, 2) })

	require.NoError(t, slot.Cancel())

	require.Equal(t, []int{1, 2}, order)
}

func TestFutureSlotCancelAfterResolveDoesNotFireCallbacks(t *testing.T) {
	t.Parallel()

	rt := NewStepRuntime()
	slot := CreateFutureSlot[int](rt, "test/resolve-then-cancel", 0)

	fired := false
	slot.OnCancel(func() { fired = true })

	require.NoError(t, slot.Resolve(7))
	require.ErrorIs(t, slot.Cancel(), ErrFutureAlreadySettled)

	require.False(t, fired)
}

func TestFutureSlotTimeoutFailsWithAskTimeoutError(t *testing.T) {
	t.Parallel()

	rt := NewStepRuntime()
	slot := CreateFutureSlot[int](rt, "test/timeout", 5*time.Second)

	resultCh := make(chan error, 1)
	rt.Spawn(func(rc *RunContext) {
		_, err := slot.Await(rc)
		resultCh <- err
	})

	require.False(t, rt.Step())

	rt.AdvanceTime(5 * time.Second)
	require.True(t, rt.Step())

	err := <-resultCh
	var timeoutErr *AskTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	require.Equal(t, "test/timeout", timeoutErr.Path)
}
