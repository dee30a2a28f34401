package step

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCancellableStartsNotCancelled(t *testing.T) {
	t.Parallel()

	c := NewCancellable()
	require.False(t, c.IsCancelled())
}

func TestCancellableIsIdempotent(t *testing.T) {
	t.Parallel()

	c := NewCancellable()
	c.Cancel()
	c.Cancel()

	require.True(t, c.IsCancelled())
}
