package deque

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestState(t *testing.T) {
	d := New[int]()
	require.Equal(t, Unallocated, d.State())
	require.Equal(t, 0, d.Buckets())

	require.NoError(t, d.PushBack(1))
	require.Equal(t, Single, d.State())
	require.Equal(t, 1, d.Buckets())

	for i := 0; i < BucketSize; i++ {
		require.NoError(t, d.PushBack(i))
	}
	require.Equal(t, Spanning, d.State())
	require.Equal(t, 2, d.Buckets())

	d.Clear()
	require.Equal(t, Drained, d.State())
	require.Equal(t, 2, d.Buckets())

	d.Release()
	require.Equal(t, Unallocated, d.State())
	require.Equal(t, "Spanning", Spanning.String())
	require.Equal(t, "Unknown", State(9).String())
}
