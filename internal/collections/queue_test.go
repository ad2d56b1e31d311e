package collections

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue[string]()
	in := []string{"e1", "e2", "e3", "e4"}
	for _, v := range in {
		require.NoError(t, q.Enqueue(v))
	}
	front, err := q.Peek()
	require.NoError(t, err)
	require.Equal(t, "e1", front)

	var out []string
	for !q.IsEmpty() {
		v, err := q.Dequeue()
		require.NoError(t, err)
		out = append(out, v)
	}
	require.Equal(t, in, out)
}

func TestQueueEmptyErrors(t *testing.T) {
	q := NewQueue[int]()
	_, err := q.Dequeue()
	require.ErrorIs(t, err, ErrEmptyQueue)
	_, err = q.Peek()
	require.ErrorIs(t, err, ErrEmptyQueue)
	require.False(t, q.IsFull())
}

func TestQueueRejectsNil(t *testing.T) {
	q := NewQueue[*int]()
	require.ErrorIs(t, q.Enqueue(nil), ErrInvalidArgument)
	require.False(t, q.Contains(nil))
	require.Equal(t, -1, q.Search(nil))
}

func TestQueueSearch(t *testing.T) {
	q := NewQueue[string]()
	for _, v := range []string{"a", "b", "a"} {
		require.NoError(t, q.Enqueue(v))
	}
	require.Equal(t, 1, q.Search("a"))
	require.Equal(t, 2, q.Search("b"))
	require.Equal(t, -1, q.Search("c"))
	require.True(t, q.Contains("b"))
}

func TestQueueDequeueAll(t *testing.T) {
	q := NewQueue[int]()
	for i := range 5 {
		require.NoError(t, q.Enqueue(i))
	}
	q.DequeueAll()
	require.True(t, q.IsEmpty())
	require.NoError(t, q.Enqueue(42))
	v, err := q.Dequeue()
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestQueueDrain(t *testing.T) {
	q := NewQueue[int]()
	for i := range 4 {
		require.NoError(t, q.Enqueue(i))
	}
	var got []int
	for v := range q.Drain() {
		got = append(got, v)
		if v == 1 {
			break
		}
	}
	require.Equal(t, []int{0, 1}, got)
	require.Equal(t, []int{2, 3}, q.ToSlice())
}

func TestQueueEqualAndRoundTrip(t *testing.T) {
	a := NewQueue[string]()
	for _, v := range []string{"x", "y"} {
		require.NoError(t, a.Enqueue(v))
	}
	b := NewQueue[string]()
	for _, v := range a.ToSlice() {
		require.NoError(t, b.Enqueue(v))
	}
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(nil))

	require.NoError(t, b.Enqueue("z"))
	require.False(t, a.Equal(b))

	it := a.Iterator()
	first, err := it.Next()
	require.NoError(t, err)
	require.Equal(t, "x", first)
}
