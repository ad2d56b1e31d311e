package collections

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// checkLinks walks the arena both ways and verifies prev/next agree.
func checkLinks[E comparable](t *testing.T, l *LinkedSequence[E]) {
	t.Helper()
	if l.size == 0 {
		require.Equal(t, nilNode, l.head)
		require.Equal(t, nilNode, l.tail)
		return
	}
	require.NotEqual(t, nilNode, l.head)
	require.NotEqual(t, nilNode, l.tail)
	require.Equal(t, nilNode, l.nodes[l.head].prev)
	require.Equal(t, nilNode, l.nodes[l.tail].next)

	count := 0
	for cur := l.head; cur != nilNode; cur = l.nodes[cur].next {
		if next := l.nodes[cur].next; next != nilNode {
			require.Equal(t, cur, l.nodes[next].prev)
		}
		count++
	}
	require.Equal(t, l.size, count)

	forward := slices.Collect(l.All())
	backward := slices.Collect(l.Backward())
	slices.Reverse(backward)
	require.Equal(t, forward, backward)
}

func TestLinkedInsertEverywhere(t *testing.T) {
	l := NewLinkedSequence[string]()
	checkLinks(t, l)

	require.NoError(t, l.Add("b"))
	require.NoError(t, l.Insert(0, "a"))
	require.NoError(t, l.Add("d"))
	require.NoError(t, l.Insert(2, "c"))
	checkLinks(t, l)
	require.Equal(t, []string{"a", "b", "c", "d"}, l.ToSlice())

	require.ErrorIs(t, l.Insert(5, "x"), ErrOutOfRange)
	require.ErrorIs(t, l.Insert(-1, "x"), ErrOutOfRange)
}

func TestLinkedGetFromBothHalves(t *testing.T) {
	l := NewLinkedSequence[int]()
	for i := range 9 {
		require.NoError(t, l.Add(i * 10))
	}
	for i := range 9 {
		v, err := l.Get(i)
		require.NoError(t, err)
		require.Equal(t, i*10, v)
	}
	_, err := l.Get(9)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestLinkedRemoveRelinks(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  []int
	}{
		{"head", 0, []int{1, 2, 3, 4}},
		{"tail", 4, []int{0, 1, 2, 3}},
		{"front half", 1, []int{0, 2, 3, 4}},
		{"back half", 3, []int{0, 1, 2, 4}},
		{"middle", 2, []int{0, 1, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLinkedSequence[int]()
			for i := range 5 {
				require.NoError(t, l.Add(i))
			}
			v, err := l.RemoveAt(tt.index)
			require.NoError(t, err)
			require.Equal(t, tt.index, v)
			require.Equal(t, tt.want, l.ToSlice())
			checkLinks(t, l)
		})
	}
}

func TestLinkedRemoveSingle(t *testing.T) {
	l := NewLinkedSequence[string]()
	require.NoError(t, l.Add("only"))
	v, err := l.RemoveAt(0)
	require.NoError(t, err)
	require.Equal(t, "only", v)
	require.True(t, l.IsEmpty())
	checkLinks(t, l)
}

func TestLinkedRemoveValue(t *testing.T) {
	l := NewLinkedSequence[string]()
	for _, v := range []string{"a", "b", "c", "b"} {
		require.NoError(t, l.Add(v))
	}
	got, ok, err := l.Remove("b")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "b", got)
	require.Equal(t, []string{"a", "c", "b"}, l.ToSlice())
	checkLinks(t, l)

	_, ok, err = l.Remove("q")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLinkedArenaReusesSlots(t *testing.T) {
	l := NewLinkedSequence[int]()
	for i := range 4 {
		require.NoError(t, l.Add(i))
	}
	_, _ = l.RemoveAt(1)
	_, _ = l.RemoveAt(1)
	require.Len(t, l.free, 2)

	require.NoError(t, l.Add(7))
	require.NoError(t, l.Insert(1, 8))
	require.Empty(t, l.free)
	require.Len(t, l.nodes, 4)
	require.Equal(t, []int{0, 8, 3, 7}, l.ToSlice())
	checkLinks(t, l)
}

func TestLinkedSetAndNil(t *testing.T) {
	l := NewLinkedSequence[*string]()
	require.ErrorIs(t, l.Add(nil), ErrInvalidArgument)

	a, b := "a", "b"
	require.NoError(t, l.Add(&a))
	old, err := l.Set(0, &b)
	require.NoError(t, err)
	require.Same(t, &a, old)
	_, err = l.Set(0, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = l.Set(3, &a)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestLinkedClearAndIterator(t *testing.T) {
	l := NewLinkedSequence[int]()
	for i := range 3 {
		require.NoError(t, l.Add(i))
	}
	it := l.Iterator()
	var got []int
	for it.HasNext() {
		v, err := it.Next()
		require.NoError(t, err)
		got = append(got, v)
	}
	require.Equal(t, []int{0, 1, 2}, got)

	l.Clear()
	checkLinks(t, l)
	require.False(t, l.Contains(1))
	_, ok := l.Front()
	require.False(t, ok)
}
