package collections

import (
	"fmt"
	"iter"
)

// Stack is a LIFO container on top of Sequence. The top is the last element
// of the sequence. There is no capacity ceiling.
type Stack[E comparable] struct {
	data *Sequence[E]
}

// NewStack returns an empty Stack.
func NewStack[E comparable]() *Stack[E] {
	return &Stack[E]{data: NewSequence[E]()}
}

// Push places v on top.
func (s *Stack[E]) Push(v E) error {
	if err := checkPresent(v); err != nil {
		return fmt.Errorf("push: %w", err)
	}
	return s.data.Add(v)
}

// Pop removes and returns the top element.
func (s *Stack[E]) Pop() (E, error) {
	if s.data.IsEmpty() {
		var zero E
		return zero, ErrEmptyStack
	}
	return s.data.RemoveAt(s.data.Len() - 1)
}

// Peek returns the top element without removing it.
func (s *Stack[E]) Peek() (E, error) {
	if s.data.IsEmpty() {
		var zero E
		return zero, ErrEmptyStack
	}
	return s.data.Get(s.data.Len() - 1)
}

func (s *Stack[E]) Clear()        { s.data.Clear() }
func (s *Stack[E]) IsEmpty() bool { return s.data.IsEmpty() }
func (s *Stack[E]) Len() int      { return s.data.Len() }

// Overflow always reports false: the stack grows without bound.
func (s *Stack[E]) Overflow() bool { return false }

// Contains reports whether v is anywhere on the stack.
func (s *Stack[E]) Contains(v E) bool { return s.data.Contains(v) }

// Search returns the 1-based distance of v from the top, or -1.
// With duplicates the occurrence nearest the top wins.
func (s *Stack[E]) Search(v E) int {
	return s.SearchFunc(func(e E) bool { return e == v })
}

// SearchFunc is Search with a predicate.
func (s *Stack[E]) SearchFunc(pred func(E) bool) int {
	i := s.data.lastIndexFunc(pred)
	if i < 0 {
		return -1
	}
	return s.data.Len() - i
}

// ToSlice returns the elements from top to bottom.
func (s *Stack[E]) ToSlice() []E {
	out := make([]E, 0, s.data.Len())
	for v := range s.All() {
		out = append(out, v)
	}
	return out
}

// Iterator walks from top to bottom.
func (s *Stack[E]) Iterator() *Iterator[E] {
	cursor := s.data.Len() - 1
	return newIterator(func() (E, bool) {
		if cursor < 0 || cursor >= s.data.Len() {
			var zero E
			return zero, false
		}
		v := s.data.data[cursor]
		cursor--
		return v, true
	})
}

// All yields the elements from top to bottom.
func (s *Stack[E]) All() iter.Seq[E] { return s.data.Backward() }

// Equal reports whether both stacks hold equal elements in the same top-to-bottom order.
func (s *Stack[E]) Equal(other *Stack[E]) bool {
	if s == other {
		return true
	}
	if other == nil || s.Len() != other.Len() {
		return false
	}
	return seqEqual(s.All(), other.All())
}

func seqEqual[E comparable](a, b iter.Seq[E]) bool {
	nextB, stop := iter.Pull(b)
	defer stop()
	for va := range a {
		vb, ok := nextB()
		if !ok || va != vb {
			return false
		}
	}
	_, more := nextB()
	return !more
}
