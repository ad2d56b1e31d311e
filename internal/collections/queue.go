package collections

import (
	"fmt"
	"iter"
)

// Queue is a FIFO container on top of LinkedSequence: enqueue appends at the
// tail, dequeue removes the head.
type Queue[E comparable] struct {
	data *LinkedSequence[E]
}

// NewQueue returns an empty Queue.
func NewQueue[E comparable]() *Queue[E] {
	return &Queue[E]{data: NewLinkedSequence[E]()}
}

// Enqueue appends v at the back.
func (q *Queue[E]) Enqueue(v E) error {
	if err := checkPresent(v); err != nil {
		return fmt.Errorf("enqueue: %w", err)
	}
	return q.data.PushBack(v)
}

// Dequeue removes and returns the front element.
func (q *Queue[E]) Dequeue() (E, error) {
	v, ok := q.data.PopFront()
	if !ok {
		return v, ErrEmptyQueue
	}
	return v, nil
}

// Peek returns the front element without removing it.
func (q *Queue[E]) Peek() (E, error) {
	v, ok := q.data.Front()
	if !ok {
		return v, ErrEmptyQueue
	}
	return v, nil
}

// DequeueAll empties the queue.
func (q *Queue[E]) DequeueAll() { q.data.Clear() }

func (q *Queue[E]) IsEmpty() bool { return q.data.IsEmpty() }
func (q *Queue[E]) Len() int      { return q.data.Len() }

// IsFull always reports false.
func (q *Queue[E]) IsFull() bool { return false }

// Contains reports whether v is queued. A nil v is never contained.
func (q *Queue[E]) Contains(v E) bool {
	if isAbsent(v) {
		return false
	}
	return q.data.Contains(v)
}

// Search returns the 1-based distance of v from the front, or -1.
func (q *Queue[E]) Search(v E) int {
	if isAbsent(v) {
		return -1
	}
	i := q.data.IndexOf(v)
	if i < 0 {
		return -1
	}
	return i + 1
}

// ToSlice returns the elements from front to back.
func (q *Queue[E]) ToSlice() []E { return q.data.ToSlice() }

// Iterator walks from front to back.
func (q *Queue[E]) Iterator() *Iterator[E] { return q.data.Iterator() }

// All yields the elements from front to back.
func (q *Queue[E]) All() iter.Seq[E] { return q.data.All() }

// Drain dequeues every element in order. Breaking out of the loop leaves the
// remaining elements queued.
func (q *Queue[E]) Drain() iter.Seq[E] {
	return func(yield func(E) bool) {
		for {
			v, ok := q.data.PopFront()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Equal reports whether both queues hold equal elements in the same order.
func (q *Queue[E]) Equal(other *Queue[E]) bool {
	if q == other {
		return true
	}
	if other == nil || q.Len() != other.Len() {
		return false
	}
	return seqEqual(q.All(), other.All())
}
