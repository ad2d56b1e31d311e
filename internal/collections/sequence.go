package collections

import "iter"

const defaultCapacity = 10

// Sequence is a growable indexable container backed by a slice it manages itself.
// Capacity doubles on overflow (or grows to the exact need when doubling is not enough).
type Sequence[E comparable] struct {
	data []E // len(data) is the capacity
	size int
}

// NewSequence returns an empty Sequence with the default capacity.
func NewSequence[E comparable]() *Sequence[E] {
	return NewSequenceWithCapacity[E](defaultCapacity)
}

// NewSequenceWithCapacity returns an empty Sequence able to hold capacity elements without growing.
func NewSequenceWithCapacity[E comparable](capacity int) *Sequence[E] {
	if capacity < 0 {
		capacity = 0
	}
	return &Sequence[E]{data: make([]E, capacity)}
}

func growCapacity(current, need int) int {
	return max(current*2, need)
}

func (s *Sequence[E]) ensureCapacity(need int) {
	if need <= len(s.data) {
		return
	}
	grown := make([]E, growCapacity(len(s.data), need))
	copy(grown, s.data[:s.size])
	s.data = grown
}

// Len returns the number of elements.
func (s *Sequence[E]) Len() int { return s.size }

// Cap returns the current buffer capacity.
func (s *Sequence[E]) Cap() int { return len(s.data) }

// IsEmpty reports whether the sequence holds no elements.
func (s *Sequence[E]) IsEmpty() bool { return s.size == 0 }

// Clear drops every element; capacity is kept.
func (s *Sequence[E]) Clear() {
	clear(s.data[:s.size])
	s.size = 0
}

// Get returns the element at index.
func (s *Sequence[E]) Get(index int) (E, error) {
	if index < 0 || index >= s.size {
		var zero E
		return zero, outOfRange(index, s.size)
	}
	return s.data[index], nil
}

// Set replaces the element at index and returns the previous one.
func (s *Sequence[E]) Set(index int, v E) (E, error) {
	var zero E
	if err := checkPresent(v); err != nil {
		return zero, err
	}
	if index < 0 || index >= s.size {
		return zero, outOfRange(index, s.size)
	}
	old := s.data[index]
	s.data[index] = v
	return old, nil
}

// Add appends v.
func (s *Sequence[E]) Add(v E) error {
	if err := checkPresent(v); err != nil {
		return err
	}
	s.ensureCapacity(s.size + 1)
	s.data[s.size] = v
	s.size++
	return nil
}

// Insert places v at index, shifting later elements right. index == Len() appends.
func (s *Sequence[E]) Insert(index int, v E) error {
	if err := checkPresent(v); err != nil {
		return err
	}
	if index < 0 || index > s.size {
		return outOfRange(index, s.size)
	}
	s.ensureCapacity(s.size + 1)
	copy(s.data[index+1:s.size+1], s.data[index:s.size])
	s.data[index] = v
	s.size++
	return nil
}

// AddAll appends every element produced by src in order.
func (s *Sequence[E]) AddAll(src iter.Seq[E]) error {
	if src == nil {
		return ErrInvalidArgument
	}
	for v := range src {
		if err := s.Add(v); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAt removes the element at index, shifting later elements left.
func (s *Sequence[E]) RemoveAt(index int) (E, error) {
	if index < 0 || index >= s.size {
		var zero E
		return zero, outOfRange(index, s.size)
	}
	removed := s.data[index]
	copy(s.data[index:s.size-1], s.data[index+1:s.size])
	s.size--
	var zero E
	s.data[s.size] = zero
	return removed, nil
}

// Remove deletes the first element equal to v.
// ok is false when nothing matched; that is not an error.
func (s *Sequence[E]) Remove(v E) (removed E, ok bool, err error) {
	if err := checkPresent(v); err != nil {
		return removed, false, err
	}
	i := s.indexOf(v)
	if i < 0 {
		return removed, false, nil
	}
	removed, err = s.RemoveAt(i)
	return removed, err == nil, err
}

func (s *Sequence[E]) indexOf(v E) int {
	for i := range s.size {
		if s.data[i] == v {
			return i
		}
	}
	return -1
}

func (s *Sequence[E]) lastIndexFunc(pred func(E) bool) int {
	for i := s.size - 1; i >= 0; i-- {
		if pred(s.data[i]) {
			return i
		}
	}
	return -1
}

// Contains reports whether an element equal to v is present.
func (s *Sequence[E]) Contains(v E) bool {
	return s.indexOf(v) >= 0
}

// ToSlice returns a snapshot copy of the elements in index order.
func (s *Sequence[E]) ToSlice() []E {
	return s.AppendTo(make([]E, 0, s.size))
}

// AppendTo appends the elements in index order to dst and returns the extended slice.
func (s *Sequence[E]) AppendTo(dst []E) []E {
	return append(dst, s.data[:s.size]...)
}

// Iterator returns a forward iterator.
func (s *Sequence[E]) Iterator() *Iterator[E] {
	cursor := 0
	return newIterator(func() (E, bool) {
		if cursor >= s.size {
			var zero E
			return zero, false
		}
		v := s.data[cursor]
		cursor++
		return v, true
	})
}

// All yields the elements in index order.
func (s *Sequence[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for i := 0; i < s.size; i++ {
			if !yield(s.data[i]) {
				return
			}
		}
	}
}

// Backward yields the elements from the last index to the first.
func (s *Sequence[E]) Backward() iter.Seq[E] {
	return func(yield func(E) bool) {
		for i := s.size - 1; i >= 0; i-- {
			if !yield(s.data[i]) {
				return
			}
		}
	}
}
