package collections

import "iter"

const nilNode = -1

// linkedNode lives in the arena of its LinkedSequence. next and prev are arena
// indices; prev is a back-reference only and never owns anything.
type linkedNode[E any] struct {
	value E
	next  int
	prev  int
}

// LinkedSequence is a doubly linked list. Nodes are stored in an arena slice and
// addressed by index; removed slots are recycled through a free list.
type LinkedSequence[E comparable] struct {
	nodes []linkedNode[E]
	free  []int
	head  int
	tail  int
	size  int
}

// NewLinkedSequence returns an empty list.
func NewLinkedSequence[E comparable]() *LinkedSequence[E] {
	return &LinkedSequence[E]{head: nilNode, tail: nilNode}
}

func (l *LinkedSequence[E]) alloc(v E) int {
	n := linkedNode[E]{value: v, next: nilNode, prev: nilNode}
	if k := len(l.free); k > 0 {
		idx := l.free[k-1]
		l.free = l.free[:k-1]
		l.nodes[idx] = n
		return idx
	}
	l.nodes = append(l.nodes, n)
	return len(l.nodes) - 1
}

func (l *LinkedSequence[E]) release(idx int) {
	l.nodes[idx] = linkedNode[E]{next: nilNode, prev: nilNode}
	l.free = append(l.free, idx)
}

// Len returns the number of elements.
func (l *LinkedSequence[E]) Len() int { return l.size }

// IsEmpty reports whether the list holds no elements.
func (l *LinkedSequence[E]) IsEmpty() bool { return l.size == 0 }

// Clear drops every node and the arena with them.
func (l *LinkedSequence[E]) Clear() {
	l.nodes = nil
	l.free = nil
	l.head, l.tail = nilNode, nilNode
	l.size = 0
}

// nodeAt walks from whichever end is closer to index.
func (l *LinkedSequence[E]) nodeAt(index int) int {
	if index < l.size/2 {
		cur := l.head
		for range index {
			cur = l.nodes[cur].next
		}
		return cur
	}
	cur := l.tail
	for i := l.size - 1; i > index; i-- {
		cur = l.nodes[cur].prev
	}
	return cur
}

// Get returns the element at index.
func (l *LinkedSequence[E]) Get(index int) (E, error) {
	if index < 0 || index >= l.size {
		var zero E
		return zero, outOfRange(index, l.size)
	}
	return l.nodes[l.nodeAt(index)].value, nil
}

// Set replaces the element at index and returns the previous one.
func (l *LinkedSequence[E]) Set(index int, v E) (E, error) {
	var zero E
	if err := checkPresent(v); err != nil {
		return zero, err
	}
	if index < 0 || index >= l.size {
		return zero, outOfRange(index, l.size)
	}
	n := &l.nodes[l.nodeAt(index)]
	old := n.value
	n.value = v
	return old, nil
}

// Add appends v at the tail.
func (l *LinkedSequence[E]) Add(v E) error {
	return l.Insert(l.size, v)
}

// Insert links v in at index. index == Len() appends.
func (l *LinkedSequence[E]) Insert(index int, v E) error {
	if err := checkPresent(v); err != nil {
		return err
	}
	if index < 0 || index > l.size {
		return outOfRange(index, l.size)
	}
	idx := l.alloc(v)
	switch {
	case l.size == 0:
		l.head, l.tail = idx, idx
	case index == 0:
		l.nodes[idx].next = l.head
		l.nodes[l.head].prev = idx
		l.head = idx
	case index == l.size:
		l.nodes[idx].prev = l.tail
		l.nodes[l.tail].next = idx
		l.tail = idx
	default:
		cur := l.nodeAt(index)
		before := l.nodes[cur].prev
		l.nodes[idx].prev = before
		l.nodes[idx].next = cur
		l.nodes[before].next = idx
		l.nodes[cur].prev = idx
	}
	l.size++
	return nil
}

// AddAll appends every element produced by src in order.
func (l *LinkedSequence[E]) AddAll(src iter.Seq[E]) error {
	if src == nil {
		return ErrInvalidArgument
	}
	for v := range src {
		if err := l.Add(v); err != nil {
			return err
		}
	}
	return nil
}

// unlink detaches node idx, fixing both directions before returning its value.
func (l *LinkedSequence[E]) unlink(idx int) E {
	n := l.nodes[idx]
	if n.prev == nilNode {
		l.head = n.next
	} else {
		l.nodes[n.prev].next = n.next
	}
	if n.next == nilNode {
		l.tail = n.prev
	} else {
		l.nodes[n.next].prev = n.prev
	}
	l.size--
	l.release(idx)
	return n.value
}

// RemoveAt removes and returns the element at index.
func (l *LinkedSequence[E]) RemoveAt(index int) (E, error) {
	if index < 0 || index >= l.size {
		var zero E
		return zero, outOfRange(index, l.size)
	}
	return l.unlink(l.nodeAt(index)), nil
}

// Remove deletes the first element equal to v.
// ok is false when nothing matched; that is not an error.
func (l *LinkedSequence[E]) Remove(v E) (removed E, ok bool, err error) {
	if err := checkPresent(v); err != nil {
		return removed, false, err
	}
	for cur := l.head; cur != nilNode; cur = l.nodes[cur].next {
		if l.nodes[cur].value == v {
			return l.unlink(cur), true, nil
		}
	}
	return removed, false, nil
}

// PushBack appends v in O(1).
func (l *LinkedSequence[E]) PushBack(v E) error {
	return l.Insert(l.size, v)
}

// Front returns the head element.
func (l *LinkedSequence[E]) Front() (E, bool) {
	if l.head == nilNode {
		var zero E
		return zero, false
	}
	return l.nodes[l.head].value, true
}

// PopFront removes the head element in O(1).
func (l *LinkedSequence[E]) PopFront() (E, bool) {
	if l.head == nilNode {
		var zero E
		return zero, false
	}
	return l.unlink(l.head), true
}

// IndexOf returns the index of the first element equal to v, or -1.
func (l *LinkedSequence[E]) IndexOf(v E) int {
	i := 0
	for cur := l.head; cur != nilNode; cur = l.nodes[cur].next {
		if l.nodes[cur].value == v {
			return i
		}
		i++
	}
	return -1
}

// Contains reports whether an element equal to v is present.
func (l *LinkedSequence[E]) Contains(v E) bool {
	return l.IndexOf(v) >= 0
}

// ToSlice returns a snapshot copy of the elements from head to tail.
func (l *LinkedSequence[E]) ToSlice() []E {
	return l.AppendTo(make([]E, 0, l.size))
}

// AppendTo appends the elements from head to tail to dst.
func (l *LinkedSequence[E]) AppendTo(dst []E) []E {
	for cur := l.head; cur != nilNode; cur = l.nodes[cur].next {
		dst = append(dst, l.nodes[cur].value)
	}
	return dst
}

// Iterator returns a head-to-tail iterator.
func (l *LinkedSequence[E]) Iterator() *Iterator[E] {
	cur := l.head
	return newIterator(func() (E, bool) {
		if cur == nilNode {
			var zero E
			return zero, false
		}
		v := l.nodes[cur].value
		cur = l.nodes[cur].next
		return v, true
	})
}

// All yields the elements from head to tail.
func (l *LinkedSequence[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for cur := l.head; cur != nilNode; cur = l.nodes[cur].next {
			if !yield(l.nodes[cur].value) {
				return
			}
		}
	}
}

// Backward yields the elements from tail to head.
func (l *LinkedSequence[E]) Backward() iter.Seq[E] {
	return func(yield func(E) bool) {
		for cur := l.tail; cur != nilNode; cur = l.nodes[cur].prev {
			if !yield(l.nodes[cur].value) {
				return
			}
		}
	}
}
