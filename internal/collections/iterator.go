package collections

// Iterator walks a container once. It is not restartable and does not
// guard against mutation of the underlying container.
type Iterator[E any] struct {
	next func() (E, bool)
	peek *E
	done bool
}

func newIterator[E any](next func() (E, bool)) *Iterator[E] {
	return &Iterator[E]{next: next}
}

// HasNext reports whether Next would return an element.
func (it *Iterator[E]) HasNext() bool {
	if it.peek != nil {
		return true
	}
	if it.done {
		return false
	}
	v, ok := it.next()
	if !ok {
		it.done = true
		return false
	}
	it.peek = &v
	return true
}

// Next returns the following element or ErrNoSuchElement once exhausted.
func (it *Iterator[E]) Next() (E, error) {
	if !it.HasNext() {
		var zero E
		return zero, ErrNoSuchElement
	}
	v := *it.peek
	it.peek = nil
	return v, nil
}
