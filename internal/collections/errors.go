package collections

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidArgument is returned when an absent (nil) value is passed to a mutator.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfRange is returned when an index falls outside the valid bounds.
	ErrOutOfRange = errors.New("index out of range")
	// ErrEmptyStack is returned by Pop/Peek on an empty Stack.
	ErrEmptyStack = errors.New("empty stack")
	// ErrEmptyQueue is returned by Dequeue/Peek on an empty Queue.
	ErrEmptyQueue = errors.New("empty queue")
	// ErrNoSuchElement is returned by an exhausted Iterator.
	ErrNoSuchElement = errors.New("no such element")
)

func outOfRange(index, size int) error {
	return fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, index, size)
}

// isAbsent reports whether v is the Go equivalent of a null element:
// a nil pointer, interface, chan, map, slice or func.
func isAbsent[E any](v E) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Chan, reflect.Map, reflect.Slice, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

func checkPresent[E any](v E) error {
	if isAbsent(v) {
		return fmt.Errorf("%w: nil element", ErrInvalidArgument)
	}
	return nil
}
