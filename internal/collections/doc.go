// Package collections provides the linear containers the tag matcher is built on.
//
// # Containers
//
//   - Sequence – growable indexable buffer with amortised O(1) appends.
//   - LinkedSequence – doubly linked list whose nodes live in an arena and link by index.
//   - Stack – LIFO on top of Sequence; the top is the last element.
//   - Queue – FIFO on top of LinkedSequence; the front is the head.
//
// # Absent values
//
// Mutators reject nil pointers, interfaces and channels with ErrInvalidArgument.
// Lookups that may find nothing return (value, ok) instead of a nil sentinel.
//
// # Concurrency
//
// Nothing here is synchronised. A container must have a single writer; iterating while
// mutating is undefined.
package collections
