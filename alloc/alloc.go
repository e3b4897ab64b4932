// Package alloc defines the allocation strategy used by bucketed containers.
//
// An Allocator hands out fixed-size element blocks (buckets) and the index
// that addresses them, and controls the lifecycle of the elements stored in
// those blocks. A small policy table (Traits) tells containers whether the
// allocator follows the data on copy assignment, move assignment and swap.
package alloc

import (
	golog "github.com/ipfs/go-log/v2"
)

var log = golog.Logger("go-bucket-deque")

// Constructor builds a single element. A non-nil error is a construction
// failure and leaves the target slot untouched.
type Constructor[T any] func() (T, error)

// Value returns a Constructor that yields v.
func Value[T any](v T) Constructor[T] {
	return func() (T, error) { return v, nil }
}

// Zero returns a Constructor that yields the zero value of T.
func Zero[T any]() Constructor[T] {
	return func() (T, error) {
		var zero T
		return zero, nil
	}
}

// Func adapts an infallible factory into a Constructor.
func Func[T any](f func() T) Constructor[T] {
	return func() (T, error) { return f(), nil }
}

// Traits is the propagation policy of an allocator.
type Traits struct {
	// PropagateOnCopyAssignment makes the target of a copy assignment adopt
	// the source's allocator.
	PropagateOnCopyAssignment bool
	// PropagateOnMoveAssignment makes the target of a move assignment adopt
	// the source's allocator, which allows storage to be stolen.
	PropagateOnMoveAssignment bool
	// PropagateOnSwap makes swapped containers exchange allocators.
	PropagateOnSwap bool
}

// Allocator is the storage strategy of a bucketed container.
type Allocator[T any] interface {
	// Allocate returns a block of n element slots.
	Allocate(n int) ([]T, error)
	// Deallocate returns a block obtained from Allocate. All of its elements
	// must have been destroyed.
	Deallocate(block []T)
	// AllocateIndex returns an index of n empty block handles.
	AllocateIndex(n int) ([][]T, error)
	// DeallocateIndex returns an index obtained from AllocateIndex.
	DeallocateIndex(index [][]T)
	// Construct builds an element in slot. On error slot is left unchanged.
	Construct(slot *T, ctor Constructor[T]) error
	// Destroy ends the lifetime of the element in slot and zeroes it.
	Destroy(slot *T)
	// Traits returns the propagation policy.
	Traits() Traits
	// SelectOnCopy returns the allocator a copy of a container should use.
	SelectOnCopy() Allocator[T]
	// Equal reports whether storage from one allocator may be released by
	// the other.
	Equal(other Allocator[T]) bool
}

// construct is the default in-place construction shared by the allocators in
// this package.
func construct[T any](slot *T, ctor Constructor[T]) error {
	v, err := ctor()
	if err != nil {
		return err
	}
	*slot = v
	return nil
}

func destroy[T any](slot *T) {
	var zero T
	*slot = zero
}
