package alloc

// Heap is the ambient allocator: blocks come from make and are reclaimed by
// the garbage collector. Every Heap compares equal to every other Heap of the
// same element type, so storage can always be moved between containers.
type Heap[T any] struct{}

// NewHeap returns the default allocator.
func NewHeap[T any]() Heap[T] {
	return Heap[T]{}
}

func (Heap[T]) Allocate(n int) ([]T, error) {
	return make([]T, n), nil
}

func (Heap[T]) Deallocate([]T) {}

func (Heap[T]) AllocateIndex(n int) ([][]T, error) {
	return make([][]T, n), nil
}

func (Heap[T]) DeallocateIndex([][]T) {}

func (Heap[T]) Construct(slot *T, ctor Constructor[T]) error {
	return construct(slot, ctor)
}

func (Heap[T]) Destroy(slot *T) {
	destroy(slot)
}

func (Heap[T]) Traits() Traits {
	return Traits{PropagateOnMoveAssignment: true}
}

func (h Heap[T]) SelectOnCopy() Allocator[T] {
	return h
}

func (Heap[T]) Equal(other Allocator[T]) bool {
	if i, ok := other.(*Instrumented[T]); ok {
		other = i.inner
	}
	_, ok := other.(Heap[T])
	return ok
}
