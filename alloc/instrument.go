package alloc

import (
	"unsafe"

	"github.com/fission-codes/go-bucket-deque/stats"
)

// Instrumented is an Allocator that records stats for every call before
// delegating to the wrapped allocator.
type Instrumented[T any] struct {
	inner Allocator[T]
	stats stats.Stats
}

// NewInstrumented returns an Instrumented allocator wrapping inner.
func NewInstrumented[T any](inner Allocator[T], stats stats.Stats) *Instrumented[T] {
	return &Instrumented[T]{
		inner: inner,
		stats: stats,
	}
}

// Inner returns the wrapped allocator.
func (ia *Instrumented[T]) Inner() Allocator[T] {
	return ia.inner
}

func elementSize[T any]() uint64 {
	var zero T
	return uint64(unsafe.Sizeof(zero))
}

// Allocate calls the underlying allocator's Allocate method and records stats.
func (ia *Instrumented[T]) Allocate(n int) ([]T, error) {
	ia.stats.Logger().Debugw("InstrumentedAllocator", "method", "Allocate", "n", n)
	block, err := ia.inner.Allocate(n)
	if err == nil {
		ia.stats.Log("Allocate")
		ia.stats.LogBytes("Allocate", uint64(n)*elementSize[T]())
	} else {
		ia.stats.Log("Allocate.Error")
		ia.stats.Logger().Debugw("InstrumentedAllocator", "method", "Allocate", "error", err)
	}
	return block, err
}

// Deallocate calls the underlying allocator's Deallocate method and records stats.
func (ia *Instrumented[T]) Deallocate(block []T) {
	ia.stats.Logger().Debugw("InstrumentedAllocator", "method", "Deallocate", "n", len(block))
	ia.stats.Log("Deallocate")
	ia.stats.LogBytes("Deallocate", uint64(len(block))*elementSize[T]())
	ia.inner.Deallocate(block)
}

// AllocateIndex calls the underlying allocator's AllocateIndex method and records stats.
func (ia *Instrumented[T]) AllocateIndex(n int) ([][]T, error) {
	ia.stats.Logger().Debugw("InstrumentedAllocator", "method", "AllocateIndex", "n", n)
	index, err := ia.inner.AllocateIndex(n)
	if err == nil {
		ia.stats.Log("AllocateIndex")
	} else {
		ia.stats.Log("AllocateIndex.Error")
		ia.stats.Logger().Debugw("InstrumentedAllocator", "method", "AllocateIndex", "error", err)
	}
	return index, err
}

// DeallocateIndex calls the underlying allocator's DeallocateIndex method and records stats.
func (ia *Instrumented[T]) DeallocateIndex(index [][]T) {
	ia.stats.Logger().Debugw("InstrumentedAllocator", "method", "DeallocateIndex", "n", len(index))
	ia.stats.Log("DeallocateIndex")
	ia.inner.DeallocateIndex(index)
}

// Construct calls the underlying allocator's Construct method and records stats.
func (ia *Instrumented[T]) Construct(slot *T, ctor Constructor[T]) error {
	err := ia.inner.Construct(slot, ctor)
	if err == nil {
		ia.stats.Log("Construct.Ok")
	} else {
		ia.stats.Log("Construct.Error")
		ia.stats.Logger().Debugw("InstrumentedAllocator", "method", "Construct", "error", err)
	}
	return err
}

// Destroy calls the underlying allocator's Destroy method and records stats.
func (ia *Instrumented[T]) Destroy(slot *T) {
	ia.stats.Log("Destroy")
	ia.inner.Destroy(slot)
}

func (ia *Instrumented[T]) Traits() Traits {
	return ia.inner.Traits()
}

// SelectOnCopy keeps the copy instrumented with the same stats.
func (ia *Instrumented[T]) SelectOnCopy() Allocator[T] {
	return NewInstrumented(ia.inner.SelectOnCopy(), ia.stats)
}

func (ia *Instrumented[T]) Equal(other Allocator[T]) bool {
	if o, ok := other.(*Instrumented[T]); ok {
		other = o.inner
	}
	return ia.inner.Equal(other)
}
