// Package fixtures provides allocators and element helpers for tests that need
// to observe or break the lifecycle of container elements.
package fixtures

import (
	"errors"
	"fmt"

	"github.com/fission-codes/go-bucket-deque/alloc"
)

// ErrInjected is returned by every failure a fixture injects.
var ErrInjected = errors.New("injected failure")

// FaultyAllocator wraps another allocator, counts every call and fails the
// configured call numbers. Call numbers are 1-based; zero disables a fault.
//
// Two FaultyAllocators compare equal only when they are the same instance,
// unless EqualToAll is set.
type FaultyAllocator[T any] struct {
	Inner alloc.Allocator[T]

	FailConstructAt int
	FailAllocateAt  int
	FailIndexAt     int

	EqualToAll   bool
	TraitsPolicy alloc.Traits

	Constructs    int
	Constructed   int
	Destroyed     int
	Allocated     int
	Deallocated   int
	Indexes       int
	IndexesFreed  int
	allocateCalls int
	indexCalls    int
}

// NewFaultyAllocator returns a FaultyAllocator over the heap allocator.
func NewFaultyAllocator[T any]() *FaultyAllocator[T] {
	return &FaultyAllocator[T]{Inner: alloc.NewHeap[T]()}
}

// Live returns the number of constructed elements not yet destroyed.
func (fa *FaultyAllocator[T]) Live() int {
	return fa.Constructed - fa.Destroyed
}

// Blocks returns the number of element blocks not yet deallocated.
func (fa *FaultyAllocator[T]) Blocks() int {
	return fa.Allocated - fa.Deallocated
}

// OpenIndexes returns the number of index arrays not yet deallocated.
func (fa *FaultyAllocator[T]) OpenIndexes() int {
	return fa.Indexes - fa.IndexesFreed
}

// Balanced reports whether every element, block and index handed out has been
// given back.
func (fa *FaultyAllocator[T]) Balanced() bool {
	return fa.Live() == 0 && fa.Blocks() == 0 && fa.OpenIndexes() == 0
}

func (fa *FaultyAllocator[T]) String() string {
	return fmt.Sprintf("live=%d blocks=%d indexes=%d", fa.Live(), fa.Blocks(), fa.OpenIndexes())
}

func (fa *FaultyAllocator[T]) Allocate(n int) ([]T, error) {
	fa.allocateCalls++
	if fa.allocateCalls == fa.FailAllocateAt {
		return nil, fmt.Errorf("%w: allocate call %d", ErrInjected, fa.allocateCalls)
	}
	block, err := fa.Inner.Allocate(n)
	if err == nil {
		fa.Allocated++
	}
	return block, err
}

func (fa *FaultyAllocator[T]) Deallocate(block []T) {
	fa.Deallocated++
	fa.Inner.Deallocate(block)
}

func (fa *FaultyAllocator[T]) AllocateIndex(n int) ([][]T, error) {
	fa.indexCalls++
	if fa.indexCalls == fa.FailIndexAt {
		return nil, fmt.Errorf("%w: index call %d", ErrInjected, fa.indexCalls)
	}
	index, err := fa.Inner.AllocateIndex(n)
	if err == nil {
		fa.Indexes++
	}
	return index, err
}

func (fa *FaultyAllocator[T]) DeallocateIndex(index [][]T) {
	fa.IndexesFreed++
	fa.Inner.DeallocateIndex(index)
}

func (fa *FaultyAllocator[T]) Construct(slot *T, ctor alloc.Constructor[T]) error {
	fa.Constructs++
	if fa.Constructs == fa.FailConstructAt {
		return fmt.Errorf("%w: construct call %d", ErrInjected, fa.Constructs)
	}
	if err := fa.Inner.Construct(slot, ctor); err != nil {
		return err
	}
	fa.Constructed++
	return nil
}

func (fa *FaultyAllocator[T]) Destroy(slot *T) {
	fa.Destroyed++
	fa.Inner.Destroy(slot)
}

func (fa *FaultyAllocator[T]) Traits() alloc.Traits {
	return fa.TraitsPolicy
}

func (fa *FaultyAllocator[T]) SelectOnCopy() alloc.Allocator[T] {
	return fa
}

func (fa *FaultyAllocator[T]) Equal(other alloc.Allocator[T]) bool {
	if fa.EqualToAll {
		return true
	}
	o, ok := other.(*FaultyAllocator[T])
	return ok && o == fa
}

// Tracked is an element that remembers which value it was built from and how
// many copies separate it from the original.
type Tracked struct {
	ID         int
	Generation int
}

// Tracker counts constructions and copies of Tracked elements and can fail
// either on a given call number (1-based, zero disables).
type Tracker struct {
	FailNewAt   int
	FailCloneAt int

	News   int
	Clones int
}

// New returns a Constructor yielding Tracked values with increasing IDs.
func (tr *Tracker) New() alloc.Constructor[Tracked] {
	return func() (Tracked, error) {
		tr.News++
		if tr.News == tr.FailNewAt {
			return Tracked{}, fmt.Errorf("%w: new call %d", ErrInjected, tr.News)
		}
		return Tracked{ID: tr.News}, nil
	}
}

// Clone is a copy function for Tracked values.
func (tr *Tracker) Clone(v Tracked) (Tracked, error) {
	tr.Clones++
	if tr.Clones == tr.FailCloneAt {
		return Tracked{}, fmt.Errorf("%w: clone call %d", ErrInjected, tr.Clones)
	}
	return Tracked{ID: v.ID, Generation: v.Generation + 1}, nil
}
