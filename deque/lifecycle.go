package deque

import (
	"fmt"

	"github.com/fission-codes/go-bucket-deque/alloc"
	"github.com/fission-codes/go-bucket-deque/errors"
	"github.com/fission-codes/go-bucket-deque/util"
)

// NewWithCount returns a deque of count zero values.
func NewWithCount[T any](count int, opts ...Option[T]) (*Deque[T], error) {
	return NewFunc(count, alloc.Zero[T](), opts...)
}

// NewFunc returns a deque of count elements built by calling ctor in order.
//
// If any call fails, every element built so far is destroyed, all storage is
// returned to the allocator and the error is returned.
func NewFunc[T any](count int, ctor alloc.Constructor[T], opts ...Option[T]) (*Deque[T], error) {
	d := New(opts...)
	if err := d.fill(count, func(int) alloc.Constructor[T] { return ctor }); err != nil {
		return nil, err
	}
	return d, nil
}

// NewFilled returns a deque of count copies of value.
func NewFilled[T any](count int, value T, opts ...Option[T]) (*Deque[T], error) {
	d := New(opts...)
	copyValue := func() (T, error) { return d.clone(value) }
	if err := d.fill(count, func(int) alloc.Constructor[T] { return copyValue }); err != nil {
		return nil, err
	}
	return d, nil
}

// NewFrom returns a deque holding copies of values, in order.
func NewFrom[T any](values []T, opts ...Option[T]) (*Deque[T], error) {
	d := New(opts...)
	err := d.fill(len(values), func(i int) alloc.Constructor[T] {
		return func() (T, error) { return d.clone(values[i]) }
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// fill builds count elements into a deque without storage. The exact bucket
// layout is allocated up front, so construction never reallocates.
func (d *Deque[T]) fill(count int, ctor func(i int) alloc.Constructor[T]) error {
	if count < 0 {
		return fmt.Errorf("%w: %d", errors.ErrInvalidCount, count)
	}
	if count == 0 {
		return nil
	}
	buckets := util.CeilDiv(count, BucketSize)
	if err := d.layout(2*buckets, buckets/2, buckets, 0); err != nil {
		return err
	}
	return d.construct(count, ctor)
}

// layout allocates an index of the given capacity and the given number of
// buckets starting at index start, then places the empty cursor at slot inner
// of the first bucket. On error all storage is released.
func (d *Deque[T]) layout(capacity, start, buckets, inner int) error {
	outer, err := d.alloc.AllocateIndex(capacity)
	if err != nil {
		return err
	}
	d.outer = outer
	d.memStart, d.memEnd = start, start-1
	for i := 0; i < buckets; i++ {
		bucket, err := d.alloc.Allocate(BucketSize)
		if err != nil {
			d.Release()
			return err
		}
		outer[start+i] = bucket
		d.memEnd = start + i
	}
	d.setCursor(start, inner)
	return nil
}

// construct appends count elements into buckets allocated by layout. On
// failure exactly the elements built so far are destroyed and all storage is
// released.
func (d *Deque[T]) construct(count int, ctor func(i int) alloc.Constructor[T]) error {
	for i := 0; i < count; i++ {
		if err := d.advanceBack(); err != nil {
			d.unwind(i, err)
			return err
		}
		if err := d.alloc.Construct(&d.outer[d.outerEnd][d.innerEnd], ctor(i)); err != nil {
			d.retreatBack()
			d.unwind(i, err)
			return err
		}
		d.size++
	}
	return nil
}

func (d *Deque[T]) unwind(built int, err error) {
	log.Debugw("rollback", "op", "construct", "built", built, "error", err)
	d.Release()
}

// copyWith builds a deque with the same bucket layout as d, using a for
// storage and ctor to build each element from its source slot.
func (d *Deque[T]) copyWith(a alloc.Allocator[T], ctor func(src *T) alloc.Constructor[T]) (*Deque[T], error) {
	c := &Deque[T]{alloc: a, clone: d.clone}
	if d.size == 0 {
		return c, nil
	}
	occupied := d.outerEnd - d.outerStart + 1
	if err := c.layout(len(d.outer), d.outerStart, occupied, d.innerStart); err != nil {
		return nil, err
	}
	err := c.construct(d.size, func(i int) alloc.Constructor[T] {
		return ctor(d.slot(i))
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (d *Deque[T]) copier() func(src *T) alloc.Constructor[T] {
	return func(src *T) alloc.Constructor[T] {
		return func() (T, error) { return d.clone(*src) }
	}
}

func relocator[T any](src *T) alloc.Constructor[T] {
	return func() (T, error) { return *src, nil }
}

// Clone returns a deep copy of the deque. Elements are copied with the
// configured Clone function into storage from the allocator's SelectOnCopy.
// On failure no storage is leaked and d is unchanged.
func (d *Deque[T]) Clone() (*Deque[T], error) {
	return d.copyWith(d.alloc.SelectOnCopy(), d.copier())
}

// Assign replaces the contents of d with a copy of other. The copy is built
// completely before d is touched, so on failure d is unchanged. d adopts the
// allocator of other when its traits ask for propagation on copy assignment.
func (d *Deque[T]) Assign(other *Deque[T]) error {
	if d == other {
		return nil
	}
	a := d.alloc
	if other.alloc.Traits().PropagateOnCopyAssignment {
		a = other.alloc
	}
	tmp, err := other.copyWith(a, other.copier())
	if err != nil {
		return err
	}
	d.commit(tmp)
	return nil
}

// Move transfers the contents and allocator of d into a new deque and leaves
// d empty without storage. No element is copied.
func (d *Deque[T]) Move() *Deque[T] {
	m := &Deque[T]{alloc: d.alloc, clone: d.clone}
	m.swapStorage(d)
	return m
}

// MoveFrom replaces the contents of d with those of other and leaves other
// empty.
//
// When the allocator d ends up with (other's, if its traits propagate on move
// assignment, otherwise d's own) compares equal to other's, storage is
// transferred without touching elements. Otherwise each element is moved
// into fresh buckets from d's allocator and other's storage is released. On
// failure both deques are unchanged.
func (d *Deque[T]) MoveFrom(other *Deque[T]) error {
	if d == other {
		return nil
	}
	a := d.alloc
	if other.alloc.Traits().PropagateOnMoveAssignment {
		a = other.alloc
	}
	var tmp *Deque[T]
	if a.Equal(other.alloc) {
		tmp = &Deque[T]{alloc: a, clone: d.clone}
		tmp.swapStorage(other)
	} else {
		log.Debugw("relocate", "size", other.size)
		var err error
		tmp, err = other.copyWith(a, relocator[T])
		if err != nil {
			return err
		}
		other.Release()
	}
	d.commit(tmp)
	return nil
}

// Swap exchanges the contents of two deques. Allocators are exchanged when
// d's traits propagate on swap; otherwise they must compare equal and
// errors.ErrAllocatorMismatch is returned if they do not.
func (d *Deque[T]) Swap(other *Deque[T]) error {
	if d == other {
		return nil
	}
	switch {
	case d.alloc.Traits().PropagateOnSwap:
		d.alloc, other.alloc = other.alloc, d.alloc
	case !d.alloc.Equal(other.alloc):
		return errors.ErrAllocatorMismatch
	}
	d.swapStorage(other)
	return nil
}

// commit installs the storage and allocator of tmp into d and releases what d
// held before through its previous allocator.
func (d *Deque[T]) commit(tmp *Deque[T]) {
	d.swapStorage(tmp)
	d.alloc, tmp.alloc = tmp.alloc, d.alloc
	tmp.Release()
}

func (d *Deque[T]) swapStorage(other *Deque[T]) {
	d.outer, other.outer = other.outer, d.outer
	d.size, other.size = other.size, d.size
	d.innerStart, other.innerStart = other.innerStart, d.innerStart
	d.innerEnd, other.innerEnd = other.innerEnd, d.innerEnd
	d.outerStart, other.outerStart = other.outerStart, d.outerStart
	d.outerEnd, other.outerEnd = other.outerEnd, d.outerEnd
	d.memStart, other.memStart = other.memStart, d.memStart
	d.memEnd, other.memEnd = other.memEnd, d.memEnd
}

// Release destroys every element, returns all buckets and the outer index to
// the allocator and leaves d empty without storage. The deque stays usable.
func (d *Deque[T]) Release() {
	if d.outer == nil {
		return
	}
	for i := 0; i < d.size; i++ {
		d.alloc.Destroy(d.slot(i))
	}
	for i := d.memStart; i <= d.memEnd; i++ {
		d.alloc.Deallocate(d.outer[i])
		d.outer[i] = nil
	}
	d.alloc.DeallocateIndex(d.outer)
	d.outer = nil
	d.size = 0
	d.innerStart, d.innerEnd = 0, 0
	d.outerStart, d.outerEnd = 0, 0
	d.memStart, d.memEnd = 0, 0
}

// Clear destroys every element but keeps the allocated buckets.
func (d *Deque[T]) Clear() {
	for d.size > 0 {
		d.PopBack()
	}
}

// Shrink returns allocated buckets that hold no elements to the allocator and
// reallocates the outer index to fit the occupied range. An empty deque gives
// up all of its storage.
func (d *Deque[T]) Shrink() error {
	if d.outer == nil {
		return nil
	}
	if d.size == 0 {
		d.Release()
		return nil
	}
	occupied := d.outerEnd - d.outerStart + 1
	capacity := max(minIndexCapacity, 2*occupied)
	outer, err := d.alloc.AllocateIndex(capacity)
	if err != nil {
		return err
	}
	for i := d.memStart; i < d.outerStart; i++ {
		d.alloc.Deallocate(d.outer[i])
		d.outer[i] = nil
	}
	for i := d.outerEnd + 1; i <= d.memEnd; i++ {
		d.alloc.Deallocate(d.outer[i])
		d.outer[i] = nil
	}
	start := (capacity - occupied) / 2
	copy(outer[start:], d.outer[d.outerStart:d.outerEnd+1])
	d.alloc.DeallocateIndex(d.outer)

	shift := start - d.outerStart
	d.outer = outer
	d.outerStart += shift
	d.outerEnd += shift
	d.memStart, d.memEnd = d.outerStart, d.outerEnd
	return nil
}
