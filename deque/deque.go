// Package deque implements a double-ended, random-access sequence backed by
// fixed-size buckets.
//
// Elements live in buckets of BucketSize slots. Buckets are reached through
// an outer index of bucket handles, so growing at either end never moves an
// element: only the index is reallocated, and only bucket handles are copied
// when that happens. Buckets emptied by pops stay allocated and are reused by
// later pushes until Shrink or Release is called.
//
// A Deque is not safe for concurrent use.
package deque

import (
	"fmt"

	"github.com/fission-codes/go-bucket-deque/alloc"
	"github.com/fission-codes/go-bucket-deque/errors"
	golog "github.com/ipfs/go-log/v2"
)

var log = golog.Logger("go-bucket-deque")

// BucketSize is the number of element slots in every bucket.
const BucketSize = 5

// minIndexCapacity is the size of the outer index allocated on first insert.
const minIndexCapacity = 2

// Config holds the policies a Deque is built with.
type Config[T any] struct {
	// Allocator provides buckets, the outer index and element lifecycle.
	Allocator alloc.Allocator[T]
	// Clone copies an element. It is used when a deque is copied, filled from
	// a value or built from a slice. Pushes store their argument as is.
	Clone func(T) (T, error)
}

// DefaultConfig returns a heap allocator and plain assignment for copies.
func DefaultConfig[T any]() Config[T] {
	return Config[T]{
		Allocator: alloc.NewHeap[T](),
		Clone:     assign[T],
	}
}

func assign[T any](v T) (T, error) {
	return v, nil
}

// Option modifies the Config of a new Deque.
type Option[T any] func(*Config[T])

// WithAllocator sets the allocator.
func WithAllocator[T any](a alloc.Allocator[T]) Option[T] {
	return func(c *Config[T]) { c.Allocator = a }
}

// WithCloner sets the element copy function.
func WithCloner[T any](clone func(T) (T, error)) Option[T] {
	return func(c *Config[T]) { c.Clone = clone }
}

// WithConfig replaces the whole configuration. Nil fields keep their defaults.
func WithConfig[T any](config Config[T]) Option[T] {
	return func(c *Config[T]) {
		if config.Allocator != nil {
			c.Allocator = config.Allocator
		}
		if config.Clone != nil {
			c.Clone = config.Clone
		}
	}
}

func newConfig[T any](opts []Option[T]) Config[T] {
	config := DefaultConfig[T]()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Allocator == nil {
		config.Allocator = alloc.NewHeap[T]()
	}
	if config.Clone == nil {
		config.Clone = assign[T]
	}
	return config
}

// Deque is a double-ended queue with constant time indexing.
//
// The element at logical position i lives in bucket
// outerStart+(innerStart+i)/BucketSize at slot (innerStart+i)%BucketSize.
// Buckets in [memStart, memEnd] are allocated; every other index entry is nil.
// The occupied range [outerStart, outerEnd] is always inside the allocated
// range when the deque holds elements. When it is empty but still owns
// storage, (outerEnd, innerEnd) is the slot just before (outerStart,
// innerStart).
//
// The zero value is not usable; create deques with New or one of the
// constructors.
type Deque[T any] struct {
	alloc alloc.Allocator[T]
	clone func(T) (T, error)

	outer [][]T
	size  int

	innerStart, innerEnd int
	outerStart, outerEnd int
	memStart, memEnd     int
}

// New returns an empty deque. No storage is allocated until the first
// element is inserted.
func New[T any](opts ...Option[T]) *Deque[T] {
	config := newConfig(opts)
	return &Deque[T]{
		alloc: config.Allocator,
		clone: config.Clone,
	}
}

// Len returns the number of elements in the deque.
func (d *Deque[T]) Len() int {
	return d.size
}

// Empty returns whether the deque holds no elements.
func (d *Deque[T]) Empty() bool {
	return d.size == 0
}

// Allocator returns the allocator the deque currently uses.
func (d *Deque[T]) Allocator() alloc.Allocator[T] {
	return d.alloc
}

func (d *Deque[T]) slot(i int) *T {
	pos := d.innerStart + i
	return &d.outer[d.outerStart+pos/BucketSize][pos%BucketSize]
}

// Index returns a pointer to the i-th element. It does not check bounds: i
// must be in [0, Len()).
func (d *Deque[T]) Index(i int) *T {
	return d.slot(i)
}

// At returns a pointer to the i-th element, or an error wrapping
// errors.ErrOutOfRange if i is not in [0, Len()).
func (d *Deque[T]) At(i int) (*T, error) {
	if i < 0 || i >= d.size {
		return nil, fmt.Errorf("%w: index %d with length %d", errors.ErrOutOfRange, i, d.size)
	}
	return d.slot(i), nil
}

// Front returns the first element of the deque or a nil pointer.
func (d *Deque[T]) Front() *T {
	if d.size == 0 {
		return nil
	}
	return &d.outer[d.outerStart][d.innerStart]
}

// Back returns the last element of the deque or a nil pointer.
func (d *Deque[T]) Back() *T {
	if d.size == 0 {
		return nil
	}
	return &d.outer[d.outerEnd][d.innerEnd]
}

// Validate checks the bookkeeping of the deque and returns an error wrapping
// errors.ErrInvariant describing the first inconsistency found.
func (d *Deque[T]) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", errors.ErrInvariant, fmt.Sprintf(format, args...))
	}
	if d.outer == nil {
		if d.size != 0 {
			return fail("%d elements without storage", d.size)
		}
		return nil
	}
	if d.memStart < 0 || d.memEnd >= len(d.outer) || d.memStart > d.memEnd {
		return fail("allocated range [%d, %d] outside index of %d", d.memStart, d.memEnd, len(d.outer))
	}
	if d.innerStart < 0 || d.innerStart >= BucketSize || d.innerEnd < 0 || d.innerEnd >= BucketSize {
		return fail("slot offsets %d, %d outside bucket", d.innerStart, d.innerEnd)
	}
	first := d.outerStart*BucketSize + d.innerStart
	last := d.outerEnd*BucketSize + d.innerEnd
	if last-first+1 != d.size {
		return fail("range %d..%d does not hold %d elements", first, last, d.size)
	}
	if d.size > 0 && (d.outerStart < d.memStart || d.outerEnd > d.memEnd) {
		return fail("occupied range [%d, %d] outside allocated range [%d, %d]",
			d.outerStart, d.outerEnd, d.memStart, d.memEnd)
	}
	for i, bucket := range d.outer {
		allocated := i >= d.memStart && i <= d.memEnd
		if allocated && len(bucket) != BucketSize {
			return fail("bucket %d has %d slots", i, len(bucket))
		}
		if !allocated && bucket != nil {
			return fail("bucket %d outside allocated range is set", i)
		}
	}
	return nil
}
