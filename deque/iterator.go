package deque

import (
	"cmp"

	"github.com/fission-codes/go-bucket-deque/util"
)

// Iterator is a random-access position in a deque: a bucket index and a slot
// within that bucket. Positions are ordered by bucket*BucketSize+slot.
//
// An Iterator holds the outer index it was created from and is invalidated by
// any operation that reallocates that index or changes which buckets are
// occupied: pushes that grow the deque, pops, Insert, Erase, Shrink and
// Release. Dereferencing End or any position outside [Begin, End) is a
// programming error.
type Iterator[T any] struct {
	outer  [][]T
	bucket int
	slot   int
}

func (it Iterator[T]) key() int {
	return it.bucket*BucketSize + it.slot
}

// Value returns the element at the iterator.
func (it Iterator[T]) Value() T {
	return it.outer[it.bucket][it.slot]
}

// Ptr returns a pointer to the element at the iterator.
func (it Iterator[T]) Ptr() *T {
	return &it.outer[it.bucket][it.slot]
}

// Set overwrites the element at the iterator.
func (it Iterator[T]) Set(v T) {
	it.outer[it.bucket][it.slot] = v
}

// Add returns the iterator n positions further; n may be negative. Iterators
// of a deque without storage do not move.
func (it Iterator[T]) Add(n int) Iterator[T] {
	if it.outer == nil {
		return it
	}
	k := it.key() + n
	it.bucket = util.FloorDiv(k, BucketSize)
	it.slot = util.FloorMod(k, BucketSize)
	return it
}

// Sub returns the iterator n positions back.
func (it Iterator[T]) Sub(n int) Iterator[T] {
	return it.Add(-n)
}

// Next returns the following position.
func (it Iterator[T]) Next() Iterator[T] {
	if it.slot == BucketSize-1 {
		it.bucket++
		it.slot = 0
	} else {
		it.slot++
	}
	return it
}

// Prev returns the preceding position.
func (it Iterator[T]) Prev() Iterator[T] {
	if it.slot == 0 {
		it.bucket--
		it.slot = BucketSize - 1
	} else {
		it.slot--
	}
	return it
}

// Distance returns the number of positions from other to it.
func (it Iterator[T]) Distance(other Iterator[T]) int {
	return it.key() - other.key()
}

// Compare returns -1, 0 or +1 as it is before, at or after other.
func (it Iterator[T]) Compare(other Iterator[T]) int {
	return cmp.Compare(it.key(), other.key())
}

func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.key() == other.key()
}

func (it Iterator[T]) Less(other Iterator[T]) bool {
	return it.key() < other.key()
}

// Begin returns an iterator at the first element.
func (d *Deque[T]) Begin() Iterator[T] {
	if d.outer == nil {
		return Iterator[T]{}
	}
	return Iterator[T]{outer: d.outer, bucket: d.outerStart, slot: d.innerStart}
}

// End returns an iterator one past the last element. It is comparable with
// every other iterator of the deque, including on an empty deque.
func (d *Deque[T]) End() Iterator[T] {
	return d.Begin().Add(d.size)
}

// ConstIterator is an Iterator that cannot modify the deque.
type ConstIterator[T any] struct {
	it Iterator[T]
}

func (c ConstIterator[T]) Value() T                            { return c.it.Value() }
func (c ConstIterator[T]) Add(n int) ConstIterator[T]          { return ConstIterator[T]{c.it.Add(n)} }
func (c ConstIterator[T]) Sub(n int) ConstIterator[T]          { return ConstIterator[T]{c.it.Sub(n)} }
func (c ConstIterator[T]) Next() ConstIterator[T]              { return ConstIterator[T]{c.it.Next()} }
func (c ConstIterator[T]) Prev() ConstIterator[T]              { return ConstIterator[T]{c.it.Prev()} }
func (c ConstIterator[T]) Distance(other ConstIterator[T]) int { return c.it.Distance(other.it) }
func (c ConstIterator[T]) Compare(other ConstIterator[T]) int  { return c.it.Compare(other.it) }
func (c ConstIterator[T]) Equal(other ConstIterator[T]) bool   { return c.it.Equal(other.it) }
func (c ConstIterator[T]) Less(other ConstIterator[T]) bool    { return c.it.Less(other.it) }

// CBegin returns a read-only iterator at the first element.
func (d *Deque[T]) CBegin() ConstIterator[T] {
	return ConstIterator[T]{d.Begin()}
}

// CEnd returns a read-only iterator one past the last element.
func (d *Deque[T]) CEnd() ConstIterator[T] {
	return ConstIterator[T]{d.End()}
}

// ReverseIterator walks a deque from back to front. It wraps the forward
// position just after the element it refers to, so RBegin wraps End and REnd
// wraps Begin.
type ReverseIterator[T any] struct {
	base Iterator[T]
}

// Base returns the underlying forward iterator.
func (r ReverseIterator[T]) Base() Iterator[T] {
	return r.base
}

func (r ReverseIterator[T]) Value() T {
	return r.base.Prev().Value()
}

func (r ReverseIterator[T]) Ptr() *T {
	return r.base.Prev().Ptr()
}

func (r ReverseIterator[T]) Set(v T) {
	r.base.Prev().Set(v)
}

func (r ReverseIterator[T]) Add(n int) ReverseIterator[T] {
	return ReverseIterator[T]{r.base.Sub(n)}
}

func (r ReverseIterator[T]) Sub(n int) ReverseIterator[T] {
	return ReverseIterator[T]{r.base.Add(n)}
}

func (r ReverseIterator[T]) Next() ReverseIterator[T] {
	return ReverseIterator[T]{r.base.Prev()}
}

func (r ReverseIterator[T]) Prev() ReverseIterator[T] {
	return ReverseIterator[T]{r.base.Next()}
}

func (r ReverseIterator[T]) Distance(other ReverseIterator[T]) int {
	return other.base.Distance(r.base)
}

func (r ReverseIterator[T]) Compare(other ReverseIterator[T]) int {
	return other.base.Compare(r.base)
}

func (r ReverseIterator[T]) Equal(other ReverseIterator[T]) bool {
	return r.base.Equal(other.base)
}

func (r ReverseIterator[T]) Less(other ReverseIterator[T]) bool {
	return other.base.Less(r.base)
}

// RBegin returns a reverse iterator at the last element.
func (d *Deque[T]) RBegin() ReverseIterator[T] {
	return ReverseIterator[T]{d.End()}
}

// REnd returns a reverse iterator one before the first element.
func (d *Deque[T]) REnd() ReverseIterator[T] {
	return ReverseIterator[T]{d.Begin()}
}

// ConstReverseIterator is a ReverseIterator that cannot modify the deque.
type ConstReverseIterator[T any] struct {
	r ReverseIterator[T]
}

func (c ConstReverseIterator[T]) Value() T { return c.r.Value() }

func (c ConstReverseIterator[T]) Add(n int) ConstReverseIterator[T] {
	return ConstReverseIterator[T]{c.r.Add(n)}
}

func (c ConstReverseIterator[T]) Sub(n int) ConstReverseIterator[T] {
	return ConstReverseIterator[T]{c.r.Sub(n)}
}

func (c ConstReverseIterator[T]) Next() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{c.r.Next()}
}

func (c ConstReverseIterator[T]) Prev() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{c.r.Prev()}
}

func (c ConstReverseIterator[T]) Distance(other ConstReverseIterator[T]) int {
	return c.r.Distance(other.r)
}

func (c ConstReverseIterator[T]) Compare(other ConstReverseIterator[T]) int {
	return c.r.Compare(other.r)
}

func (c ConstReverseIterator[T]) Equal(other ConstReverseIterator[T]) bool {
	return c.r.Equal(other.r)
}

func (c ConstReverseIterator[T]) Less(other ConstReverseIterator[T]) bool {
	return c.r.Less(other.r)
}

// CRBegin returns a read-only reverse iterator at the last element.
func (d *Deque[T]) CRBegin() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{d.RBegin()}
}

// CREnd returns a read-only reverse iterator one before the first element.
func (d *Deque[T]) CREnd() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{d.REnd()}
}
