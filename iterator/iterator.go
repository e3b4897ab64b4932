// Package iterator holds algorithms over random-access positions such as the
// iterators of package deque. A range is given as [first, last) and both ends
// must come from the same container.
package iterator

import (
	"errors"
	"iter"
)

var ErrDone = errors.New("no more items in iterator")

// Readable is a position that can be read and moved.
type Readable[T any, I any] interface {
	Value() T
	Add(n int) I
	Distance(other I) int
	Equal(other I) bool
}

// RandomAccess is a Readable position that can also be written.
type RandomAccess[T any, I any] interface {
	Readable[T, I]
	Set(v T)
}

// Iterator pulls one item at a time until it returns ErrDone.
type Iterator[T any] interface {
	Next() (*T, error)
}

// RangeIterator pulls copies of the values in [first, last).
type RangeIterator[T any, I Readable[T, I]] struct {
	pos  I
	last I
}

func NewRangeIterator[T any, I Readable[T, I]](first, last I) *RangeIterator[T, I] {
	return &RangeIterator[T, I]{
		pos:  first,
		last: last,
	}
}

func (r *RangeIterator[T, I]) Next() (*T, error) {
	if r.pos.Equal(r.last) {
		return nil, ErrDone
	}
	v := r.pos.Value()
	r.pos = r.pos.Add(1)
	return &v, nil
}

type SliceIterator[T any] struct {
	items []T
	idx   int
}

func NewSliceIterator[T any](items []T) *SliceIterator[T] {
	return &SliceIterator[T]{
		items: items,
		idx:   0,
	}
}

func (i *SliceIterator[T]) Next() (*T, error) {
	if i.idx < len(i.items) {
		i.idx += 1
		return &i.items[i.idx-1], nil
	} else {
		return nil, ErrDone
	}
}

// Drain pulls every remaining item from it.
func Drain[T any](it Iterator[T]) ([]T, error) {
	var result []T
	for {
		item, err := it.Next()
		if errors.Is(err, ErrDone) {
			return result, nil
		}
		if err != nil {
			return result, err
		}
		result = append(result, *item)
	}
}

// Values returns a range function over [first, last).
func Values[T any, I Readable[T, I]](first, last I) iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := first; !it.Equal(last); it = it.Add(1) {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Collect copies [first, last) into a new slice.
func Collect[T any, I Readable[T, I]](first, last I) []T {
	result := make([]T, 0, last.Distance(first))
	for v := range Values[T](first, last) {
		result = append(result, v)
	}
	return result
}

// Find returns the first position in [first, last) holding v, or last.
func Find[T comparable, I Readable[T, I]](first, last I, v T) I {
	return FindFunc(first, last, func(e T) bool { return e == v })
}

// FindFunc returns the first position in [first, last) satisfying pred, or
// last.
func FindFunc[T any, I Readable[T, I]](first, last I, pred func(T) bool) I {
	it := first
	for ; !it.Equal(last); it = it.Add(1) {
		if pred(it.Value()) {
			break
		}
	}
	return it
}

// Count returns how many positions in [first, last) hold v.
func Count[T comparable, I Readable[T, I]](first, last I, v T) int {
	n := 0
	for e := range Values[T](first, last) {
		if e == v {
			n++
		}
	}
	return n
}

// Fill overwrites every position in [first, last) with v.
func Fill[T any, I RandomAccess[T, I]](first, last I, v T) {
	for it := first; !it.Equal(last); it = it.Add(1) {
		it.Set(v)
	}
}

// Reverse reverses the values in [first, last) in place.
func Reverse[T any, I RandomAccess[T, I]](first, last I) {
	for n := last.Distance(first); n > 1; n -= 2 {
		last = last.Add(-1)
		a, b := first.Value(), last.Value()
		first.Set(b)
		last.Set(a)
		first = first.Add(1)
	}
}
