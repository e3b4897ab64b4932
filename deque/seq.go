package deque

import (
	"iter"
)

// All returns an iterator over index-value pairs from front to back. The
// deque must not be modified during iteration.
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < d.size; i++ {
			if !yield(i, *d.slot(i)) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements from front to back.
func (d *Deque[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < d.size; i++ {
			if !yield(*d.slot(i)) {
				return
			}
		}
	}
}

// Backward returns an iterator over index-value pairs from back to front.
func (d *Deque[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := d.size - 1; i >= 0; i-- {
			if !yield(i, *d.slot(i)) {
				return
			}
		}
	}
}

// Slice copies the elements into a new slice.
func (d *Deque[T]) Slice() []T {
	s := make([]T, 0, d.size)
	for v := range d.Values() {
		s = append(s, v)
	}
	return s
}

// Equal returns whether both deques hold the same elements in the same
// order. It is not a method so that Deque is not restricted to comparable
// elements.
func Equal[T comparable](a, b *Deque[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is Equal with a custom element comparison.
func EqualFunc[T any](a, b *Deque[T], eq func(T, T) bool) bool {
	if a.size != b.size {
		return false
	}
	for i := 0; i < a.size; i++ {
		if !eq(*a.slot(i), *b.slot(i)) {
			return false
		}
	}
	return true
}

// Index returns the position of the first occurrence of v, or -1.
func Index[T comparable](d *Deque[T], v T) int {
	for i, e := range d.All() {
		if e == v {
			return i
		}
	}
	return -1
}

// Contains returns whether v is in the deque.
func Contains[T comparable](d *Deque[T], v T) bool {
	return Index(d, v) >= 0
}
