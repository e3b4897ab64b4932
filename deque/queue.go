package deque

// Queue is the double-ended queue contract: elements are added and removed
// at either end. Front and Back return nil on an empty queue; the Pop methods
// require a non-empty one.
type Queue[T any] interface {
	// Back returns the last element or a nil pointer.
	Back() *T
	// Front returns the first element or a nil pointer.
	Front() *T
	// Len returns the number of elements.
	Len() int
	// PushBack adds an element to the back.
	PushBack(v T) error
	// PushFront adds an element to the front.
	PushFront(v T) error
	// PopBack removes the last element and returns it.
	PopBack() T
	// PopFront removes the first element and returns it.
	PopFront() T
}

var _ Queue[int] = (*Deque[int])(nil)
