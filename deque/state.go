package deque

// State classifies how a deque currently holds its storage.
type State uint8

const (
	// Unallocated deques own no index and no buckets.
	Unallocated State = iota
	// Drained deques hold no elements but keep allocated buckets.
	Drained
	// Single deques keep all elements in one bucket.
	Single
	// Spanning deques spread elements over several buckets.
	Spanning
)

func (s State) String() string {
	switch s {
	case Unallocated:
		return "Unallocated"
	case Drained:
		return "Drained"
	case Single:
		return "Single"
	case Spanning:
		return "Spanning"
	default:
		return "Unknown"
	}
}

// State returns the storage state of the deque.
func (d *Deque[T]) State() State {
	switch {
	case d.outer == nil:
		return Unallocated
	case d.size == 0:
		return Drained
	case d.outerStart == d.outerEnd:
		return Single
	default:
		return Spanning
	}
}

// Buckets returns the number of allocated buckets, including those that hold
// no elements.
func (d *Deque[T]) Buckets() int {
	if d.outer == nil {
		return 0
	}
	return d.memEnd - d.memStart + 1
}
