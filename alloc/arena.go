package alloc

import (
	"fmt"

	"github.com/fission-codes/go-bucket-deque/errors"
)

// ArenaConfig configures an Arena.
type ArenaConfig struct {
	// Name identifies the arena in logs.
	Name string
	// Traits is the propagation policy reported by the arena.
	Traits Traits
	// FreshOnCopy makes SelectOnCopy return a new, empty arena with the same
	// configuration instead of the arena itself.
	FreshOnCopy bool
	// MaxBlocks caps the number of outstanding element blocks. Zero means
	// unlimited.
	MaxBlocks int
}

// DefaultArenaConfig returns an unlimited, non-propagating configuration.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		Name: "arena",
	}
}

// Arena is a stateful allocator that recycles released blocks. Two arenas
// only compare equal when they are the same arena, so containers using
// different arenas cannot steal each other's storage.
//
// An Arena is not safe for concurrent use.
type Arena[T any] struct {
	config      ArenaConfig
	free        map[int][][]T
	outstanding int
	indexes     int
}

// NewArena returns an empty arena.
func NewArena[T any](config ArenaConfig) *Arena[T] {
	return &Arena[T]{
		config: config,
		free:   make(map[int][][]T),
	}
}

// Outstanding returns the number of element blocks handed out and not yet
// returned.
func (a *Arena[T]) Outstanding() int {
	return a.outstanding
}

// OutstandingIndexes returns the number of index arrays handed out and not
// yet returned.
func (a *Arena[T]) OutstandingIndexes() int {
	return a.indexes
}

// Recycled returns the number of blocks of size n waiting for reuse.
func (a *Arena[T]) Recycled(n int) int {
	return len(a.free[n])
}

func (a *Arena[T]) Allocate(n int) ([]T, error) {
	if a.config.MaxBlocks > 0 && a.outstanding >= a.config.MaxBlocks {
		return nil, fmt.Errorf("%w: %s holds %d blocks", errors.ErrArenaExhausted, a.config.Name, a.outstanding)
	}
	a.outstanding++
	if blocks := a.free[n]; len(blocks) > 0 {
		block := blocks[len(blocks)-1]
		blocks[len(blocks)-1] = nil
		a.free[n] = blocks[:len(blocks)-1]
		return block, nil
	}
	return make([]T, n), nil
}

func (a *Arena[T]) Deallocate(block []T) {
	if block == nil {
		return
	}
	a.outstanding--
	clear(block)
	a.free[len(block)] = append(a.free[len(block)], block)
}

func (a *Arena[T]) AllocateIndex(n int) ([][]T, error) {
	a.indexes++
	return make([][]T, n), nil
}

func (a *Arena[T]) DeallocateIndex(index [][]T) {
	if index == nil {
		return
	}
	a.indexes--
}

func (a *Arena[T]) Construct(slot *T, ctor Constructor[T]) error {
	return construct(slot, ctor)
}

func (a *Arena[T]) Destroy(slot *T) {
	destroy(slot)
}

func (a *Arena[T]) Traits() Traits {
	return a.config.Traits
}

func (a *Arena[T]) SelectOnCopy() Allocator[T] {
	if !a.config.FreshOnCopy {
		return a
	}
	log.Debugw("Arena", "method", "SelectOnCopy", "name", a.config.Name)
	return NewArena[T](a.config)
}

func (a *Arena[T]) Equal(other Allocator[T]) bool {
	if i, ok := other.(*Instrumented[T]); ok {
		other = i.inner
	}
	o, ok := other.(*Arena[T])
	return ok && o == a
}
