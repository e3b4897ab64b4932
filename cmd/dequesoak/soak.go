package main

import (
	"context"
	"encoding/binary"
	stderrors "errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/fission-codes/go-bucket-deque/alloc"
	"github.com/fission-codes/go-bucket-deque/deque"
	"github.com/fission-codes/go-bucket-deque/errors"
	"github.com/fission-codes/go-bucket-deque/iterator"
	"github.com/fission-codes/go-bucket-deque/mermaid"
	"github.com/fission-codes/go-bucket-deque/stats"
	"github.com/zeebo/xxh3"
)

// Config controls a soak run.
type Config struct {
	Seed        int64
	Ops         int
	Arena       bool
	MaxBlocks   int
	BucketCheck bool
	Diagram     bool
	LogLevel    string
}

func DefaultConfig() Config {
	return Config{
		Seed:     1,
		Ops:      100000,
		LogLevel: "info",
	}
}

// Result summarizes a completed run.
type Result struct {
	Ops      int
	Len      int
	Rejected int
	Buckets  int
	Digest   uint64
}

type op int

const (
	opPushBack op = iota
	opPushFront
	opPopBack
	opPopFront
	opInsert
	opErase
	opAt
	opReverse
	opClone
	opClear
	opShrink
	opCount
)

var opNames = [opCount]string{
	"PushBack", "PushFront", "PopBack", "PopFront", "Insert", "Erase",
	"At", "Reverse", "Clone", "Clear", "Shrink",
}

func (o op) String() string {
	return opNames[o]
}

// weights biases the mix towards growth so runs reach many buckets.
var weights = [opCount]int{30, 30, 12, 12, 6, 6, 10, 1, 1, 1, 1}

func pick(rng *rand.Rand) op {
	total := 0
	for _, w := range weights {
		total += w
	}
	n := rng.Intn(total)
	for i, w := range weights {
		if n < w {
			return op(i)
		}
		n -= w
	}
	return opAt
}

type soak struct {
	config  Config
	rng     *rand.Rand
	stats   stats.Stats
	arena   *alloc.Arena[int]
	deque   *deque.Deque[int]
	ref     []int
	diagram *mermaid.StateDiagram
	result  Result
}

func newSoak(config Config, recorder stats.Stats) *soak {
	var inner alloc.Allocator[int] = alloc.NewHeap[int]()
	s := &soak{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
		stats:  recorder,
	}
	if config.Arena {
		s.arena = alloc.NewArena[int](alloc.ArenaConfig{Name: "soak", MaxBlocks: config.MaxBlocks})
		inner = s.arena
	}
	a := alloc.NewInstrumented(inner, recorder.WithContext("alloc"))
	s.deque = deque.New(deque.WithAllocator[int](a))
	if config.Diagram {
		s.diagram = mermaid.OpenStateDiagram("deque", recorder.Logger())
	}
	return s
}

// Soak runs config.Ops random operations against a deque and a reference
// slice and fails on the first difference between them.
func Soak(ctx context.Context, config Config, recorder stats.Stats) (*Result, error) {
	s := newSoak(config, recorder)
	if s.diagram != nil {
		defer s.diagram.Close()
	}
	for step := 0; step < config.Ops; step++ {
		if err := ctx.Err(); err != nil {
			return &s.result, err
		}
		if err := s.step(step); err != nil {
			return &s.result, err
		}
	}
	if err := s.compare(config.Ops); err != nil {
		return &s.result, err
	}
	s.result.Len = s.deque.Len()
	s.result.Buckets = s.deque.Buckets()
	s.result.Digest = digest(s.deque)
	s.deque.Release()
	if s.arena != nil && (s.arena.Outstanding() != 0 || s.arena.OutstandingIndexes() != 0) {
		return &s.result, fmt.Errorf("%w: %d blocks and %d indexes outstanding after release",
			errors.ErrDiverged, s.arena.Outstanding(), s.arena.OutstandingIndexes())
	}
	return &s.result, nil
}

func (s *soak) step(step int) error {
	o := pick(s.rng)
	before := s.deque.State()
	if err := s.apply(o); err != nil {
		if !stderrors.Is(err, errors.ErrArenaExhausted) {
			return fmt.Errorf("step %d %s: %w", step, o, err)
		}
		s.result.Rejected++
		s.stats.Log("Rejected")
	}
	s.stats.Log(o.String())
	s.result.Ops++
	if s.diagram != nil {
		s.diagram.Transition(o.String(), before.String(), s.deque.State().String())
	}

	if s.deque.Len() != len(s.ref) {
		return fmt.Errorf("%w: step %d %s: length %d, want %d", errors.ErrDiverged, step, o, s.deque.Len(), len(s.ref))
	}
	if len(s.ref) > 0 && (*s.deque.Front() != s.ref[0] || *s.deque.Back() != s.ref[len(s.ref)-1]) {
		return fmt.Errorf("%w: step %d %s: ends differ", errors.ErrDiverged, step, o)
	}
	if s.config.BucketCheck {
		if err := s.deque.Validate(); err != nil {
			return fmt.Errorf("step %d %s: %w", step, o, err)
		}
		return s.compare(step)
	}
	return nil
}

func (s *soak) apply(o op) error {
	d := s.deque
	v := s.rng.Int()
	switch o {
	case opPushBack:
		if err := d.PushBack(v); err != nil {
			return err
		}
		s.ref = append(s.ref, v)
	case opPushFront:
		if err := d.PushFront(v); err != nil {
			return err
		}
		s.ref = slices.Insert(s.ref, 0, v)
	case opPopBack:
		if len(s.ref) == 0 {
			return nil
		}
		if got, want := d.PopBack(), s.ref[len(s.ref)-1]; got != want {
			return fmt.Errorf("%w: popped %d, want %d", errors.ErrDiverged, got, want)
		}
		s.ref = s.ref[:len(s.ref)-1]
	case opPopFront:
		if len(s.ref) == 0 {
			return nil
		}
		if got, want := d.PopFront(), s.ref[0]; got != want {
			return fmt.Errorf("%w: popped %d, want %d", errors.ErrDiverged, got, want)
		}
		s.ref = s.ref[1:]
	case opInsert:
		k := s.rng.Intn(len(s.ref) + 1)
		if _, err := d.Insert(d.Begin().Add(k), v); err != nil {
			return err
		}
		s.ref = slices.Insert(s.ref, k, v)
	case opErase:
		if len(s.ref) == 0 {
			return nil
		}
		k := s.rng.Intn(len(s.ref))
		d.Erase(d.Begin().Add(k))
		s.ref = slices.Delete(s.ref, k, k+1)
	case opAt:
		k := s.rng.Intn(len(s.ref) + 1)
		got, err := d.At(k)
		if k == len(s.ref) {
			if !stderrors.Is(err, errors.ErrOutOfRange) {
				return fmt.Errorf("%w: At(%d) on length %d returned %v", errors.ErrDiverged, k, len(s.ref), err)
			}
			return nil
		}
		if err != nil {
			return err
		}
		if *got != s.ref[k] {
			return fmt.Errorf("%w: At(%d) = %d, want %d", errors.ErrDiverged, k, *got, s.ref[k])
		}
	case opReverse:
		iterator.Reverse[int](d.Begin(), d.End())
		slices.Reverse(s.ref)
	case opClone:
		c, err := d.Clone()
		if err != nil {
			return err
		}
		defer c.Release()
		if !deque.Equal(c, d) {
			return fmt.Errorf("%w: clone differs from source", errors.ErrDiverged)
		}
	case opClear:
		d.Clear()
		s.ref = s.ref[:0]
	case opShrink:
		if err := d.Shrink(); err != nil {
			return err
		}
	}
	return nil
}

func (s *soak) compare(step int) error {
	got := iterator.Collect[int](s.deque.Begin(), s.deque.End())
	if !slices.Equal(got, s.ref) {
		i := 0
		for i < len(got) && i < len(s.ref) && got[i] == s.ref[i] {
			i++
		}
		return fmt.Errorf("%w: step %d: contents differ at index %d", errors.ErrDiverged, step, i)
	}
	return nil
}

// digest hashes the contents front to back as little-endian 64-bit words.
func digest(d *deque.Deque[int]) uint64 {
	h := xxh3.New()
	buf := make([]byte, 8)
	for v := range d.Values() {
		binary.LittleEndian.PutUint64(buf, uint64(v))
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}
