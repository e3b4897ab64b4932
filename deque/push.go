package deque

import (
	"github.com/fission-codes/go-bucket-deque/alloc"
)

// initStorage allocates the first index and bucket of an empty deque. The
// cursor is placed so the next push at the requested end lands in the new
// bucket.
func (d *Deque[T]) initStorage(back bool) error {
	outer, err := d.alloc.AllocateIndex(minIndexCapacity)
	if err != nil {
		return err
	}
	bucket, err := d.alloc.Allocate(BucketSize)
	if err != nil {
		d.alloc.DeallocateIndex(outer)
		return err
	}
	home := minIndexCapacity / 2
	outer[home] = bucket
	d.outer = outer
	d.memStart, d.memEnd = home, home
	if back {
		d.setCursor(home, 0)
	} else {
		d.setCursor(home+1, 0)
	}
	return nil
}

// setCursor empties the occupied range and positions it at the given slot.
func (d *Deque[T]) setCursor(bucket, slot int) {
	d.outerStart, d.innerStart = bucket, slot
	if slot == 0 {
		d.outerEnd, d.innerEnd = bucket-1, BucketSize-1
	} else {
		d.outerEnd, d.innerEnd = bucket, slot-1
	}
	d.size = 0
}

// reserve doubles the outer index and centers the allocated bucket range in
// it. Only bucket handles are copied.
func (d *Deque[T]) reserve() error {
	capacity := 2 * len(d.outer)
	outer, err := d.alloc.AllocateIndex(capacity)
	if err != nil {
		return err
	}
	allocated := d.memEnd - d.memStart + 1
	start := (capacity - allocated) / 2
	copy(outer[start:], d.outer[d.memStart:d.memEnd+1])
	d.alloc.DeallocateIndex(d.outer)
	log.Debugw("reserve", "from", len(d.outer), "to", capacity, "allocated", allocated, "size", d.size)

	shift := start - d.memStart
	d.outer = outer
	d.outerStart += shift
	d.outerEnd += shift
	d.memStart += shift
	d.memEnd += shift
	return nil
}

// advanceBack extends the occupied range by one slot at the back, growing the
// index and allocating a bucket when needed. On error nothing observable has
// changed.
func (d *Deque[T]) advanceBack() error {
	if d.innerEnd < BucketSize-1 {
		d.innerEnd++
		return nil
	}
	if d.outerEnd+1 == len(d.outer) {
		if err := d.reserve(); err != nil {
			return err
		}
	}
	next := d.outerEnd + 1
	if next > d.memEnd {
		bucket, err := d.alloc.Allocate(BucketSize)
		if err != nil {
			return err
		}
		d.outer[next] = bucket
		d.memEnd = next
	}
	d.outerEnd, d.innerEnd = next, 0
	return nil
}

func (d *Deque[T]) retreatBack() {
	if d.innerEnd > 0 {
		d.innerEnd--
		return
	}
	d.outerEnd--
	d.innerEnd = BucketSize - 1
}

// advanceFront is the mirror image of advanceBack.
func (d *Deque[T]) advanceFront() error {
	if d.innerStart > 0 {
		d.innerStart--
		return nil
	}
	if d.outerStart == 0 {
		if err := d.reserve(); err != nil {
			return err
		}
	}
	prev := d.outerStart - 1
	if prev < d.memStart {
		bucket, err := d.alloc.Allocate(BucketSize)
		if err != nil {
			return err
		}
		d.outer[prev] = bucket
		d.memStart = prev
	}
	d.outerStart, d.innerStart = prev, BucketSize-1
	return nil
}

func (d *Deque[T]) retreatFront() {
	if d.innerStart < BucketSize-1 {
		d.innerStart++
		return
	}
	d.outerStart++
	d.innerStart = 0
}

// EmplaceBack constructs a new last element with ctor.
//
// If ctor or an allocation fails the error is returned and the deque holds
// the same elements as before. A deque that had no storage before the call
// gives it back.
func (d *Deque[T]) EmplaceBack(ctor alloc.Constructor[T]) error {
	fresh := d.outer == nil
	if fresh {
		if err := d.initStorage(true); err != nil {
			return err
		}
	}
	if err := d.advanceBack(); err != nil {
		d.abandon(fresh)
		return err
	}
	if err := d.alloc.Construct(&d.outer[d.outerEnd][d.innerEnd], ctor); err != nil {
		d.retreatBack()
		d.abandon(fresh)
		return err
	}
	d.size++
	return nil
}

// EmplaceFront constructs a new first element with ctor. Failures are
// handled as in EmplaceBack.
func (d *Deque[T]) EmplaceFront(ctor alloc.Constructor[T]) error {
	fresh := d.outer == nil
	if fresh {
		if err := d.initStorage(false); err != nil {
			return err
		}
	}
	if err := d.advanceFront(); err != nil {
		d.abandon(fresh)
		return err
	}
	if err := d.alloc.Construct(&d.outer[d.outerStart][d.innerStart], ctor); err != nil {
		d.retreatFront()
		d.abandon(fresh)
		return err
	}
	d.size++
	return nil
}

// abandon releases storage allocated by a failed first insertion.
func (d *Deque[T]) abandon(fresh bool) {
	if fresh {
		log.Debugw("rollback", "op", "first insert")
		d.Release()
	}
}

// PushBack adds v to the back of the deque.
func (d *Deque[T]) PushBack(v T) error {
	return d.EmplaceBack(alloc.Value(v))
}

// PushFront adds v to the front of the deque.
func (d *Deque[T]) PushFront(v T) error {
	return d.EmplaceFront(alloc.Value(v))
}

// PopBack destroys the last element and returns its value. The deque must not
// be empty; popping an empty deque corrupts it. The emptied bucket stays
// allocated for later pushes.
func (d *Deque[T]) PopBack() T {
	slot := &d.outer[d.outerEnd][d.innerEnd]
	v := *slot
	d.alloc.Destroy(slot)
	d.retreatBack()
	d.size--
	return v
}

// PopFront destroys the first element and returns its value. The deque must
// not be empty.
func (d *Deque[T]) PopFront() T {
	slot := &d.outer[d.outerStart][d.innerStart]
	v := *slot
	d.alloc.Destroy(slot)
	d.retreatFront()
	d.size--
	return v
}
