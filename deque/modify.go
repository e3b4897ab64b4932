package deque

// swap exchanges the elements at logical positions i and j.
func (d *Deque[T]) swap(i, j int) {
	a, b := d.slot(i), d.slot(j)
	*a, *b = *b, *a
}

// Insert places v before pos and returns an iterator at the new element.
//
// The deque grows by one at the back and v is swapped down into place, so
// Insert costs O(Len()) and invalidates every iterator. pos must be in
// [Begin(), End()]. If growing fails the error is returned and the deque is
// unchanged.
func (d *Deque[T]) Insert(pos Iterator[T], v T) (Iterator[T], error) {
	k := pos.Distance(d.Begin())
	if err := d.PushBack(v); err != nil {
		return pos, err
	}
	for i := d.size - 1; i > k; i-- {
		d.swap(i, i-1)
	}
	return d.Begin().Add(k), nil
}

// Erase removes the element at pos and returns an iterator at the element
// that followed it.
//
// The tail is swapped forward over pos and the last slot popped, so Erase
// costs O(Len()) and invalidates every iterator. pos must be in [Begin(),
// End()).
func (d *Deque[T]) Erase(pos Iterator[T]) Iterator[T] {
	k := pos.Distance(d.Begin())
	for i := k; i < d.size-1; i++ {
		d.swap(i, i+1)
	}
	d.PopBack()
	return d.Begin().Add(k)
}
