// Package deque provides a generic double-ended queue backed by a ring
// buffer, with O(1) push and pop at both ends.
package deque

// Deque holds elements in order from Front to Back.
// The zero value is an empty deque ready to use.
type Deque[T any] struct {
	buf  []T
	head int // index of the front element
	n    int
}

// Len returns the number of elements.
func (d *Deque[T]) Len() int { return d.n }

func (d *Deque[T]) grow() {
	if d.n < len(d.buf) {
		return
	}
	size := len(d.buf) * 2
	if size == 0 {
		size = 8
	}
	buf := make([]T, size)
	for i := 0; i < d.n; i++ {
		buf[i] = d.buf[(d.head+i)%len(d.buf)]
	}
	d.buf = buf
	d.head = 0
}

// PushBack appends x at the back.
func (d *Deque[T]) PushBack(x T) {
	d.grow()
	d.buf[(d.head+d.n)%len(d.buf)] = x
	d.n++
}

// PushFront prepends x at the front.
func (d *Deque[T]) PushFront(x T) {
	d.grow()
	d.head = (d.head - 1 + len(d.buf)) % len(d.buf)
	d.buf[d.head] = x
	d.n++
}

// PopFront removes and returns the front element.
// It panics on an empty deque.
func (d *Deque[T]) PopFront() T {
	if d.n == 0 {
		panic("deque: pop from empty deque")
	}
	x := d.buf[d.head]
	var zero T
	d.buf[d.head] = zero
	d.head = (d.head + 1) % len(d.buf)
	d.n--
	return x
}

// PopBack removes and returns the back element.
// It panics on an empty deque.
func (d *Deque[T]) PopBack() T {
	if d.n == 0 {
		panic("deque: pop from empty deque")
	}
	i := (d.head + d.n - 1) % len(d.buf)
	x := d.buf[i]
	var zero T
	d.buf[i] = zero
	d.n--
	return x
}

// Front returns the front element without removing it.
func (d *Deque[T]) Front() T {
	if d.n == 0 {
		panic("deque: empty deque")
	}
	return d.buf[d.head]
}

// Back returns the back element without removing it.
func (d *Deque[T]) Back() T {
	if d.n == 0 {
		panic("deque: empty deque")
	}
	return d.buf[(d.head+d.n-1)%len(d.buf)]
}

// At returns the element i positions from the front, 0 <= i < Len.
func (d *Deque[T]) At(i int) T {
	if i < 0 || i >= d.n {
		panic("deque: index out of range")
	}
	return d.buf[(d.head+i)%len(d.buf)]
}

// Clear removes every element, keeping the allocated buffer.
func (d *Deque[T]) Clear() {
	var zero T
	for i := 0; i < d.n; i++ {
		d.buf[(d.head+i)%len(d.buf)] = zero
	}
	d.head = 0
	d.n = 0
}
