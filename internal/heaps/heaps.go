// Package heaps provides a small generic binary min-heap ordered by a
// caller-supplied predicate.
package heaps

// Heap is a priority queue with an extractable least element.
//
// Invariant: for every index n with children l=2n+1 and r=2n+2,
// !less(xs[l], xs[n]) and !less(xs[r], xs[n]) whenever those children exist.
type Heap[T any] struct {
	xs   []T
	less func(T, T) bool
}

// New returns an empty heap ordered by less.
func New[T any](less func(T, T) bool) *Heap[T] {
	return &Heap[T]{less: less}
}

// Len returns the number of elements in the heap.
func (h *Heap[T]) Len() int {
	return len(h.xs)
}

// Push inserts x.
func (h *Heap[T]) Push(x T) {
	h.xs = append(h.xs, x)
	i := len(h.xs) - 1
	for i > 0 {
		p := (i - 1) / 2
		if !h.less(h.xs[i], h.xs[p]) {
			break
		}
		h.xs[i], h.xs[p] = h.xs[p], h.xs[i]
		i = p
	}
}

// Pop removes and returns the least element. It panics on an empty heap.
func (h *Heap[T]) Pop() T {
	n := len(h.xs)
	if n == 0 {
		panic("heaps: pop from empty heap")
	}
	min := h.xs[0]
	h.xs[0] = h.xs[n-1]
	var zero T
	h.xs[n-1] = zero
	h.xs = h.xs[:n-1]
	h.siftDown(0)
	return min
}

func (h *Heap[T]) siftDown(i int) {
	n := len(h.xs)
	for {
		least := i
		if l := 2*i + 1; l < n && h.less(h.xs[l], h.xs[least]) {
			least = l
		}
		if r := 2*i + 2; r < n && h.less(h.xs[r], h.xs[least]) {
			least = r
		}
		if least == i {
			return
		}
		h.xs[i], h.xs[least] = h.xs[least], h.xs[i]
		i = least
	}
}
