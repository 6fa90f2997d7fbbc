package heaps

import (
	"math/rand"
	"sort"
	"testing"
)

func TestPopYieldsSortedOrder(t *testing.T) {
	h := New(func(a, b int) bool { return a < b })
	rng := rand.New(rand.NewSource(1))

	in := make([]int, 200)
	for i := range in {
		in[i] = rng.Intn(50) // duplicates on purpose
		h.Push(in[i])
	}
	sort.Ints(in)

	for i, want := range in {
		if h.Len() != len(in)-i {
			t.Fatalf("Len = %d, want %d", h.Len(), len(in)-i)
		}
		if got := h.Pop(); got != want {
			t.Fatalf("pop %d = %d, want %d", i, got, want)
		}
	}
	if h.Len() != 0 {
		t.Fatalf("Len after draining = %d", h.Len())
	}
}

func TestLessPredicateControlsOrder(t *testing.T) {
	type item struct {
		cost int
		tie  int
	}
	h := New(func(a, b item) bool {
		if a.cost != b.cost {
			return a.cost < b.cost
		}
		return a.tie < b.tie
	})
	h.Push(item{cost: 2, tie: 0})
	h.Push(item{cost: 1, tie: 5})
	h.Push(item{cost: 1, tie: 2})

	if got := h.Pop(); got != (item{cost: 1, tie: 2}) {
		t.Fatalf("first pop = %+v, want the lower tie", got)
	}
	if got := h.Pop(); got != (item{cost: 1, tie: 5}) {
		t.Fatalf("second pop = %+v", got)
	}
	if got := h.Pop(); got != (item{cost: 2, tie: 0}) {
		t.Fatalf("third pop = %+v", got)
	}
}

func TestPopEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Pop on an empty heap did not panic")
		}
	}()
	New(func(a, b int) bool { return a < b }).Pop()
}
