package deque

import "testing"

func TestPushPopBothEnds(t *testing.T) {
	var d Deque[int]
	if d.Len() != 0 {
		t.Fatalf("zero value Len = %d", d.Len())
	}

	d.PushBack(2)
	d.PushBack(3)
	d.PushFront(1)
	// 1 2 3
	if d.Front() != 1 || d.Back() != 3 || d.Len() != 3 {
		t.Fatalf("front=%d back=%d len=%d, want 1 3 3", d.Front(), d.Back(), d.Len())
	}
	if d.At(1) != 2 {
		t.Fatalf("At(1) = %d, want 2", d.At(1))
	}
	if got := d.PopFront(); got != 1 {
		t.Fatalf("PopFront = %d, want 1", got)
	}
	if got := d.PopBack(); got != 3 {
		t.Fatalf("PopBack = %d, want 3", got)
	}
	if d.Len() != 1 || d.Front() != 2 {
		t.Fatalf("remaining = %d len %d, want single 2", d.Front(), d.Len())
	}
}

func TestGrowthKeepsOrder(t *testing.T) {
	var d Deque[int]
	// Alternate ends so the ring's head wanders before every growth.
	for i := 1; i <= 50; i++ {
		if i%2 == 0 {
			d.PushBack(i)
		} else {
			d.PushFront(i)
		}
	}
	// Front half is the odd pushes in reverse, back half the even pushes.
	want := make([]int, 0, 50)
	for i := 49; i >= 1; i -= 2 {
		want = append(want, i)
	}
	for i := 2; i <= 50; i += 2 {
		want = append(want, i)
	}
	if d.Len() != len(want) {
		t.Fatalf("len = %d, want %d", d.Len(), len(want))
	}
	for i, w := range want {
		if got := d.At(i); got != w {
			t.Fatalf("At(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestClear(t *testing.T) {
	var d Deque[string]
	d.PushBack("a")
	d.PushBack("b")
	d.Clear()
	if d.Len() != 0 {
		t.Fatalf("len after clear = %d", d.Len())
	}
	d.PushBack("c")
	if d.Front() != "c" || d.Back() != "c" {
		t.Fatal("deque unusable after clear")
	}
}

func TestEmptyPopsPanic(t *testing.T) {
	for name, f := range map[string]func(*Deque[int]){
		"PopFront": func(d *Deque[int]) { d.PopFront() },
		"PopBack":  func(d *Deque[int]) { d.PopBack() },
		"Front":    func(d *Deque[int]) { d.Front() },
		"At":       func(d *Deque[int]) { d.At(0) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s on empty deque did not panic", name)
				}
			}()
			var d Deque[int]
			f(&d)
		}()
	}
}
