package agent

import (
	"testing"

	"snaketron/arena"
)

func TestAddDirRequestRejectsReversal(t *testing.T) {
	w := newWorld(t, arena.Config{Width: 7, Height: 7})
	p := attachPlayer(t, w, vertical(3, 3, 3), arena.Up)

	p.AddDirRequest(arena.Down)
	if p.PendingRequests() != 0 {
		t.Fatal("reversal of the current direction was queued")
	}

	p.AddDirRequest(arena.Left)
	p.AddDirRequest(arena.Right) // opposite of the last queued request
	if p.PendingRequests() != 1 {
		t.Fatalf("pending = %d, want 1 (reversal of queued direction dropped)", p.PendingRequests())
	}

	// Down is no longer a reversal once Left is queued ahead of it.
	p.AddDirRequest(arena.Down)
	if p.PendingRequests() != 2 {
		t.Fatalf("pending = %d, want 2", p.PendingRequests())
	}
}

func TestAddDirRequestDropsJunk(t *testing.T) {
	w := newWorld(t, arena.Config{Width: 7, Height: 7})
	p := attachPlayer(t, w, vertical(3, 3, 3), arena.Up)

	p.AddDirRequest(arena.Direction{X: 1, Y: 1})
	p.AddDirRequest(arena.Direction{})
	if p.PendingRequests() != 0 {
		t.Fatal("non-cardinal request was queued")
	}

	for i := 0; i < 9; i++ {
		p.AddDirRequest(arena.Left)
	}
	if p.PendingRequests() != 5 {
		t.Fatalf("pending = %d, want the queue capped at 5", p.PendingRequests())
	}
}

func TestDecideDirectionConsumesOneRequestPerTick(t *testing.T) {
	w := newWorld(t, arena.Config{Width: 7, Height: 7})
	p := attachPlayer(t, w, vertical(3, 3, 3), arena.Up)

	p.AddDirRequest(arena.Left)
	p.AddDirRequest(arena.Up)

	p.DecideDirection()
	if p.Direction() != arena.Left {
		t.Fatalf("direction = %v, want left", p.Direction())
	}
	if p.PendingRequests() != 1 {
		t.Fatalf("pending = %d, want 1", p.PendingRequests())
	}

	p.DecideDirection()
	if p.Direction() != arena.Up {
		t.Fatalf("direction = %v, want up", p.Direction())
	}

	// Empty queue keeps the snake going the way it was.
	p.DecideDirection()
	if p.Direction() != arena.Up {
		t.Fatalf("direction = %v, want up on empty queue", p.Direction())
	}
}

func TestPlayerResetClearsQueue(t *testing.T) {
	w := newWorld(t, arena.Config{Width: 7, Height: 7})
	p := attachPlayer(t, w, vertical(3, 3, 3), arena.Up)

	p.AddDirRequest(arena.Left)
	p.AddDirRequest(arena.Down)
	p.Reset()
	if p.PendingRequests() != 0 {
		t.Fatal("reset kept queued requests")
	}
	if p.Direction() != arena.Up {
		t.Fatalf("direction after reset = %v, want up", p.Direction())
	}
}
