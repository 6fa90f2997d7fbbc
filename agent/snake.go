// Package agent implements the control policies driving snakes in an
// arena: a queued-input player policy, a food-seeking planner built on the
// search package, and an offensive variant that ambushes rivals.
package agent

import (
	"fmt"

	"snaketron/arena"
	"snaketron/internal/deque"
)

// Snake holds the body mechanics shared by every policy: the occupied
// cells as a deque from head to tail, and the bookkeeping that keeps the
// arena's obstacle counters in sync with each move, cut, growth and death.
type Snake struct {
	id    int
	world *arena.Arena
	alive bool

	initialBody []arena.Position // head first, immutable reset target
	body        deque.Deque[arena.Position]

	lastTail    arena.Position
	hasLastTail bool
}

func newSnake(w *arena.Arena, body []arena.Position) (Snake, error) {
	if w == nil {
		return Snake{}, fmt.Errorf("agent: nil arena")
	}
	if len(body) == 0 {
		return Snake{}, fmt.Errorf("agent: empty initial body")
	}
	s := Snake{
		id:          -1,
		world:       w,
		alive:       true,
		initialBody: append([]arena.Position(nil), body...),
	}
	s.setBody(body)
	return s, nil
}

func (s *Snake) setBody(body []arena.Position) {
	s.body.Clear()
	for _, p := range body {
		s.body.PushBack(p)
	}
	s.hasLastTail = false
}

func (s *Snake) ID() int      { return s.id }
func (s *Snake) SetID(id int) { s.id = id }
func (s *Snake) Alive() bool  { return s.alive }
func (s *Snake) Len() int     { return s.body.Len() }

func (s *Snake) InitialLength() int {
	return len(s.initialBody)
}

// Head returns the position of the snake's head.
func (s *Snake) Head() arena.Position {
	return s.body.Front()
}

// Cells returns a copy of the occupied cells, head first.
func (s *Snake) Cells() []arena.Position {
	out := make([]arena.Position, s.body.Len())
	for i := range out {
		out[i] = s.body.At(i)
	}
	return out
}

// Occupies reports whether any body cell is at p.
func (s *Snake) Occupies(p arena.Position) bool {
	for i := 0; i < s.body.Len(); i++ {
		if s.body.At(i) == p {
			return true
		}
	}
	return false
}

// Move pushes a new head one cell in direction d and pops the tail,
// keeping the obstacle counters balanced. The vacated tail cell is
// remembered so Grow can restore it if food was eaten this tick.
func (s *Snake) Move(d arena.Direction) {
	newHead := s.world.Neighbor(s.Head(), d)
	s.world.AddObstacle(newHead)
	s.body.PushFront(newHead)
	s.lastTail = s.body.PopBack()
	s.hasLastTail = true
	s.world.PopObstacle(s.lastTail)
}

// SelfCollisionCut returns the number of tail cells to remove because the
// head landed on the snake's own body. The head overlapping another snake
// (its own position being the first match from the tail side being the
// head itself) yields 0.
func (s *Snake) SelfCollisionCut() int {
	head := s.Head()
	if s.world.ObstacleCount(head) <= 1 {
		return 0
	}
	n := s.body.Len()
	for i := n - 1; i >= 0; i-- {
		if s.body.At(i) == head {
			fromTail := n - 1 - i
			return (fromTail + 1) % n
		}
	}
	return 0
}

// Cut removes n cells from the tail end.
func (s *Snake) Cut(n int) {
	for i := 0; i < n; i++ {
		s.world.PopObstacle(s.body.PopBack())
	}
}

// Grow restores the tail cell vacated by the last Move.
func (s *Snake) Grow() bool {
	if !s.hasLastTail {
		return false
	}
	s.body.PushBack(s.lastTail)
	s.world.AddObstacle(s.lastTail)
	s.hasLastTail = false
	return true
}

// CollidesAnother reports whether the head cell is shared with another
// living snake. Self-overlaps are resolved by the cut phase before this
// runs, so a counter above one means a foreign body.
func (s *Snake) CollidesAnother() bool {
	head := s.Head()
	if s.world.ObstacleCount(head) <= 1 {
		return false
	}
	for _, other := range s.world.AliveAgents() {
		if other.ID() != s.id && other.Occupies(head) {
			return true
		}
	}
	return false
}

// Die marks the snake not alive and releases every occupied cell.
func (s *Snake) Die() {
	s.alive = false
	for i := 0; i < s.body.Len(); i++ {
		s.world.PopObstacle(s.body.At(i))
	}
}

// resetBody restores the initial body; the arena re-places the obstacle
// counters itself during its reset.
func (s *Snake) resetBody() {
	s.alive = true
	s.setBody(s.initialBody)
}

// respawnBody installs a fresh body at a spawn point chosen by the arena.
func (s *Snake) respawnBody(body []arena.Position) {
	s.alive = true
	s.setBody(body)
}
