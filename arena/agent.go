package arena

// Agent is one snake registered in an Arena, whatever drives it. The arena
// calls these methods in a fixed order during SimulateTick; implementations
// must not touch the arena outside the method that is currently running.
type Agent interface {
	// ID returns the stable id assigned by Attach.
	ID() int
	SetID(id int)

	// Alive reports whether the snake currently occupies the grid.
	Alive() bool

	// Head returns the position of the snake's head.
	Head() Position
	// Cells returns the occupied cells ordered head first.
	Cells() []Position
	// Occupies reports whether any cell of the body is at p.
	Occupies(p Position) bool
	// Len returns the current body length.
	Len() int
	// InitialLength returns the body length the snake respawns with.
	InitialLength() int

	// DecideDirection computes the direction for the upcoming move from the
	// current (pre-move) state of the grid.
	DecideDirection()
	// Direction returns the direction chosen by the last DecideDirection.
	Direction() Direction

	// Move advances the snake one cell in direction d, updating the
	// obstacle counters for the new head and the vacated tail.
	Move(d Direction)
	// SelfCollisionCut returns how many tail cells must be removed because
	// the head landed on the snake's own body, or 0.
	SelfCollisionCut() int
	// Cut removes n cells from the tail end.
	Cut(n int)
	// Grow re-inserts the tail cell vacated by the last Move. It returns
	// false if there is nothing to restore.
	Grow() bool
	// CollidesAnother reports whether the head overlaps another living snake.
	CollidesAnother() bool

	// Die removes the snake from the grid and marks it not alive.
	Die()
	// Reset restores the initial body and direction for a new game.
	Reset()
	// Respawn places the snake back on the grid with the given body
	// (head first) and facing direction.
	Respawn(body []Position, d Direction)
}

// Inspector is implemented by agents that plan ahead and can expose the path
// they are following. The result is a copy, for debug overlays only.
type Inspector interface {
	Inspect() []Position
}
