package agent

import (
	"fmt"
	"math"

	"snaketron/arena"
	"snaketron/search"
)

// SeekerConfig holds the planning parameters of an AI snake.
type SeekerConfig struct {
	// Latency is the number of ticks a computed path is trusted before a
	// forced replan. 0 replans every tick.
	Latency int
	// Caution is the BFS ring depth around rival heads treated as
	// obstructed while planning. 0 ignores rivals entirely.
	Caution int
	// Heuristic selects the distance estimate; empty means Periodic.
	Heuristic search.HeuristicKind
	// MaxIterations caps each pathfinding call; 0 means the search default.
	MaxIterations int
}

func (c SeekerConfig) validate() error {
	if c.Latency < 0 {
		return fmt.Errorf("agent: negative latency %d", c.Latency)
	}
	if c.Caution < 0 {
		return fmt.Errorf("agent: negative caution %d", c.Caution)
	}
	return nil
}

// Seeker is an AI snake that plans the shortest path to the nearest food
// with A*, biased away from rival heads by a transient danger layer. It
// alternates between planning (no usable cached path) and following
// (consuming one cached step per tick).
type Seeker struct {
	Snake

	initialDir arena.Direction
	dir        arena.Direction

	heuristic search.HeuristicKind
	latency   int
	caution   int
	maxIter   int

	cooldown int
	// Cached path, destination first; following pops from the end.
	cells []arena.Position
	dirs  []arena.Direction

	// plan recomputes the cached path. The offensive variant swaps in its
	// own planner here instead of overriding the whole decision step.
	plan func()
}

// NewSeeker returns a food-seeking AI snake. body is ordered head first.
func NewSeeker(w *arena.Arena, body []arena.Position, dir arena.Direction, cfg SeekerConfig) (*Seeker, error) {
	if !dir.IsCardinal() {
		return nil, fmt.Errorf("agent: invalid initial direction %v", dir)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	base, err := newSnake(w, body)
	if err != nil {
		return nil, err
	}
	h := cfg.Heuristic
	if h == "" {
		h = search.Periodic
	}
	s := &Seeker{
		Snake:      base,
		initialDir: dir,
		dir:        dir,
		heuristic:  h,
		latency:    cfg.Latency,
		caution:    cfg.Caution,
		maxIter:    cfg.MaxIterations,
	}
	s.plan = s.planFood
	return s, nil
}

// DecideDirection replans when the cooldown expired or the cached path ran
// out, then consumes one step of the path.
func (s *Seeker) DecideDirection() {
	if s.cooldown == 0 || len(s.dirs) == 0 {
		s.plan()
		s.cooldown = s.latency
	} else {
		s.cooldown--
	}
	if n := len(s.dirs); n > 0 {
		s.dir = s.dirs[n-1]
		s.dirs = s.dirs[:n-1]
		s.cells = s.cells[:n-1]
	}
}

func (s *Seeker) Direction() arena.Direction { return s.dir }

// Inspect returns a copy of the cells of the path currently followed,
// destination first. For debug overlays only.
func (s *Seeker) Inspect() []arena.Position {
	return append([]arena.Position(nil), s.cells...)
}

func (s *Seeker) clearPath() {
	s.cells = s.cells[:0]
	s.dirs = s.dirs[:0]
	s.cooldown = 0
}

func (s *Seeker) Reset() {
	s.resetBody()
	s.dir = s.initialDir
	s.clearPath()
}

func (s *Seeker) Respawn(body []arena.Position, d arena.Direction) {
	s.respawnBody(body)
	s.dir = d
	s.clearPath()
}

func (s *Seeker) Die() {
	s.Snake.Die()
	s.clearPath()
}

// planFood computes a path to food with the danger layer up; if nothing is
// reachable that way it retries once with caution disabled, so the snake
// never starves while any path at all exists.
func (s *Seeker) planFood() {
	found := func() bool {
		guard := s.avoidRivals()
		defer guard.Release()
		return s.pathToNearestFood()
	}()
	if !found {
		s.pathToNearestFood()
	}
}

// avoidRivals pushes caution rings around every other living snake's head.
func (s *Seeker) avoidRivals() *dangerGuard {
	var rivals []arena.Agent
	for _, ag := range s.world.AliveAgents() {
		if ag.ID() != s.id {
			rivals = append(rivals, ag)
		}
	}
	return newDangerGuard(s.world, rivals, s.caution)
}

func (s *Seeker) pathToNearestFood() bool {
	return s.computeShortestPath(s.world.FoodPositions(), 0, math.MaxInt) >= 0
}

// computeShortestPath searches from the head to each unobstructed
// destination and caches the shortest valid result whose length lies in
// (infLen, supLen]. Valid means the search actually reached the
// destination: a partial path toward an unreachable cell reports its last
// expanded node in Cells[0] and is discarded here. Returns the index of
// the chosen destination, or -1.
func (s *Seeker) computeShortestPath(destinations []arena.Position, infLen, supLen int) int {
	head := s.Head()
	chosen := -1
	best := supLen

	for i, dst := range destinations {
		if s.world.ObstacleCount(dst) != 0 {
			continue
		}
		h := s.heuristic.For(s.world, dst)
		path := search.ShortestPath(s.world, head, dst, h, s.maxIter)
		n := path.Len()
		if n == 0 || path.Cells[0] != dst {
			continue
		}
		if n <= infLen || n > best {
			continue
		}
		if chosen >= 0 && n == best {
			continue
		}
		chosen = i
		best = n
		s.cells = append(s.cells[:0], path.Cells...)
		s.dirs = append(s.dirs[:0], path.Dirs...)
	}
	return chosen
}
