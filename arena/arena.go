// Package arena owns the shared simulation state of a snake game: the
// occupancy grid, the food set and the registry of living and dead agents.
//
// Cells hold obstacle *counters*, not booleans. Several snake cells, or
// transient planning markers added by AI agents, may coincide on one cell
// for the duration of a tick or a planning call, so presence is counted.
// The grid is toroidal by default: neighbor coordinates wrap modulo the
// arena dimensions.
package arena

import (
	"fmt"
	"math/rand"
	"sort"
)

// Position is a cell coordinate, 0 <= X < width and 0 <= Y < height.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step pairs a neighboring cell with the direction that reaches it.
type Step struct {
	Pos Position
	Dir Direction
}

// RespawnNever disables agent respawning when used as Config.RespawnCooldown.
const RespawnNever = -1

// DefaultFoodTries bounds the random placement attempts per food spawn.
const DefaultFoodTries = 20

// Config holds the construction-time options of an Arena.
type Config struct {
	Width  int
	Height int

	// Food is the target number of food items kept on the board.
	Food int
	// FoodTries is the number of random placement attempts per missing food
	// item. 0 means DefaultFoodTries.
	FoodTries int

	// RespawnCooldown is the number of ticks a dead agent waits before a
	// respawn is attempted, or RespawnNever.
	RespawnCooldown int

	// NoWrap disables the toroidal topology. Moving across an edge then
	// kills the mover instead of wrapping.
	NoWrap bool
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("arena: invalid dimensions %dx%d", c.Width, c.Height)
	}
	if c.Food < 0 {
		return fmt.Errorf("arena: negative food count %d", c.Food)
	}
	if c.FoodTries < 0 {
		return fmt.Errorf("arena: negative food tries %d", c.FoodTries)
	}
	if c.RespawnCooldown < 0 && c.RespawnCooldown != RespawnNever {
		return fmt.Errorf("arena: invalid respawn cooldown %d", c.RespawnCooldown)
	}
	return nil
}

// Arena is the occupancy grid plus food set plus agent registry.
// It is not safe for concurrent use; one SimulateTick call performs one
// full synchronous resolution.
type Arena struct {
	width  int
	height int
	wrap   bool

	targetFood int
	foodTries  int

	initialRespawnCooldown int
	respawnCooldown        int

	obstacleCount []int
	food          map[Position]struct{}

	agents []Agent // registration order, stable ids
	alive  []Agent
	dead   []Agent // FIFO respawn queue

	tick int
}

// New validates cfg and returns an empty arena. Agents are registered with
// Attach and placed on the grid by Reset.
func New(cfg Config) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tries := cfg.FoodTries
	if tries == 0 {
		tries = DefaultFoodTries
	}
	return &Arena{
		width:                  cfg.Width,
		height:                 cfg.Height,
		wrap:                   !cfg.NoWrap,
		targetFood:             cfg.Food,
		foodTries:              tries,
		initialRespawnCooldown: cfg.RespawnCooldown,
		respawnCooldown:        cfg.RespawnCooldown,
		obstacleCount:          make([]int, cfg.Width*cfg.Height),
		food:                   make(map[Position]struct{}, cfg.Food),
	}, nil
}

func (a *Arena) Width() int  { return a.width }
func (a *Arena) Height() int { return a.height }

// Tick returns the number of completed SimulateTick calls since the last Reset.
func (a *Arena) Tick() int { return a.tick }

func (a *Arena) cell(p Position) int {
	return p.Y*a.width + p.X
}

// InBounds reports whether p lies on the grid.
func (a *Arena) InBounds(p Position) bool {
	return p.X >= 0 && p.X < a.width && p.Y >= 0 && p.Y < a.height
}

// ObstacleCount returns the occupancy counter of cell p.
func (a *Arena) ObstacleCount(p Position) int {
	return a.obstacleCount[a.cell(p)]
}

// AddObstacle increments the occupancy counter of cell p.
func (a *Arena) AddObstacle(p Position) {
	a.obstacleCount[a.cell(p)]++
}

// PopObstacle decrements the occupancy counter of cell p.
// Decrementing an empty cell is a defect in the caller and panics.
func (a *Arena) PopObstacle(p Position) {
	i := a.cell(p)
	if a.obstacleCount[i] <= 0 {
		panic(fmt.Sprintf("arena: obstacle underflow at (%d,%d)", p.X, p.Y))
	}
	a.obstacleCount[i]--
}

// PosIsFree reports whether cell p holds no obstacle.
func (a *Arena) PosIsFree(p Position) bool {
	return a.obstacleCount[a.cell(p)] == 0
}

// Neighbor returns the cell adjacent to p in direction d, wrapping around
// the edges.
func (a *Arena) Neighbor(p Position, d Direction) Position {
	return Position{
		X: ((p.X+d.X)%a.width + a.width) % a.width,
		Y: ((p.Y+d.Y)%a.height + a.height) % a.height,
	}
}

// CrossesSeam reports whether stepping from p in direction d leaves the grid
// before wrapping. Only meaningful on non-wrapping arenas.
func (a *Arena) CrossesSeam(p Position, d Direction) bool {
	q := Position{p.X + d.X, p.Y + d.Y}
	return !a.InBounds(q)
}

// FreeNeighbors appends the unobstructed neighbors of p to buf and returns
// it. On a non-wrapping arena, neighbors across the seam are omitted.
func (a *Arena) FreeNeighbors(p Position, buf []Step) []Step {
	for _, d := range []Direction{Up, Down, Left, Right} {
		if !a.wrap && a.CrossesSeam(p, d) {
			continue
		}
		n := a.Neighbor(p, d)
		if a.obstacleCount[a.cell(n)] == 0 {
			buf = append(buf, Step{Pos: n, Dir: d})
		}
	}
	return buf
}

// FoodPositions returns the current food cells in row-major order. The
// fixed order matters: planners break path-length ties by destination
// order, so iterating the food map directly would make replays diverge
// even under a seeded rng.
func (a *Arena) FoodPositions() []Position {
	out := make([]Position, 0, len(a.food))
	for p := range a.food {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// FoodAt reports whether a food item sits on p.
func (a *Arena) FoodAt(p Position) bool {
	_, ok := a.food[p]
	return ok
}

// Attach registers an agent, assigns it a stable id and, if it is alive,
// places its cells on the grid.
func (a *Arena) Attach(ag Agent) error {
	for _, p := range ag.Cells() {
		if !a.InBounds(p) {
			return fmt.Errorf("arena: agent body cell (%d,%d) out of bounds", p.X, p.Y)
		}
	}
	ag.SetID(len(a.agents))
	a.agents = append(a.agents, ag)
	if ag.Alive() {
		a.alive = append(a.alive, ag)
		for _, p := range ag.Cells() {
			a.AddObstacle(p)
		}
	} else {
		a.dead = append(a.dead, ag)
	}
	return nil
}

// Agents returns every registered agent in attach order.
func (a *Arena) Agents() []Agent {
	return append([]Agent(nil), a.agents...)
}

// AliveAgents returns the currently living agents.
func (a *Arena) AliveAgents() []Agent {
	return append([]Agent(nil), a.alive...)
}

// AliveCount returns the number of living agents.
func (a *Arena) AliveCount() int { return len(a.alive) }

// Reset discards all transient state and starts a new game: the grid is
// zeroed, food is refilled and every registered agent is restored to its
// initial body and placed back into the alive set.
func (a *Arena) Reset(rng *rand.Rand) {
	for i := range a.obstacleCount {
		a.obstacleCount[i] = 0
	}
	clear(a.food)
	a.tick = 0
	a.respawnCooldown = a.initialRespawnCooldown

	a.alive = a.alive[:0]
	a.dead = a.dead[:0]
	for _, ag := range a.agents {
		ag.Reset()
		a.alive = append(a.alive, ag)
		for _, p := range ag.Cells() {
			if !a.InBounds(p) {
				panic(fmt.Sprintf("arena: reset placed cell (%d,%d) out of bounds", p.X, p.Y))
			}
			a.AddObstacle(p)
		}
	}

	a.spawnMissingFood(rng)
}

// obstacleSum is used by tests to check grid conservation.
func (a *Arena) obstacleSum() int {
	sum := 0
	for _, c := range a.obstacleCount {
		sum += c
	}
	return sum
}
