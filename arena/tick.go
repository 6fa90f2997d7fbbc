// tick.go implements the per-tick resolution protocol.

package arena

import (
	"math/rand"

	"snaketron/spawn"
)

// TickResult reports what happened during one SimulateTick call.
type TickResult struct {
	// Deaths holds the agents that died this tick, already shuffled into
	// the order they entered the respawn queue.
	Deaths []Agent
	// FoodConsumed and FoodCreated list the food cells that changed.
	FoodConsumed []Position
	FoodCreated  []Position
	// Respawned is the agent placed back on the grid this tick, if any.
	Respawned Agent
}

// SimulateTick runs one full resolution step and returns what changed.
//
// The phases run in a fixed order: every living agent first decides its
// direction against the pre-tick grid, then all moves are applied, then
// self-collisions are cut, food is consumed and regrown, cross-agent
// collisions kill, and finally food and one dead agent may respawn.
// Deciding before any move guarantees every agent plans against the same
// snapshot, so the processing order of the alive list cannot bias outcomes.
//
// rng drives food placement and the shuffle of simultaneous deaths. Passing
// a seeded source makes the whole tick reproducible; nil falls back to a
// tick-derived deterministic source.
func (a *Arena) SimulateTick(rng *rand.Rand) TickResult {
	if rng == nil {
		rng = rand.New(rand.NewSource(int64(a.tick) + 1))
	}
	var res TickResult
	a.tick++

	// Phase 1: decide. No agent observes another's move this tick.
	dirs := make([]Direction, len(a.alive))
	for i, ag := range a.alive {
		ag.DecideDirection()
		dirs[i] = ag.Direction()
	}

	// Phase 2: move. On a non-wrapping arena, crossing the seam is fatal;
	// the move still lands on the wrapped cell so the body stays coherent
	// until the collision phase removes it.
	seamCrossed := make(map[Agent]bool)
	for i, ag := range a.alive {
		if !a.wrap && a.CrossesSeam(ag.Head(), dirs[i]) {
			seamCrossed[ag] = true
		}
		ag.Move(dirs[i])
	}

	// Phase 3: self-collision. A snake that bites itself is cut short, not
	// killed. Cut lengths are computed for everyone before any cut is
	// applied so overlapping snakes see one consistent grid.
	cuts := make([]int, len(a.alive))
	for i, ag := range a.alive {
		cuts[i] = ag.SelfCollisionCut()
	}
	for i, ag := range a.alive {
		ag.Cut(cuts[i])
	}

	// Phases 4 and 5: food consumption, then growth.
	var growing []Agent
	for _, ag := range a.alive {
		head := ag.Head()
		if a.consumeFood(head) {
			growing = append(growing, ag)
			res.FoodConsumed = append(res.FoodConsumed, head)
		}
	}
	for _, ag := range growing {
		ag.Grow()
	}

	// Phase 6: cross-agent collision. Simultaneous deaths are shuffled so
	// that respawn-queue order never favors earlier-registered agents.
	var deaths []Agent
	for _, ag := range a.alive {
		if ag.CollidesAnother() || seamCrossed[ag] {
			deaths = append(deaths, ag)
		}
	}
	for _, ag := range deaths {
		ag.Die()
	}
	rng.Shuffle(len(deaths), func(i, j int) {
		deaths[i], deaths[j] = deaths[j], deaths[i]
	})
	a.kill(deaths)
	res.Deaths = deaths

	// Phase 7: food respawn.
	res.FoodCreated = a.spawnMissingFood(rng)

	// Phase 8: agent respawn.
	res.Respawned = a.respawnDeadAgent()

	return res
}

func (a *Arena) kill(deaths []Agent) {
	for _, d := range deaths {
		for i, ag := range a.alive {
			if ag == d {
				a.alive = append(a.alive[:i], a.alive[i+1:]...)
				break
			}
		}
		a.dead = append(a.dead, d)
	}
}

// findAgentSpawnPos computes the free cell furthest from every living snake.
// When two or fewer snakes remain, four edge-midpoint anchors keep the
// Voronoi diagram non-degenerate and bias spawns toward the interior.
func (a *Arena) findAgentSpawnPos() (Position, bool) {
	seen := make(map[Position]struct{})
	var seeds []spawn.Point
	for _, ag := range a.alive {
		for _, c := range ag.Cells() {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			seeds = append(seeds, spawn.Point{X: float64(c.X), Y: float64(c.Y)})
		}
	}
	if len(a.alive) <= 2 {
		maxX, maxY := float64(a.width-1), float64(a.height-1)
		halfX, halfY := 0.5*maxX, 0.5*maxY
		seeds = append(seeds,
			spawn.Point{X: halfX, Y: 0},
			spawn.Point{X: halfX, Y: maxY},
			spawn.Point{X: 0, Y: halfY},
			spawn.Point{X: maxX, Y: halfY},
		)
	}

	v, ok := spawn.FurthestPoint(seeds, float64(a.width), float64(a.height))
	if !ok {
		return Position{}, false
	}
	p := Position{X: int(v.X), Y: int(v.Y)}
	if !a.PosIsFree(p) {
		return Position{}, false
	}
	return p, true
}

// respawnDeadAgent ticks the respawn cooldown and, once it is exhausted,
// tries to place the oldest dead agent back on the grid. Placement failure
// is soft: the cooldown stays at zero and the attempt repeats next tick.
func (a *Arena) respawnDeadAgent() Agent {
	if len(a.dead) == 0 || a.initialRespawnCooldown == RespawnNever {
		return nil
	}
	if a.respawnCooldown > 0 {
		a.respawnCooldown--
		return nil
	}

	pos, ok := a.findAgentSpawnPos()
	if !ok {
		return nil
	}

	ag := a.dead[0]
	a.dead = a.dead[1:]

	length := ag.InitialLength()
	body := make([]Position, length)
	for i := range body {
		body[i] = pos
	}
	ag.Respawn(body, TowardCenter(float64(pos.X), float64(pos.Y), a.width, a.height))
	a.alive = append(a.alive, ag)
	for _, c := range ag.Cells() {
		a.AddObstacle(c)
	}
	a.respawnCooldown = a.initialRespawnCooldown
	return ag
}
