package agent

import "snaketron/arena"

// dangerGuard owns a set of transient virtual obstacles pushed onto the
// grid for one planning call. Construction marks the cells, Release
// unmarks exactly the cells that were marked. Callers pair the two with a
// defer so the grid is restored on every exit path; leaking a marker past
// a planning call would corrupt the obstacle counters for the whole game.
type dangerGuard struct {
	world  *arena.Arena
	marked []arena.Position
}

// newDangerGuard BFS-expands radius rings of virtual obstacles outward
// from each rival's head. Ring cells are only ever marked once: marking a
// cell removes it from the free-neighbor set the next ring is built from.
func newDangerGuard(w *arena.Arena, rivals []arena.Agent, radius int) *dangerGuard {
	g := &dangerGuard{world: w}
	var buf [4]arena.Step
	for _, rival := range rivals {
		layer := []arena.Position{rival.Head()}
		for r := 0; r < radius; r++ {
			var next []arena.Position
			for _, p := range layer {
				for _, step := range w.FreeNeighbors(p, buf[:0]) {
					w.AddObstacle(step.Pos)
					g.marked = append(g.marked, step.Pos)
					next = append(next, step.Pos)
				}
			}
			layer = next
		}
	}
	return g
}

// Release pops every virtual obstacle this guard added. Safe to call more
// than once.
func (g *dangerGuard) Release() {
	for _, p := range g.marked {
		g.world.PopObstacle(p)
	}
	g.marked = nil
}
