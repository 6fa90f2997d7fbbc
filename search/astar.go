// Package search implements heuristic best-first pathfinding over an
// arena's free-neighbor graph with uniform step cost.
package search

import (
	"fmt"
	"math"

	"snaketron/arena"
	"snaketron/internal/heaps"
)

// DefaultMaxIterations bounds the number of node expansions per call,
// capping the worst-case CPU cost of one planning tick.
const DefaultMaxIterations = 450

// Graph is the view of the arena the pathfinder needs. *arena.Arena
// implements it.
type Graph interface {
	Width() int
	Height() int
	Neighbor(p arena.Position, d arena.Direction) arena.Position
	FreeNeighbors(p arena.Position, buf []arena.Step) []arena.Step
}

// Path is the result of a search: cells and the directions that entered
// them, ordered from the final node back to the first step. The next step
// from the source is at the end, so following the path pops from the back.
//
// A Path does not promise it reached the requested destination: when the
// frontier empties or the iteration cap fires first, the path leads to the
// last expanded node instead. Callers must compare Cells[0] against their
// destination before trusting the result.
type Path struct {
	Cells []arena.Position
	Dirs  []arena.Direction
}

// Len returns the number of steps.
func (p Path) Len() int { return len(p.Dirs) }

// Empty reports whether the search produced no step at all.
func (p Path) Empty() bool { return len(p.Dirs) == 0 }

// Pop consumes the next step.
func (p *Path) Pop() (arena.Position, arena.Direction) {
	n := len(p.Dirs) - 1
	pos, dir := p.Cells[n], p.Dirs[n]
	p.Cells = p.Cells[:n]
	p.Dirs = p.Dirs[:n]
	return pos, dir
}

type node struct {
	pos  arena.Position
	cost float64 // dist from source + heuristic
	h    float64 // heuristic alone, the tie-breaker
}

// ShortestPath runs an A* search from src toward dst over the free cells of
// g. maxIter caps the number of expansions (0 means DefaultMaxIterations;
// negative means unbounded). The search stops when dst is expanded, the
// frontier empties, or the cap fires; in every case the best path found so
// far is reconstructed, which is why callers must verify Cells[0].
//
// Ties on cost break toward the lower heuristic value, preferring nodes
// closer to the goal. The result is deterministic for a given graph.
func ShortestPath(g Graph, src, dst arena.Position, h Heuristic, maxIter int) Path {
	if maxIter == 0 {
		maxIter = DefaultMaxIterations
	}

	w, ht := g.Width(), g.Height()
	cells := w * ht
	dist := make([]float64, cells)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	// Only the direction that entered a cell is stored; walking it
	// backward just negates the direction, so no coordinates are kept.
	parent := make([]arena.Direction, cells)
	closed := make([]bool, cells)
	idx := func(p arena.Position) int { return p.Y*w + p.X }

	frontier := heaps.New(func(a, b node) bool {
		if a.cost != b.cost {
			return a.cost < b.cost
		}
		return a.h < b.h
	})

	dist[idx(src)] = 0
	current := src
	var buf [4]arena.Step

	for iter := 0; current != dst; iter++ {
		if maxIter > 0 && iter >= maxIter {
			break
		}

		d := dist[idx(current)]
		for _, step := range g.FreeNeighbors(current, buf[:0]) {
			ni := idx(step.Pos)
			if closed[ni] {
				continue
			}
			if nd := d + 1; nd < dist[ni] {
				dist[ni] = nd
				parent[ni] = step.Dir
				frontier.Push(node{pos: step.Pos, cost: nd + h(step.Pos), h: h(step.Pos)})
			}
		}
		closed[idx(current)] = true

		// Stale frontier entries are skipped lazily: a relaxed cell is
		// re-pushed with its better cost and the old entry surfaces later,
		// after the cell is closed.
		next, ok := popOpen(frontier, closed, idx)
		if !ok {
			break
		}
		current = next
	}

	return reconstruct(g, src, current, parent, dist, idx)
}

func popOpen(frontier *heaps.Heap[node], closed []bool, idx func(arena.Position) int) (arena.Position, bool) {
	for frontier.Len() > 0 {
		n := frontier.Pop()
		if !closed[idx(n.pos)] {
			return n.pos, true
		}
	}
	return arena.Position{}, false
}

// reconstruct walks parent directions backward from the final expanded node
// to the source. A visited node without a parent is a defect in the search
// itself and panics.
func reconstruct(g Graph, src, end arena.Position, parent []arena.Direction, dist []float64, idx func(arena.Position) int) Path {
	var path Path
	for p := end; p != src; {
		i := idx(p)
		d := parent[i]
		if math.IsInf(dist[i], 1) || !d.IsCardinal() {
			panic(fmt.Sprintf("search: missing parent at (%d,%d)", p.X, p.Y))
		}
		path.Cells = append(path.Cells, p)
		path.Dirs = append(path.Dirs, d)
		p = g.Neighbor(p, d.Opposite())
	}
	return path
}
