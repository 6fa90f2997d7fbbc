package search

import (
	"fmt"

	"snaketron/arena"
)

// Heuristic estimates the remaining cost from a cell to a fixed destination.
// Each value is bound to one destination at construction and is stateless.
type Heuristic func(p arena.Position) float64

// HeuristicKind selects which distance estimate an AI agent plans with.
type HeuristicKind string

const (
	// Euclidean is the squared straight-line distance. Squaring skips the
	// square root while preserving the ordering of candidates.
	Euclidean HeuristicKind = "euclidean"
	// Manhattan is the taxicab distance.
	Manhattan HeuristicKind = "manhattan"
	// Periodic is the squared Euclidean distance on the torus, taking the
	// shorter of the direct and wrap-around deltas per axis. This is the
	// right default on wrapping arenas.
	Periodic HeuristicKind = "periodic"
)

// ParseHeuristicKind maps a config string to a HeuristicKind.
func ParseHeuristicKind(s string) (HeuristicKind, error) {
	switch HeuristicKind(s) {
	case Euclidean, Manhattan, Periodic:
		return HeuristicKind(s), nil
	}
	return "", fmt.Errorf("search: unknown heuristic %q", s)
}

// For binds the heuristic to a destination on graph g.
func (k HeuristicKind) For(g Graph, dst arena.Position) Heuristic {
	switch k {
	case Manhattan:
		return func(p arena.Position) float64 {
			return float64(abs(dst.X-p.X) + abs(dst.Y-p.Y))
		}
	case Periodic:
		w, h := g.Width(), g.Height()
		return func(p arena.Position) float64 {
			dx, dy := abs(dst.X-p.X), abs(dst.Y-p.Y)
			dx = min(dx, w-dx)
			dy = min(dy, h-dy)
			return float64(dx*dx + dy*dy)
		}
	default:
		return func(p arena.Position) float64 {
			dx, dy := dst.X-p.X, dst.Y-p.Y
			return float64(dx*dx + dy*dy)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
