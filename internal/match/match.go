// Package match assembles an arena and its agents from command-line
// options, shared by the interactive and headless frontends.
package match

import (
	"fmt"

	"snaketron/agent"
	"snaketron/arena"
	"snaketron/search"
)

// Options selects the arena geometry and the mix of agents.
type Options struct {
	Width, Height int
	Food          int
	Respawn       int // ticks, arena.RespawnNever to disable
	NoWrap        bool

	WithPlayer bool
	Seekers    int
	Hunters    int

	Latency      int
	Caution      int
	Anticipation int
	Heuristic    search.HeuristicKind
}

// Build constructs the arena and attaches the agents. Snakes start as
// vertical three-cell bodies spread evenly along the middle row, facing
// up. The returned player is nil unless Options.WithPlayer is set.
// Call arena.Reset before the first tick.
func Build(opts Options) (*arena.Arena, *agent.Player, error) {
	world, err := arena.New(arena.Config{
		Width:           opts.Width,
		Height:          opts.Height,
		Food:            opts.Food,
		RespawnCooldown: opts.Respawn,
		NoWrap:          opts.NoWrap,
	})
	if err != nil {
		return nil, nil, err
	}

	total := opts.Seekers + opts.Hunters
	if opts.WithPlayer {
		total++
	}
	if total == 0 {
		return nil, nil, fmt.Errorf("match: no agents configured")
	}
	// Bodies occupy rows Height/2 through Height/2+2, so the last cell
	// stays on the board only from height 5 up.
	if opts.Height < 5 {
		return nil, nil, fmt.Errorf("match: arena height %d too small for initial bodies", opts.Height)
	}

	xs := make([]int, total)
	for i := range xs {
		xs[i] = (i + 1) * opts.Width / (total + 1)
		if i > 0 && xs[i] == xs[i-1] {
			return nil, nil, fmt.Errorf("match: arena width %d too narrow for %d snakes", opts.Width, total)
		}
	}

	body := func(i int) []arena.Position {
		x, y := xs[i], opts.Height/2
		return []arena.Position{{X: x, Y: y}, {X: x, Y: y + 1}, {X: x, Y: y + 2}}
	}

	seekerCfg := agent.SeekerConfig{
		Latency:   opts.Latency,
		Caution:   opts.Caution,
		Heuristic: opts.Heuristic,
	}

	slot := 0
	var player *agent.Player
	if opts.WithPlayer {
		player, err = agent.NewPlayer(world, body(slot), arena.Up)
		if err != nil {
			return nil, nil, err
		}
		if err := world.Attach(player); err != nil {
			return nil, nil, err
		}
		slot++
	}

	for i := 0; i < opts.Seekers; i++ {
		s, err := agent.NewSeeker(world, body(slot), arena.Up, seekerCfg)
		if err != nil {
			return nil, nil, err
		}
		if err := world.Attach(s); err != nil {
			return nil, nil, err
		}
		slot++
	}

	var ambushers []*agent.Ambusher
	for i := 0; i < opts.Hunters; i++ {
		a, err := agent.NewAmbusher(world, body(slot), arena.Up, agent.AmbusherConfig{
			SeekerConfig: seekerCfg,
			Anticipation: opts.Anticipation,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := world.Attach(a); err != nil {
			return nil, nil, err
		}
		ambushers = append(ambushers, a)
		slot++
	}

	// Hunters watch every snake but themselves.
	for _, a := range ambushers {
		for _, other := range world.Agents() {
			if other.ID() != a.ID() {
				a.AddOpponent(other)
			}
		}
	}

	return world, player, nil
}
