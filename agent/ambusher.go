package agent

import (
	"fmt"

	"snaketron/arena"
)

// AmbusherConfig extends SeekerConfig with the attack horizon.
type AmbusherConfig struct {
	SeekerConfig
	// Anticipation is the maximum number of ticks ahead a rival's head is
	// projected when looking for an ambush point. Must be at least 1.
	Anticipation int
}

// Ambusher is an offensive AI snake. Before falling back to plain food
// seeking it tries to intercept a rival: it projects the rival's head
// forward along its current direction and looks for a cell it can reach
// just in time to be in the way.
type Ambusher struct {
	Seeker

	anticipation int
	target       arena.Agent
	opponents    []arena.Agent
}

// NewAmbusher returns an offensive AI snake. body is ordered head first.
// Opponents to watch are registered with AddOpponent.
func NewAmbusher(w *arena.Arena, body []arena.Position, dir arena.Direction, cfg AmbusherConfig) (*Ambusher, error) {
	if cfg.Anticipation < 1 {
		return nil, fmt.Errorf("agent: attack anticipation %d < 1", cfg.Anticipation)
	}
	seeker, err := NewSeeker(w, body, dir, cfg.SeekerConfig)
	if err != nil {
		return nil, err
	}
	a := &Ambusher{
		Seeker:       *seeker,
		anticipation: cfg.Anticipation,
	}
	a.plan = a.planAttack
	return a, nil
}

// AddOpponent registers a rival this snake will consider attacking.
func (a *Ambusher) AddOpponent(op arena.Agent) {
	a.opponents = append(a.opponents, op)
}

// Target returns the rival currently locked on, or nil.
func (a *Ambusher) Target() arena.Agent { return a.target }

func (a *Ambusher) Reset() {
	a.Seeker.Reset()
	a.target = nil
}

func (a *Ambusher) Respawn(body []arena.Position, d arena.Direction) {
	a.Seeker.Respawn(body, d)
	a.target = nil
}

// planAttack keeps hunting a locked target while it lives, otherwise scans
// all registered opponents; when no ambush works it behaves like a plain
// food seeker.
func (a *Ambusher) planAttack() {
	var ok bool
	if a.target != nil && a.target.Alive() {
		ok = a.computeAttackPath([]arena.Agent{a.target})
	} else {
		var live []arena.Agent
		for _, op := range a.opponents {
			if op.Alive() {
				live = append(live, op)
			}
		}
		ok = a.computeAttackPath(live)
	}
	if !ok {
		a.planFood()
	}
}

// computeAttackPath projects each candidate's head forward one tick at a
// time. A candidate whose projected cell becomes obstructed presumably
// turned or died and is dropped. For the survivors the ambush cell is
// accepted when a path exists whose length fits (impactDelay - ownLength,
// impactDelay]: arriving no later than the rival, and not so early that
// the tail will have moved on before impact.
func (a *Ambusher) computeAttackPath(candidates []arena.Agent) bool {
	live := append([]arena.Agent(nil), candidates...)
	impact := make([]arena.Position, len(live))
	for i, t := range live {
		impact[i] = t.Head()
	}

	for delay := 1; delay <= a.anticipation && len(live) > 0; delay++ {
		next := live[:0]
		nextImpact := impact[:0]
		for i, t := range live {
			p := a.world.Neighbor(impact[i], t.Direction())
			if a.world.ObstacleCount(p) == 0 {
				next = append(next, t)
				nextImpact = append(nextImpact, p)
			}
		}
		live, impact = next, nextImpact

		if i := a.computeShortestPath(impact, delay-a.Len(), delay); i >= 0 {
			a.target = live[i]
			return true
		}
	}

	a.target = nil
	return false
}
