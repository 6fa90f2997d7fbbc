package agent

import (
	"fmt"

	"snaketron/arena"
)

// maxDirRequests bounds the player input queue.
const maxDirRequests = 5

// Player is a snake driven by queued direction requests from an input
// layer (keyboard, touch). Requests are buffered so quick successive key
// presses all take effect, one per tick.
type Player struct {
	Snake

	initialDir arena.Direction
	dir        arena.Direction
	requests   []arena.Direction
}

// NewPlayer returns a player-controlled snake. body is ordered head first.
func NewPlayer(w *arena.Arena, body []arena.Position, dir arena.Direction) (*Player, error) {
	if !dir.IsCardinal() {
		return nil, fmt.Errorf("agent: invalid initial direction %v", dir)
	}
	base, err := newSnake(w, body)
	if err != nil {
		return nil, err
	}
	return &Player{
		Snake:      base,
		initialDir: dir,
		dir:        dir,
		requests:   make([]arena.Direction, 0, maxDirRequests),
	}, nil
}

// AddDirRequest queues a direction for an upcoming tick. The request is
// dropped silently when the queue is full, when d is not cardinal, or when
// d would reverse the previously queued (or current) direction straight
// into the snake's own neck.
func (p *Player) AddDirRequest(d arena.Direction) {
	if !d.IsCardinal() || len(p.requests) >= maxDirRequests {
		return
	}
	last := p.dir
	if n := len(p.requests); n > 0 {
		last = p.requests[n-1]
	}
	if d == last.Opposite() {
		return
	}
	p.requests = append(p.requests, d)
}

// DecideDirection pops one queued request if present, otherwise the snake
// keeps going the way it was.
func (p *Player) DecideDirection() {
	if len(p.requests) > 0 {
		p.dir = p.requests[0]
		p.requests = p.requests[1:]
	}
}

func (p *Player) Direction() arena.Direction { return p.dir }

// PendingRequests returns the number of queued direction requests.
func (p *Player) PendingRequests() int { return len(p.requests) }

func (p *Player) Reset() {
	p.resetBody()
	p.dir = p.initialDir
	p.requests = p.requests[:0]
}

func (p *Player) Respawn(body []arena.Position, d arena.Direction) {
	p.respawnBody(body)
	p.dir = d
	p.requests = p.requests[:0]
}
