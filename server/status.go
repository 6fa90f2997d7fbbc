package server

import (
	"encoding/json"
	"net/http"
	"sync"
)

// Status serves a JSON summary of the running game. The arena itself is
// not safe for concurrent use, so the tick loop publishes its counters
// here after every tick and handlers only ever read the published copy.
type Status struct {
	gameID string
	hub    *Hub

	mu    sync.Mutex
	tick  int
	alive int
}

func NewStatus(gameID string, hub *Hub) *Status {
	return &Status{gameID: gameID, hub: hub}
}

// Update publishes the counters of the tick that just resolved.
func (s *Status) Update(tick, alive int) {
	s.mu.Lock()
	s.tick = tick
	s.alive = alive
	s.mu.Unlock()
}

func (s *Status) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	tick, alive := s.tick, s.alive
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"game_id":    s.gameID,
		"tick":       tick,
		"alive":      alive,
		"spectators": s.hub.ClientCount(),
	})
}
