package arena

// AgentSnapshot is the read-only render view of one agent.
type AgentSnapshot struct {
	ID    int        `json:"id"`
	Alive bool       `json:"alive"`
	Body  []Position `json:"body"` // head first
	// Path is the planned path of an AI agent, destination first.
	// Empty for manual agents and for agents with no current plan.
	Path []Position `json:"path,omitempty"`
}

// Snapshot is a self-contained view of the arena for renderers, spectator
// feeds and recorders. Everything is copied; holding a Snapshot across
// ticks is safe.
type Snapshot struct {
	Tick   int             `json:"tick"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Food   []Position      `json:"food"`
	Agents []AgentSnapshot `json:"agents"`
}

// Snapshot captures the current arena state. Food comes back in the
// row-major order FoodPositions guarantees; agents appear in attach
// order, dead ones included.
func (a *Arena) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   a.tick,
		Width:  a.width,
		Height: a.height,
		Food:   a.FoodPositions(),
		Agents: make([]AgentSnapshot, 0, len(a.agents)),
	}
	for _, ag := range a.agents {
		as := AgentSnapshot{
			ID:    ag.ID(),
			Alive: ag.Alive(),
			Body:  ag.Cells(),
		}
		if ins, ok := ag.(Inspector); ok && ag.Alive() {
			as.Path = ins.Inspect()
		}
		snap.Agents = append(snap.Agents, as)
	}
	return snap
}
