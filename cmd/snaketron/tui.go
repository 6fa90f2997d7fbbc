package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"snaketron/agent"
	"snaketron/arena"
)

type tickMsg time.Time

type model struct {
	world  *arena.Arena
	player *agent.Player
	rng    *rand.Rand

	tickPeriod time.Duration
	paused     bool
	showPaths  bool

	snap       arena.Snapshot
	lastDeaths map[int]bool
	deathCount map[int]int
	foodEaten  map[int]int
}

func newModel(world *arena.Arena, player *agent.Player, rng *rand.Rand, tick time.Duration) model {
	return model{
		world:      world,
		player:     player,
		rng:        rng,
		tickPeriod: tick,
		showPaths:  true,
		snap:       world.Snapshot(),
		lastDeaths: map[int]bool{},
		deathCount: map[int]int{},
		foodEaten:  map[int]int{},
	}
}

func (m model) tickCmd() tea.Cmd {
	return tea.Tick(m.tickPeriod, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "w", "k":
			m.player.AddDirRequest(arena.Up)
		case "down", "s", "j":
			m.player.AddDirRequest(arena.Down)
		case "left", "a", "h":
			m.player.AddDirRequest(arena.Left)
		case "right", "d", "l":
			m.player.AddDirRequest(arena.Right)
		case " ":
			m.paused = !m.paused
		case "p":
			m.showPaths = !m.showPaths
		case "r":
			m.world.Reset(m.rng)
			m.snap = m.world.Snapshot()
			m.lastDeaths = map[int]bool{}
			m.deathCount = map[int]int{}
			m.foodEaten = map[int]int{}
		}
		return m, nil

	case tickMsg:
		if !m.paused {
			res := m.world.SimulateTick(m.rng)
			m.snap = m.world.Snapshot()
			m.lastDeaths = map[int]bool{}
			for _, d := range res.Deaths {
				m.lastDeaths[d.ID()] = true
				m.deathCount[d.ID()]++
			}
			for _, p := range res.FoodConsumed {
				for _, ag := range m.snap.Agents {
					if ag.Alive && len(ag.Body) > 0 && ag.Body[0] == p {
						m.foodEaten[ag.ID]++
					}
				}
			}
		}
		return m, m.tickCmd()
	}
	return m, nil
}

var (
	agentColors = []lipgloss.Color{"42", "205", "39", "214", "135", "196", "51", "226"}

	foodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	deadStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	frameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func colorFor(id int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(agentColors[id%len(agentColors)])
}

func (m model) View() string {
	type cellGlyph struct {
		s    string
		rank int // higher wins when cells stack
	}
	grid := make([]cellGlyph, m.snap.Width*m.snap.Height)
	at := func(p arena.Position) *cellGlyph { return &grid[p.Y*m.snap.Width+p.X] }

	set := func(p arena.Position, s string, rank int) {
		if c := at(p); rank > c.rank {
			c.s, c.rank = s, rank
		}
	}

	if m.showPaths {
		for _, ag := range m.snap.Agents {
			for _, p := range ag.Path {
				set(p, pathStyle.Render("·"), 1)
			}
		}
	}
	for _, f := range m.snap.Food {
		set(f, foodStyle.Render("●"), 2)
	}
	for _, ag := range m.snap.Agents {
		style := colorFor(ag.ID)
		switch {
		case m.lastDeaths[ag.ID]:
			// Corpses flash for the tick they died on.
			style = deadStyle
		case !ag.Alive:
			continue
		}
		for i, p := range ag.Body {
			if i == 0 {
				set(p, style.Bold(true).Render("█"), 4)
			} else {
				set(p, style.Render("▓"), 3)
			}
		}
	}

	var b strings.Builder
	for y := 0; y < m.snap.Height; y++ {
		for x := 0; x < m.snap.Width; x++ {
			c := grid[y*m.snap.Width+x]
			if c.s == "" {
				b.WriteString(emptyStyle.Render("·"))
			} else {
				b.WriteString(c.s)
			}
		}
		if y < m.snap.Height-1 {
			b.WriteByte('\n')
		}
	}

	var score strings.Builder
	fmt.Fprintf(&score, "tick %d", m.snap.Tick)
	if m.paused {
		score.WriteString("  [paused]")
	}
	score.WriteByte('\n')
	for _, ag := range m.snap.Agents {
		name := fmt.Sprintf("snake %d", ag.ID)
		if m.player != nil && ag.ID == m.player.ID() {
			name = "you    "
		}
		state := fmt.Sprintf("len %-3d", len(ag.Body))
		if !ag.Alive {
			state = "dead   "
		}
		fmt.Fprintf(&score, "%s %s  food %-3d deaths %d\n",
			colorFor(ag.ID).Render(name), state, m.foodEaten[ag.ID], m.deathCount[ag.ID])
	}

	help := helpStyle.Render("arrows/wasd move · space pause · p paths · r restart · q quit")
	return frameStyle.Render(b.String()) + "\n" + score.String() + help + "\n"
}
