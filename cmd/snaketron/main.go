// Command snaketron runs an interactive snake arena in the terminal.
// One snake is keyboard-driven; the rest are AI agents seeking food or
// hunting the player. All game logic lives in the core packages; this
// program only schedules ticks and renders snapshots.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"snaketron/internal/logging"
	"snaketron/internal/match"
	"snaketron/search"
)

func main() {
	width := flag.Int("width", 30, "Arena width in cells")
	height := flag.Int("height", 20, "Arena height in cells")
	food := flag.Int("food", 3, "Target number of food items on the board")
	respawn := flag.Int("respawn", 20, "Respawn cooldown in ticks (-1 disables respawn)")
	tick := flag.Duration("tick", 120*time.Millisecond, "Simulation tick period")
	seekers := flag.Int("seekers", 2, "Number of food-seeking AI snakes")
	hunters := flag.Int("hunters", 1, "Number of offensive AI snakes")
	latency := flag.Int("latency", 3, "AI replanning latency in ticks")
	caution := flag.Int("caution", 1, "AI caution radius around rival heads")
	anticipation := flag.Int("anticipation", 15, "Offensive AI attack anticipation horizon")
	heuristic := flag.String("heuristic", "periodic", "Pathfinding heuristic: euclidean, manhattan or periodic")
	noWrap := flag.Bool("no-wrap", false, "Disable toroidal wrapping; the edges become deadly")
	seed := flag.Int64("seed", 0, "Random seed (0 uses the current time)")
	flag.Parse()

	// The terminal belongs to the TUI; logs go to a file next to it.
	logFile, err := os.OpenFile("snaketron.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err == nil {
		defer logFile.Close()
		slog.SetDefault(slog.New(logging.NewHandler(logFile, nil)))
	}

	hk, err := search.ParseHeuristicKind(*heuristic)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	world, player, err := match.Build(match.Options{
		Width:        *width,
		Height:       *height,
		Food:         *food,
		Respawn:      *respawn,
		NoWrap:       *noWrap,
		WithPlayer:   true,
		Seekers:      *seekers,
		Hunters:      *hunters,
		Latency:      *latency,
		Caution:      *caution,
		Anticipation: *anticipation,
		Heuristic:    hk,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	world.Reset(rng)
	slog.Info("game starting", "size", fmt.Sprintf("%dx%d", *width, *height), "seed", *seed)

	m := newModel(world, player, rng, *tick)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
