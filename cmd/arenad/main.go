// Command arenad runs a headless snake arena populated by AI agents and
// publishes it: a websocket spectator feed on /ws, a JSON status endpoint
// on /status, and optionally a parquet recording of every tick.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snaketron/arena"
	"snaketron/internal/logging"
	"snaketron/internal/match"
	"snaketron/record"
	"snaketron/search"
	"snaketron/server"
)

func main() {
	addr := flag.String("addr", ":8721", "HTTP listen address")
	width := flag.Int("width", 40, "Arena width in cells")
	height := flag.Int("height", 30, "Arena height in cells")
	food := flag.Int("food", 5, "Target number of food items on the board")
	respawn := flag.Int("respawn", 15, "Respawn cooldown in ticks (-1 disables respawn)")
	tick := flag.Duration("tick", 100*time.Millisecond, "Simulation tick period")
	seekers := flag.Int("seekers", 3, "Number of food-seeking AI snakes")
	hunters := flag.Int("hunters", 2, "Number of offensive AI snakes")
	latency := flag.Int("latency", 3, "AI replanning latency in ticks")
	caution := flag.Int("caution", 1, "AI caution radius around rival heads")
	anticipation := flag.Int("anticipation", 15, "Offensive AI attack anticipation horizon")
	heuristic := flag.String("heuristic", "periodic", "Pathfinding heuristic: euclidean, manhattan or periodic")
	seed := flag.Int64("seed", 0, "Random seed (0 uses the current time)")
	recordDir := flag.String("record-dir", "", "If set, record every tick as parquet batches in this directory")
	ticksPerFile := flag.Int("ticks-per-file", 2048, "Ticks buffered per parquet batch file")
	flag.Parse()

	slog.SetDefault(slog.New(logging.NewHandler(os.Stdout, nil)))

	hk, err := search.ParseHeuristicKind(*heuristic)
	if err != nil {
		slog.Error("bad heuristic flag", "err", err)
		os.Exit(1)
	}
	if *seekers+*hunters == 0 {
		slog.Error("no agents configured")
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	world, _, err := match.Build(match.Options{
		Width:        *width,
		Height:       *height,
		Food:         *food,
		Respawn:      *respawn,
		Seekers:      *seekers,
		Hunters:      *hunters,
		Latency:      *latency,
		Caution:      *caution,
		Anticipation: *anticipation,
		Heuristic:    hk,
	})
	if err != nil {
		slog.Error("world construction failed", "err", err)
		os.Exit(1)
	}
	world.Reset(rng)

	gameID := fmt.Sprintf("arenad_%d", time.Now().UnixNano())

	var recorder *record.Recorder
	if *recordDir != "" {
		recorder, err = record.NewRecorder(*recordDir, *ticksPerFile)
		if err != nil {
			slog.Error("recorder setup failed", "err", err)
			os.Exit(1)
		}
	}

	hub := server.NewHub()
	status := server.NewStatus(gameID, hub)
	status.Update(world.Tick(), world.AliveCount())
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.Handle("/status", status)
	httpSrv := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		slog.Info("listening", "addr", *addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "err", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("game starting", "game_id", gameID,
		"size", fmt.Sprintf("%dx%d", *width, *height),
		"seekers", *seekers, "hunters", *hunters, "seed", *seed)

	runLoop(ctx, world, rng, *tick, gameID, hub, status, recorder)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutdownCtx)
	hub.Close()
	if recorder != nil {
		if err := recorder.Close(); err != nil {
			slog.Error("final parquet flush failed", "err", err)
		}
	}
	slog.Info("shutdown complete", "ticks", world.Tick())
}

// runLoop drives the simulation until ctx is canceled. Each tick is
// broadcast to spectators and appended to the recorder; a stats line goes
// out every few seconds.
func runLoop(ctx context.Context, world *arena.Arena, rng *rand.Rand, period time.Duration, gameID string, hub *server.Hub, status *server.Status, recorder *record.Recorder) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	stats := time.NewTicker(10 * time.Second)
	defer stats.Stop()

	deaths := 0
	for {
		select {
		case <-ctx.Done():
			slog.Info("shutdown requested")
			return

		case <-ticker.C:
			res := world.SimulateTick(rng)
			snap := world.Snapshot()
			status.Update(snap.Tick, world.AliveCount())

			for _, d := range res.Deaths {
				deaths++
				slog.Info("snake died", "id", d.ID(), "tick", snap.Tick)
			}
			if res.Respawned != nil {
				slog.Info("snake respawned", "id", res.Respawned.ID(),
					"at", res.Respawned.Head(), "tick", snap.Tick)
			}

			hub.Broadcast(snap)
			if recorder != nil {
				died := make([]int, 0, len(res.Deaths))
				for _, d := range res.Deaths {
					died = append(died, d.ID())
				}
				if err := recorder.Append(record.RowFromSnapshot(gameID, snap, died)); err != nil {
					slog.Error("parquet append failed", "err", err)
				}
			}

		case <-stats.C:
			slog.Info("stats", "tick", world.Tick(), "alive", world.AliveCount(),
				"deaths", deaths, "spectators", hub.ClientCount())
		}
	}
}
