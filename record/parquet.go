// Package record writes game observations to parquet for offline
// analysis. One row per tick, coordinate arrays per agent, zstd
// compression, atomic batch files. The engine never reads these back;
// this is an append-only observation log, not game-state persistence.
package record

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"snaketron/arena"
)

// TickRow is a single (game, tick) snapshot optimized for compression:
// one row per tick, with food and bodies stored as coordinate arrays so
// nothing is duplicated across agents.
type TickRow struct {
	GameID string `parquet:"game_id,dict"`
	Tick   int32  `parquet:"tick"`
	Width  int32  `parquet:"width"`
	Height int32  `parquet:"height"`

	FoodX []int32 `parquet:"food_x"`
	FoodY []int32 `parquet:"food_y"`

	Agents []AgentRow `parquet:"agents"`
}

// AgentRow is one agent's slice of a TickRow. Died marks agents that died
// on this very tick, for death-rate queries without windowing.
type AgentRow struct {
	ID    int32 `parquet:"id"`
	Alive bool  `parquet:"alive"`
	Died  bool  `parquet:"died"`

	BodyX []int32 `parquet:"body_x"`
	BodyY []int32 `parquet:"body_y"`
}

// RowFromSnapshot flattens an arena snapshot into a TickRow. died holds
// the ids of the agents that died on this tick.
func RowFromSnapshot(gameID string, snap arena.Snapshot, died []int) TickRow {
	diedSet := make(map[int]bool, len(died))
	for _, id := range died {
		diedSet[id] = true
	}

	row := TickRow{
		GameID: gameID,
		Tick:   int32(snap.Tick),
		Width:  int32(snap.Width),
		Height: int32(snap.Height),
		FoodX:  make([]int32, len(snap.Food)),
		FoodY:  make([]int32, len(snap.Food)),
		Agents: make([]AgentRow, 0, len(snap.Agents)),
	}
	for i, f := range snap.Food {
		row.FoodX[i] = int32(f.X)
		row.FoodY[i] = int32(f.Y)
	}
	for _, ag := range snap.Agents {
		ar := AgentRow{
			ID:    int32(ag.ID),
			Alive: ag.Alive,
			Died:  diedSet[ag.ID],
			BodyX: make([]int32, len(ag.Body)),
			BodyY: make([]int32, len(ag.Body)),
		}
		for i, p := range ag.Body {
			ar.BodyX[i] = int32(p.X)
			ar.BodyY[i] = int32(p.Y)
		}
		row.Agents = append(row.Agents, ar)
	}
	return row
}

// WriteBatch writes rows as one parquet file under outDir, going through a
// tmp file and a rename so readers never observe a half-written batch.
// The final file path is returned.
func WriteBatch(outDir string, rows []TickRow) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("batch_%d.parquet", time.Now().UnixNano())
	finalPath := filepath.Join(outDir, name)
	tmpPath := filepath.Join(tmpDir, name+".tmp")
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "tick_row_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}
	return finalPath, nil
}

// Recorder buffers TickRows and flushes them as parquet batches.
// Not safe for concurrent use; drive it from the simulation loop.
type Recorder struct {
	outDir       string
	ticksPerFile int
	pending      []TickRow
}

// NewRecorder returns a Recorder flushing every ticksPerFile rows
// (<= 0 means 1024).
func NewRecorder(outDir string, ticksPerFile int) (*Recorder, error) {
	if outDir == "" {
		return nil, fmt.Errorf("record: output dir is required")
	}
	if ticksPerFile <= 0 {
		ticksPerFile = 1024
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Recorder{outDir: outDir, ticksPerFile: ticksPerFile}, nil
}

// Append buffers one row, flushing if the batch is full.
func (r *Recorder) Append(row TickRow) error {
	r.pending = append(r.pending, row)
	if len(r.pending) < r.ticksPerFile {
		return nil
	}
	return r.Flush()
}

// Flush writes any buffered rows out as one batch.
func (r *Recorder) Flush() error {
	if len(r.pending) == 0 {
		return nil
	}
	if _, err := WriteBatch(r.outDir, r.pending); err != nil {
		return err
	}
	r.pending = r.pending[:0]
	return nil
}

// Close flushes the remaining rows.
func (r *Recorder) Close() error {
	return r.Flush()
}
