package record

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"snaketron/arena"
)

func sampleSnapshot() arena.Snapshot {
	return arena.Snapshot{
		Tick:   17,
		Width:  11,
		Height: 9,
		Food:   []arena.Position{{X: 1, Y: 2}, {X: 5, Y: 5}},
		Agents: []arena.AgentSnapshot{
			{
				ID:    0,
				Alive: true,
				Body:  []arena.Position{{X: 3, Y: 3}, {X: 3, Y: 4}, {X: 3, Y: 5}},
			},
			{
				ID:    1,
				Alive: false,
				Body:  []arena.Position{{X: 7, Y: 1}, {X: 7, Y: 2}},
			},
		},
	}
}

func TestRowFromSnapshot(t *testing.T) {
	row := RowFromSnapshot("game_1", sampleSnapshot(), []int{1})

	if row.GameID != "game_1" || row.Tick != 17 || row.Width != 11 || row.Height != 9 {
		t.Fatalf("header fields wrong: %+v", row)
	}
	if len(row.FoodX) != 2 || row.FoodX[1] != 5 || row.FoodY[1] != 5 {
		t.Fatalf("food columns wrong: x=%v y=%v", row.FoodX, row.FoodY)
	}
	if len(row.Agents) != 2 {
		t.Fatalf("agents = %d, want 2", len(row.Agents))
	}

	alive := row.Agents[0]
	if !alive.Alive || alive.Died {
		t.Fatalf("agent 0 flags: %+v", alive)
	}
	if len(alive.BodyX) != 3 || alive.BodyX[0] != 3 || alive.BodyY[2] != 5 {
		t.Fatalf("agent 0 body columns: x=%v y=%v", alive.BodyX, alive.BodyY)
	}

	dead := row.Agents[1]
	if dead.Alive || !dead.Died {
		t.Fatalf("agent 1 flags: %+v, want dead and died-this-tick", dead)
	}
}

func countBatches(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	n := 0
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".parquet") {
			n++
		}
	}
	return n
}

func TestRecorderFlushesFullBatches(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewRecorder(dir, 2)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	snap := sampleSnapshot()
	for i := 0; i < 3; i++ {
		snap.Tick = i
		if err := rec.Append(RowFromSnapshot("game_1", snap, nil)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if got := countBatches(t, dir); got != 1 {
		t.Fatalf("batches after 3 appends with batch size 2 = %d, want 1", got)
	}

	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := countBatches(t, dir); got != 2 {
		t.Fatalf("batches after close = %d, want 2", got)
	}
	// Close with nothing pending writes nothing.
	if err := rec.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if got := countBatches(t, dir); got != 2 {
		t.Fatalf("batches after idempotent close = %d, want 2", got)
	}
}

func TestWriteBatchLeavesNoTempVisible(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteBatch(dir, []TickRow{RowFromSnapshot("g", sampleSnapshot(), nil)})
	if err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("batch written to %s, want directly under %s", path, dir)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("batch file missing: %v", err)
	}
	leftovers, err := os.ReadDir(filepath.Join(dir, "tmp"))
	if err != nil {
		t.Fatalf("tmp dir: %v", err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("tmp dir not empty after a successful write: %v", leftovers)
	}
}
