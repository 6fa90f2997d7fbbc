package agent

import (
	"math/rand"
	"strings"
	"testing"

	"snaketron/arena"
)

func newWorld(t *testing.T, cfg arena.Config) *arena.Arena {
	t.Helper()
	w, err := arena.New(cfg)
	if err != nil {
		t.Fatalf("arena.New(%+v): %v", cfg, err)
	}
	return w
}

func attachPlayer(t *testing.T, w *arena.Arena, body []arena.Position, dir arena.Direction) *Player {
	t.Helper()
	p, err := NewPlayer(w, body, dir)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	if err := w.Attach(p); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	return p
}

// vertical returns a body of length n with the head at (x, y), extending
// downward, so the snake naturally moves Up.
func vertical(x, y, n int) []arena.Position {
	body := make([]arena.Position, n)
	for i := range body {
		body[i] = arena.Position{X: x, Y: y + i}
	}
	return body
}

func obstacleSum(w *arena.Arena) int {
	sum := 0
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			sum += w.ObstacleCount(arena.Position{X: x, Y: y})
		}
	}
	return sum
}

func aliveLenSum(w *arena.Arena) int {
	sum := 0
	for _, ag := range w.AliveAgents() {
		sum += ag.Len()
	}
	return sum
}

func dumpBoard(w *arena.Arena) string {
	var b strings.Builder
	heads := make(map[arena.Position]bool)
	for _, ag := range w.AliveAgents() {
		heads[ag.Head()] = true
	}
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			p := arena.Position{X: x, Y: y}
			switch {
			case heads[p]:
				b.WriteByte('H')
			case w.FoodAt(p):
				b.WriteByte('F')
			case w.ObstacleCount(p) > 0:
				c := w.ObstacleCount(p)
				if c > 9 {
					c = 9
				}
				b.WriteByte(byte('0' + c))
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func checkConservation(t *testing.T, w *arena.Arena) {
	t.Helper()
	if got, want := obstacleSum(w), aliveLenSum(w); got != want {
		t.Fatalf("tick %d: obstacle sum %d != alive body sum %d\n%s",
			w.Tick(), got, want, dumpBoard(w))
	}
}

func TestMoveAdvancesBody(t *testing.T) {
	w := newWorld(t, arena.Config{Width: 7, Height: 7, RespawnCooldown: arena.RespawnNever})
	p := attachPlayer(t, w, vertical(3, 2, 3), arena.Up)

	w.SimulateTick(rand.New(rand.NewSource(1)))

	want := []arena.Position{{X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 3}}
	got := p.Cells()
	if len(got) != len(want) {
		t.Fatalf("body length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("body[%d] = %v, want %v\n%s", i, got[i], want[i], dumpBoard(w))
		}
	}
	if !w.PosIsFree(arena.Position{X: 3, Y: 4}) {
		t.Fatal("vacated tail cell still obstructed")
	}
	checkConservation(t, w)
}

func TestSelfCollisionCutsToNeck(t *testing.T) {
	// A length-3 snake turning straight back lands its head on the cell
	// behind the neck. That bite removes one tail segment, leaving length 2.
	w := newWorld(t, arena.Config{Width: 5, Height: 5, RespawnCooldown: arena.RespawnNever})
	p := attachPlayer(t, w, vertical(2, 2, 3), arena.Down)

	res := w.SimulateTick(rand.New(rand.NewSource(1)))
	t.Logf("after self-bite:\n%s", dumpBoard(w))

	if len(res.Deaths) != 0 {
		t.Fatalf("self-collision killed the snake, want a cut")
	}
	if !p.Alive() {
		t.Fatal("snake died from biting itself")
	}
	if p.Len() != 2 {
		t.Fatalf("length after cut = %d, want 2", p.Len())
	}
	want := []arena.Position{{X: 2, Y: 3}, {X: 2, Y: 2}}
	for i, c := range p.Cells() {
		if c != want[i] {
			t.Fatalf("body[%d] = %v, want %v", i, c, want[i])
		}
	}
	checkConservation(t, w)
}

func TestHeadOnCollisionKillsBoth(t *testing.T) {
	w := newWorld(t, arena.Config{Width: 9, Height: 5, RespawnCooldown: arena.RespawnNever})
	left, err := NewPlayer(w, []arena.Position{{X: 3, Y: 2}, {X: 2, Y: 2}, {X: 1, Y: 2}}, arena.Right)
	if err != nil {
		t.Fatal(err)
	}
	right, err := NewPlayer(w, []arena.Position{{X: 5, Y: 2}, {X: 6, Y: 2}, {X: 7, Y: 2}}, arena.Left)
	if err != nil {
		t.Fatal(err)
	}
	for _, ag := range []*Player{left, right} {
		if err := w.Attach(ag); err != nil {
			t.Fatal(err)
		}
	}

	res := w.SimulateTick(rand.New(rand.NewSource(1)))
	t.Logf("after head-on collision:\n%s", dumpBoard(w))

	if len(res.Deaths) != 2 {
		t.Fatalf("deaths = %d, want 2", len(res.Deaths))
	}
	if left.Alive() || right.Alive() {
		t.Fatal("a snake survived a head-on collision")
	}
	if w.AliveCount() != 0 {
		t.Fatalf("alive count = %d, want 0", w.AliveCount())
	}
	if sum := obstacleSum(w); sum != 0 {
		t.Fatalf("dead snakes left %d obstacles on the grid", sum)
	}
}

func TestContestedFoodFeedsNobody(t *testing.T) {
	w := newWorld(t, arena.Config{Width: 9, Height: 5, RespawnCooldown: arena.RespawnNever})
	left := attachPlayer(t, w, []arena.Position{{X: 3, Y: 2}, {X: 2, Y: 2}, {X: 1, Y: 2}}, arena.Right)
	right := attachPlayer(t, w, []arena.Position{{X: 5, Y: 2}, {X: 6, Y: 2}, {X: 7, Y: 2}}, arena.Left)
	if !w.PlaceFood(arena.Position{X: 4, Y: 2}) {
		t.Fatal("PlaceFood failed")
	}

	res := w.SimulateTick(rand.New(rand.NewSource(1)))

	if len(res.FoodConsumed) != 0 {
		t.Fatalf("contested food was consumed: %v", res.FoodConsumed)
	}
	if !w.FoodAt(arena.Position{X: 4, Y: 2}) {
		t.Fatal("contested food disappeared")
	}
	if left.Len() != 3 || right.Len() != 3 {
		t.Fatalf("a snake grew on contested food: %d and %d", left.Len(), right.Len())
	}
	// Both heads landed on the same cell, so both die anyway.
	if len(res.Deaths) != 2 {
		t.Fatalf("deaths = %d, want 2", len(res.Deaths))
	}
}

func TestEatingFoodGrows(t *testing.T) {
	w := newWorld(t, arena.Config{Width: 7, Height: 7, RespawnCooldown: arena.RespawnNever})
	p := attachPlayer(t, w, vertical(3, 2, 3), arena.Up)
	food := arena.Position{X: 3, Y: 1}
	if !w.PlaceFood(food) {
		t.Fatal("PlaceFood failed")
	}

	res := w.SimulateTick(rand.New(rand.NewSource(1)))
	t.Logf("after eating:\n%s", dumpBoard(w))

	if len(res.FoodConsumed) != 1 || res.FoodConsumed[0] != food {
		t.Fatalf("FoodConsumed = %v, want [%v]", res.FoodConsumed, food)
	}
	if w.FoodAt(food) {
		t.Fatal("consumed food still on the board")
	}
	if p.Len() != 4 {
		t.Fatalf("length after eating = %d, want 4", p.Len())
	}
	// Growth restores the tail cell vacated by the move.
	cells := p.Cells()
	if tail := cells[len(cells)-1]; tail != (arena.Position{X: 3, Y: 4}) {
		t.Fatalf("tail = %v, want (3,4)", tail)
	}
	checkConservation(t, w)
}

func TestSeamCrossingIsFatalWithoutWrap(t *testing.T) {
	solid := newWorld(t, arena.Config{Width: 5, Height: 5, NoWrap: true, RespawnCooldown: arena.RespawnNever})
	doomed := attachPlayer(t, solid, []arena.Position{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}, arena.Left)

	res := solid.SimulateTick(rand.New(rand.NewSource(1)))
	if doomed.Alive() || len(res.Deaths) != 1 {
		t.Fatal("crossing the seam on a non-wrapping arena did not kill")
	}

	wrap := newWorld(t, arena.Config{Width: 5, Height: 5, RespawnCooldown: arena.RespawnNever})
	survivor := attachPlayer(t, wrap, []arena.Position{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}, arena.Left)

	res = wrap.SimulateTick(rand.New(rand.NewSource(1)))
	if !survivor.Alive() || len(res.Deaths) != 0 {
		t.Fatal("wrapping move killed the snake")
	}
	if head := survivor.Head(); head != (arena.Position{X: 4, Y: 2}) {
		t.Fatalf("head after wrap = %v, want (4,2)", head)
	}
}

func TestRespawnAfterCooldownAtCenterAnchor(t *testing.T) {
	// Both snakes die head-on at tick 1. With a cooldown of 2, phase 8 of
	// ticks 1 and 2 only count down; tick 3 places the first dead snake at
	// the anchor-diagram vertex, the exact board center.
	w := newWorld(t, arena.Config{Width: 9, Height: 9, RespawnCooldown: 2})
	attachPlayer(t, w, []arena.Position{{X: 3, Y: 4}, {X: 2, Y: 4}, {X: 1, Y: 4}}, arena.Right)
	attachPlayer(t, w, []arena.Position{{X: 5, Y: 4}, {X: 6, Y: 4}, {X: 7, Y: 4}}, arena.Left)
	rng := rand.New(rand.NewSource(42))

	res := w.SimulateTick(rng)
	if len(res.Deaths) != 2 || res.Respawned != nil {
		t.Fatalf("tick 1: deaths=%d respawned=%v", len(res.Deaths), res.Respawned)
	}
	if res = w.SimulateTick(rng); res.Respawned != nil {
		t.Fatal("tick 2: respawned during cooldown")
	}

	res = w.SimulateTick(rng)
	if res.Respawned == nil {
		t.Fatal("tick 3: no respawn after cooldown expired")
	}
	back := res.Respawned
	if head := back.Head(); head != (arena.Position{X: 4, Y: 4}) {
		t.Fatalf("respawn head = %v, want board center (4,4)", head)
	}
	if back.Len() != back.InitialLength() {
		t.Fatalf("respawn length = %d, want %d", back.Len(), back.InitialLength())
	}
	if back.Direction() != arena.Down {
		t.Fatalf("respawn direction = %v, want down", back.Direction())
	}
	if w.AliveCount() != 1 {
		t.Fatalf("alive count = %d, want 1", w.AliveCount())
	}
	checkConservation(t, w)

	// The second dead snake waits out a fresh cooldown before its attempt.
	if res = w.SimulateTick(rng); res.Respawned != nil {
		t.Fatal("tick 4: cooldown did not restart after a respawn")
	}
	if res = w.SimulateTick(rng); res.Respawned != nil {
		t.Fatal("tick 5: cooldown did not restart after a respawn")
	}
	found := false
	for i := 0; i < 4 && !found; i++ {
		found = w.SimulateTick(rng).Respawned != nil
	}
	if !found {
		t.Fatal("second snake never respawned")
	}
	checkConservation(t, w)
}

func TestRespawnNeverKeepsDeadDead(t *testing.T) {
	w := newWorld(t, arena.Config{Width: 9, Height: 5, RespawnCooldown: arena.RespawnNever})
	attachPlayer(t, w, []arena.Position{{X: 3, Y: 2}, {X: 2, Y: 2}, {X: 1, Y: 2}}, arena.Right)
	attachPlayer(t, w, []arena.Position{{X: 5, Y: 2}, {X: 6, Y: 2}, {X: 7, Y: 2}}, arena.Left)
	rng := rand.New(rand.NewSource(3))

	w.SimulateTick(rng)
	for i := 0; i < 20; i++ {
		if res := w.SimulateTick(rng); res.Respawned != nil {
			t.Fatal("agent respawned despite RespawnNever")
		}
	}
	if w.AliveCount() != 0 {
		t.Fatalf("alive count = %d, want 0", w.AliveCount())
	}
}

func TestResetRestoresInitialGame(t *testing.T) {
	w := newWorld(t, arena.Config{Width: 9, Height: 9, Food: 3, RespawnCooldown: 1})
	p := attachPlayer(t, w, vertical(4, 3, 3), arena.Up)
	rng := rand.New(rand.NewSource(5))
	w.Reset(rng)

	for i := 0; i < 15; i++ {
		w.SimulateTick(rng)
	}

	w.Reset(rng)
	if w.Tick() != 0 {
		t.Fatalf("tick after reset = %d, want 0", w.Tick())
	}
	if !p.Alive() {
		t.Fatal("agent dead after reset")
	}
	want := vertical(4, 3, 3)
	got := p.Cells()
	if len(got) != len(want) {
		t.Fatalf("body length after reset = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("body[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	checkConservation(t, w)
}

func TestGridConservationUnderRandomPlay(t *testing.T) {
	w := newWorld(t, arena.Config{Width: 11, Height: 11, Food: 4, RespawnCooldown: 1})
	bodies := [][]arena.Position{
		vertical(2, 5, 3),
		vertical(4, 5, 3),
		vertical(6, 5, 3),
		vertical(8, 5, 3),
	}

	attachPlayer(t, w, bodies[0], arena.Up)
	for _, x := range []int{1, 2} {
		s, err := NewSeeker(w, bodies[x], arena.Up, SeekerConfig{Latency: 1, Caution: 1})
		if err != nil {
			t.Fatal(err)
		}
		if err := w.Attach(s); err != nil {
			t.Fatal(err)
		}
	}
	hunter, err := NewAmbusher(w, bodies[3], arena.Up, AmbusherConfig{
		SeekerConfig: SeekerConfig{Latency: 2, Caution: 1},
		Anticipation: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Attach(hunter); err != nil {
		t.Fatal(err)
	}
	for _, ag := range w.Agents() {
		if ag.ID() != hunter.ID() {
			hunter.AddOpponent(ag)
		}
	}

	rng := rand.New(rand.NewSource(99))
	w.Reset(rng)
	checkConservation(t, w)

	for i := 0; i < 300; i++ {
		res := w.SimulateTick(rng)
		checkConservation(t, w)
		for _, d := range res.Deaths {
			if d.Alive() {
				t.Fatalf("tick %d: reported death %d still alive", w.Tick(), d.ID())
			}
		}
		if res.Respawned != nil && !res.Respawned.Alive() {
			t.Fatalf("tick %d: respawned agent not alive", w.Tick())
		}
	}
	if w.Tick() != 300 {
		t.Fatalf("tick = %d, want 300", w.Tick())
	}
}
