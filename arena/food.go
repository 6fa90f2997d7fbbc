// food.go implements the opportunistic food placement rules.

package arena

import "math/rand"

// PlaceFood puts a food item on p if the cell holds neither an obstacle
// nor a food item already. It reports whether the food was placed. Useful
// for scripted scenarios; regular play refills food randomly each tick.
func (a *Arena) PlaceFood(p Position) bool {
	if !a.InBounds(p) || !a.PosIsFree(p) {
		return false
	}
	if _, ok := a.food[p]; ok {
		return false
	}
	a.food[p] = struct{}{}
	return true
}

// consumeFood despawns the food at p if exactly one living head sits on it.
// Simultaneous multi-head arrival leaves the food in place so that nobody
// gets an ambiguous double grant.
func (a *Arena) consumeFood(p Position) bool {
	if _, ok := a.food[p]; !ok {
		return false
	}
	heads := 0
	for _, ag := range a.alive {
		if ag.Head() == p {
			heads++
		}
	}
	if heads != 1 {
		return false
	}
	delete(a.food, p)
	return true
}

// findAvailableFoodPos tries up to foodTries random cells and returns the
// first one holding neither an obstacle nor a food item.
func (a *Arena) findAvailableFoodPos(rng *rand.Rand) (Position, bool) {
	for i := 0; i < a.foodTries; i++ {
		p := Position{X: rng.Intn(a.width), Y: rng.Intn(a.height)}
		if _, ok := a.food[p]; ok {
			continue
		}
		if a.PosIsFree(p) {
			return p, true
		}
	}
	return Position{}, false
}

// spawnMissingFood refills the food set up to the configured target.
// Placement is best effort: when the random probes keep hitting occupied
// cells the deficit simply carries over to the next tick.
func (a *Arena) spawnMissingFood(rng *rand.Rand) []Position {
	var created []Position
	for i := len(a.food); i < a.targetFood; i++ {
		p, ok := a.findAvailableFoodPos(rng)
		if !ok {
			break
		}
		a.food[p] = struct{}{}
		created = append(created, p)
	}
	return created
}
