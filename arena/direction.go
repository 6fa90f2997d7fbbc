package arena

// Direction is one of the four cardinal unit vectors.
// Y grows downward, matching the row order boards are rendered in.
type Direction struct {
	X int
	Y int
}

var (
	Up    = Direction{0, -1}
	Down  = Direction{0, 1}
	Left  = Direction{-1, 0}
	Right = Direction{1, 0}
)

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return Direction{-d.X, -d.Y}
}

// IsCardinal reports whether d is one of Up, Down, Left or Right.
func (d Direction) IsCardinal() bool {
	return d == Up || d == Down || d == Left || d == Right
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

// TowardCenter returns the direction that points from (x, y) toward the
// middle of a width*height board. The board is split into four triangles by
// its diagonals; each triangle maps to the direction that leaves it.
func TowardCenter(x, y float64, width, height int) Direction {
	w, h := float64(width), float64(height)
	aboveDiag0 := y > h/w*x
	aboveDiag1 := y > -h/w*(x-w)
	switch {
	case aboveDiag0 && aboveDiag1:
		return Up
	case aboveDiag0:
		return Right
	case aboveDiag1:
		return Left
	default:
		return Down
	}
}
