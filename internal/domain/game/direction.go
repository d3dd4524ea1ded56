package game

// Direction is one of the four headings a snake can travel.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Opposite returns the 180 degree turn of d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}
