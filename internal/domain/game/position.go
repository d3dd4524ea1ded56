package game

import "fmt"

// Arena dimensions and the grid unit used for both movement and drawing.
const (
	Width     = 300
	Height    = 300
	Thickness = 25
)

// Position is a grid-aligned coordinate inside the arena.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Arena describes the bounded board a snake moves in.
type Arena struct {
	Width     int
	Height    int
	Thickness int
}

// DefaultArena is the 300x300 board with 25 unit cells.
func DefaultArena() Arena {
	return Arena{Width: Width, Height: Height, Thickness: Thickness}
}

// Columns returns the number of cells per row.
func (a Arena) Columns() int {
	return a.Width / a.Thickness
}

// Rows returns the number of cells per column.
func (a Arena) Rows() int {
	return a.Height / a.Thickness
}

// Cells returns the total number of cells on the board.
func (a Arena) Cells() int {
	return a.Columns() * a.Rows()
}

// Contains reports whether p lies within [0, Width) x [0, Height).
func (a Arena) Contains(p Position) bool {
	return p.X >= 0 && p.X < a.Width && p.Y >= 0 && p.Y < a.Height
}

// Cell converts a grid column/row pair into a Position.
func (a Arena) Cell(col, row int) Position {
	return Position{X: col * a.Thickness, Y: row * a.Thickness}
}

// Step returns p moved one cell in direction d. The result may lie outside the arena.
func (a Arena) Step(p Position, d Direction) Position {
	switch d {
	case Up:
		return Position{X: p.X, Y: p.Y - a.Thickness}
	case Down:
		return Position{X: p.X, Y: p.Y + a.Thickness}
	case Left:
		return Position{X: p.X - a.Thickness, Y: p.Y}
	default:
		return Position{X: p.X + a.Thickness, Y: p.Y}
	}
}
