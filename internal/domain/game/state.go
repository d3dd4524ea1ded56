package game

// State is an immutable snapshot of a snake. Body is ordered tail first, head last.
// Advance never mutates a State in place; it returns a new one.
type State struct {
	Body      []Position
	Direction Direction
	// Target is nil only when the snake covers the whole arena.
	Target *Position
	Alive  bool
}

// Head returns the last body cell.
func (s State) Head() Position {
	return s.Body[len(s.Body)-1]
}

// Tail returns the first body cell.
func (s State) Tail() Position {
	return s.Body[0]
}

// AppleCount is the number of apples eaten, which is also the score.
func (s State) AppleCount() int {
	return len(s.Body) - 1
}

// Kill returns a copy of s that is no longer alive.
func (s State) Kill() State {
	s.Body = cloneBody(s.Body, 0)
	s.Alive = false
	return s
}

// Occupies reports whether p is part of the body.
func (s State) Occupies(p Position) bool {
	for _, cell := range s.Body {
		if cell == p {
			return true
		}
	}
	return false
}

func cloneBody(body []Position, extra int) []Position {
	out := make([]Position, len(body), len(body)+extra)
	copy(out, body)
	return out
}
