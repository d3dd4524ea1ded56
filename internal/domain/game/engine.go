package game

import (
	"math/rand"
	"time"
)

// rejectionAttempts bounds random sampling before falling back to scanning free cells.
const rejectionAttempts = 64

// Engine advances snake states on a fixed arena.
type Engine struct {
	arena Arena
	rng   *rand.Rand
}

// NewEngine returns an Engine for arena. A nil rng is replaced with a time-seeded one.
func NewEngine(arena Arena, rng *rand.Rand) *Engine {
	if arena.Thickness <= 0 {
		arena = DefaultArena()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{arena: arena, rng: rng}
}

// Arena returns the board the engine plays on.
func (e *Engine) Arena() Arena {
	return e.arena
}

// NewState returns a fresh snake: a single cell at the origin heading right.
func (e *Engine) NewState() State {
	body := []Position{{X: 0, Y: 0}}
	return State{
		Body:      body,
		Direction: Right,
		Target:    e.randomFreeCell(body),
		Alive:     true,
	}
}

// Advance moves s one cell in its heading. The second return value is the cell
// vacated by the tail, reported only when ok is true.
func (e *Engine) Advance(s State) (next State, dropped Position, ok bool) {
	if !s.Alive {
		return s, Position{}, false
	}

	head := e.arena.Step(s.Head(), s.Direction)
	if e.lethal(s, head) {
		return s.Kill(), Position{}, false
	}

	if s.Target != nil && head == *s.Target {
		body := cloneBody(s.Body, 1)
		body = append(body, head)
		return State{
			Body:      body,
			Direction: s.Direction,
			Target:    e.randomFreeCell(body),
			Alive:     true,
		}, Position{}, false
	}

	body := make([]Position, 0, len(s.Body))
	body = append(body, s.Body[1:]...)
	body = append(body, head)
	return State{
		Body:      body,
		Direction: s.Direction,
		Target:    s.Target,
		Alive:     true,
	}, s.Tail(), true
}

// lethal reports whether moving the head to next kills the snake. On a
// non-eating move the tail is about to vacate its cell, so it is skipped.
func (e *Engine) lethal(s State, next Position) bool {
	if !e.arena.Contains(next) {
		return true
	}
	skip := 1
	if s.Target != nil && next == *s.Target {
		skip = 0
	}
	for _, cell := range s.Body[skip:] {
		if cell == next {
			return true
		}
	}
	return false
}

// randomFreeCell picks a cell uniformly from those not in body, or nil when the board is full.
func (e *Engine) randomFreeCell(body []Position) *Position {
	occupied := make(map[Position]struct{}, len(body))
	for _, p := range body {
		occupied[p] = struct{}{}
	}
	total := e.arena.Cells()
	if len(occupied) >= total {
		return nil
	}

	cols, rows := e.arena.Columns(), e.arena.Rows()
	for i := 0; i < rejectionAttempts; i++ {
		p := e.arena.Cell(e.rng.Intn(cols), e.rng.Intn(rows))
		if _, taken := occupied[p]; !taken {
			return &p
		}
	}

	free := make([]Position, 0, total-len(occupied))
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			p := e.arena.Cell(col, row)
			if _, taken := occupied[p]; !taken {
				free = append(free, p)
			}
		}
	}
	p := free[e.rng.Intn(len(free))]
	return &p
}
