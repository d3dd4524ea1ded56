package session

import (
	"fmt"
	"math/rand"
	"sync"

	"snake-highscore/internal/domain/game"
)

type recordingRenderer struct {
	mu    sync.Mutex
	calls []string
	texts []string
}

func (r *recordingRenderer) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recordingRenderer) Snake(s game.State)        { r.add(fmt.Sprintf("snake %d", len(s.Body))) }
func (r *recordingRenderer) Apple(p game.Position)     { r.add("apple " + p.String()) }
func (r *recordingRenderer) ClearCell(p game.Position) { r.add("clear " + p.String()) }
func (r *recordingRenderer) ClearBoard()               { r.add("clear board") }
func (r *recordingRenderer) StatusBar(s Status, apples int) {
	r.add(fmt.Sprintf("status %s %d", s, apples))
}

func (r *recordingRenderer) Text(msg string, row int) {
	r.mu.Lock()
	r.texts = append(r.texts, msg)
	r.mu.Unlock()
	r.add(fmt.Sprintf("text %d", row))
}

func (r *recordingRenderer) has(call string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (r *recordingRenderer) hasText(msg string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.texts {
		if t == msg {
			return true
		}
	}
	return false
}

func (r *recordingRenderer) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.texts = nil
}

type countingSound struct {
	mu     sync.Mutex
	eaten  int
	deaths int
}

func (c *countingSound) AppleEaten() {
	c.mu.Lock()
	c.eaten++
	c.mu.Unlock()
}

func (c *countingSound) Died() {
	c.mu.Lock()
	c.deaths++
	c.mu.Unlock()
}

func newEngine() *game.Engine {
	return game.NewEngine(game.DefaultArena(), rand.New(rand.NewSource(1)))
}

func pos(col, row int) game.Position {
	return game.DefaultArena().Cell(col, row)
}

func ptr(p game.Position) *game.Position {
	return &p
}
