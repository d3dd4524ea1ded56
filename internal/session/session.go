package session

import (
	"fmt"
	"log/slog"
	"sync"

	"snake-highscore/internal/domain/game"
	"snake-highscore/internal/logging"
)

const (
	// HelpText lists the controls.
	HelpText = "Navigate: hjkl\n(like in vim)\nor arrow keys\n\nstart: <space>\nquit: <q>"
	// StartText greets a fresh session.
	StartText = "Press <space>\nto start\n\nPress <?> for\nhelp"
	// FullBoardText is shown when the snake covers the whole arena.
	FullBoardText = "100 u crazy!! 100"

	helpRow      = 2
	startRow     = 2
	scoreRow     = 4
	fullBoardRow = 8
)

// Renderer draws the game. Calls are fire-and-forget.
type Renderer interface {
	Snake(s game.State)
	Apple(p game.Position)
	ClearCell(p game.Position)
	ClearBoard()
	Text(msg string, row int)
	StatusBar(status Status, apples int)
}

// Sound plays effects for game events.
type Sound interface {
	AppleEaten()
	Died()
}

// Options wires a Session to its collaborators. Only Renderer is required.
type Options struct {
	Renderer Renderer
	Sound    Sound
	Logger   *slog.Logger
	// OnGameOver is called once per death with the final score, outside the session lock.
	OnGameOver func(score int)
}

// Session owns the snake, the pending heading and the lifecycle status.
// Handle and Tick may be called from different goroutines.
type Session struct {
	mu      sync.Mutex
	engine  *game.Engine
	state   game.State
	pending game.Direction
	status  Status

	render     Renderer
	sound      Sound
	logger     *slog.Logger
	onGameOver func(score int)
}

// New returns a NotStarted session with a fresh snake.
func New(engine *game.Engine, opts Options) *Session {
	state := engine.NewState()
	return &Session{
		engine:     engine,
		state:      state,
		pending:    state.Direction,
		status:     NotStarted,
		render:     opts.Renderer,
		sound:      opts.Sound,
		logger:     opts.Logger,
		onGameOver: opts.OnGameOver,
	}
}

// Greet draws the initial screen.
func (s *Session) Greet() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.render.StatusBar(s.status, s.state.AppleCount())
	s.render.Text(StartText, startRow)
}

// Status returns the current lifecycle phase.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// State returns the current snake.
func (s *Session) State() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Pending returns the heading the next tick will apply.
func (s *Session) Pending() game.Direction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Handle applies cmd. Commands that do not fit the current status are ignored.
func (s *Session) Handle(cmd Command) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch c := cmd.(type) {
	case StartCommand:
		if s.status == Playing {
			s.ignore(cmd)
			return
		}
		s.start()
	case StopCommand:
		if s.status != Playing {
			s.ignore(cmd)
			return
		}
		s.state = s.state.Kill()
	case HelpCommand:
		s.render.ClearBoard()
		s.render.Text(HelpText, helpRow)
	case MoveCommand:
		if s.status != Playing {
			s.ignore(cmd)
			return
		}
		if s.state.AppleCount() > 0 && c.Direction == s.state.Direction.Opposite() {
			s.ignore(cmd)
			return
		}
		s.pending = c.Direction
	default:
		s.ignore(cmd)
	}
}

func (s *Session) start() {
	if s.status == GameOver {
		s.state = s.engine.NewState()
		s.pending = s.state.Direction
	}
	s.status = Playing
	s.render.StatusBar(s.status, s.state.AppleCount())
	s.render.ClearBoard()
	s.render.Snake(s.state)
	if s.state.Target != nil {
		s.render.Apple(*s.state.Target)
	}
}

func (s *Session) ignore(cmd Command) {
	logging.Debug(s.logger, "ignored command", "command", cmd.String(), logging.FieldStatus, s.status.String())
}

// Tick advances the snake one step when playing. A dead snake moves the
// session to GameOver and fires OnGameOver exactly once.
func (s *Session) Tick() {
	s.mu.Lock()
	if s.status != Playing {
		s.mu.Unlock()
		return
	}

	s.state.Direction = s.pending
	next, dropped, slid := s.engine.Advance(s.state)
	s.state = next

	if !next.Alive {
		s.status = GameOver
		score := next.AppleCount()
		s.render.StatusBar(s.status, score)
		s.render.Text(ScoreText(score), scoreRow)
		if s.sound != nil {
			s.sound.Died()
		}
		onGameOver := s.onGameOver
		s.mu.Unlock()

		logging.Info(s.logger, "game over", logging.FieldScore, score)
		if onGameOver != nil {
			onGameOver(score)
		}
		return
	}
	defer s.mu.Unlock()

	switch {
	case slid:
		s.render.ClearCell(dropped)
	case next.Target != nil:
		s.render.Apple(*next.Target)
	default:
		s.render.Text(FullBoardText, fullBoardRow)
	}
	if !slid && s.sound != nil {
		s.sound.AppleEaten()
	}
	s.render.Snake(next)
	s.render.StatusBar(s.status, next.AppleCount())
}

// ScoreText renders a final score, pluralising apples.
func ScoreText(score int) string {
	unit := "apples"
	if score == 1 {
		unit = "apple"
	}
	return fmt.Sprintf("score: %d %s", score, unit)
}
