package session

import (
	"fmt"

	"snake-highscore/internal/domain/game"
)

// Command is a gameplay intent. The concrete types are StartCommand,
// StopCommand, HelpCommand and MoveCommand.
type Command interface {
	fmt.Stringer
	command()
}

type StartCommand struct{}

type StopCommand struct{}

type HelpCommand struct{}

// MoveCommand requests a new heading for the next tick.
type MoveCommand struct {
	Direction game.Direction
}

func (StartCommand) command() {}
func (StopCommand) command()  {}
func (HelpCommand) command()  {}
func (MoveCommand) command()  {}

func (StartCommand) String() string  { return "start" }
func (StopCommand) String() string   { return "stop" }
func (HelpCommand) String() string   { return "help" }
func (m MoveCommand) String() string { return "move " + m.Direction.String() }
