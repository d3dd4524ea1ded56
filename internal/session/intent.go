package session

import "snake-highscore/internal/domain/game"

// Key names understood by Translate besides single printable characters.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowDown  = "ArrowDown"
	KeyArrowUp    = "ArrowUp"
	KeyArrowRight = "ArrowRight"
)

// Translate maps a key to a command, gated by status. Keys that mean nothing
// in the current status yield (nil, false).
func Translate(key string, status Status) (Command, bool) {
	var (
		cmd     Command
		allowed bool
	)
	playing := status == Playing
	switch key {
	case "h", KeyArrowLeft:
		cmd, allowed = MoveCommand{Direction: game.Left}, playing
	case "j", KeyArrowDown:
		cmd, allowed = MoveCommand{Direction: game.Down}, playing
	case "k", KeyArrowUp:
		cmd, allowed = MoveCommand{Direction: game.Up}, playing
	case "l", KeyArrowRight:
		cmd, allowed = MoveCommand{Direction: game.Right}, playing
	case " ":
		cmd, allowed = StartCommand{}, !playing
	case "q":
		cmd, allowed = StopCommand{}, playing
	case "?":
		cmd, allowed = HelpCommand{}, true
	}
	if !allowed {
		return nil, false
	}
	return cmd, true
}
