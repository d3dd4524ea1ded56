package session

// Status is the lifecycle phase of a session.
type Status int

const (
	NotStarted Status = iota
	Playing
	GameOver
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "Not started"
	case Playing:
		return "Playing"
	case GameOver:
		return "Game over"
	default:
		return "unknown"
	}
}
