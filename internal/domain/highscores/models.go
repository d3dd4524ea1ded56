package highscores

import (
	"fmt"
	"strings"
	"time"
)

// DefaultMaxScore is the highest plausible apple count on the default arena.
const DefaultMaxScore = 144

// TopTenLimit is the size of every leaderboard view.
const TopTenLimit = 10

// Entry is the wire shape exchanged by /topten and /submit.
type Entry struct {
	UserName string `json:"userName"`
	Score    uint   `json:"score"`
}

// Record is a persisted high score.
type Record struct {
	ID        string    `json:"id"`
	UserName  string    `json:"userName"`
	Score     uint      `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// Entry projects the record onto its wire shape.
func (r Record) Entry() Entry {
	return Entry{UserName: r.UserName, Score: r.Score}
}

// Entries projects records onto their wire shape, never returning nil.
func Entries(records []Record) []Entry {
	out := make([]Entry, 0, len(records))
	for _, r := range records {
		out = append(out, r.Entry())
	}
	return out
}

// Validate checks an entry against maxScore and returns a normalized copy.
// Score is checked before the name.
func Validate(e Entry, maxScore uint) (Entry, error) {
	if e.Score > maxScore {
		return Entry{}, &ValidationError{
			Field:   "score",
			Message: fmt.Sprintf("invalid score %d: too high", e.Score),
		}
	}
	name := strings.TrimSpace(e.UserName)
	if name == "" {
		return Entry{}, &ValidationError{Field: "userName", Message: "user name is required"}
	}
	return Entry{UserName: name, Score: e.Score}, nil
}

// Less orders records by score descending, then earlier timestamp, then id.
func Less(a, b Record) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	return a.ID < b.ID
}
