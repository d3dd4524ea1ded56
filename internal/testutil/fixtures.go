package testutil

import (
	"fmt"
	"time"

	"snake-highscore/internal/domain/highscores"
)

// SampleRecord returns a stored highscore fixture.
func SampleRecord(id, name string, score uint, ts time.Time) highscores.Record {
	return highscores.Record{ID: id, UserName: name, Score: score, Timestamp: ts}
}

// SampleRecords returns n records with scores n..1, one minute apart from start.
func SampleRecords(n int, start time.Time) []highscores.Record {
	recs := make([]highscores.Record, 0, n)
	for i := 0; i < n; i++ {
		recs = append(recs, SampleRecord(fmt.Sprintf("rec-%02d", i), fmt.Sprintf("player%d", i), uint(n-i), start.Add(time.Duration(i)*time.Minute)))
	}
	return recs
}
