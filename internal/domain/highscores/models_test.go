package highscores

import (
	"testing"
	"time"
)

func TestValidateRejectsScoreAboveMax(t *testing.T) {
	_, err := Validate(Entry{UserName: "", Score: 999}, DefaultMaxScore)
	vErr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if vErr.Field != "score" {
		t.Fatalf("expected score field to be reported first, got %s", vErr.Field)
	}
	if vErr.Error() != "invalid score 999: too high" {
		t.Fatalf("unexpected message %q", vErr.Error())
	}
}

func TestValidateAcceptsMaxScore(t *testing.T) {
	got, err := Validate(Entry{UserName: "  ada  ", Score: DefaultMaxScore}, DefaultMaxScore)
	if err != nil {
		t.Fatalf("expected max score to be accepted, got %v", err)
	}
	if got.UserName != "ada" {
		t.Fatalf("expected trimmed name, got %q", got.UserName)
	}
}

func TestValidateRejectsBlankName(t *testing.T) {
	_, err := Validate(Entry{UserName: " \t", Score: 3}, DefaultMaxScore)
	vErr, ok := AsValidationError(err)
	if !ok || vErr.Field != "userName" {
		t.Fatalf("expected userName validation error, got %v", err)
	}
}

func TestLessOrdersByScoreThenTimestampThenID(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	high := Record{ID: "b", Score: 10, Timestamp: t0}
	low := Record{ID: "a", Score: 5, Timestamp: t0}
	if !Less(high, low) || Less(low, high) {
		t.Fatalf("expected higher score first")
	}
	early := Record{ID: "z", Score: 5, Timestamp: t0}
	late := Record{ID: "a", Score: 5, Timestamp: t0.Add(time.Minute)}
	if !Less(early, late) {
		t.Fatalf("expected earlier timestamp first on ties")
	}
	if !Less(Record{ID: "a", Score: 1, Timestamp: t0}, Record{ID: "b", Score: 1, Timestamp: t0}) {
		t.Fatalf("expected id tiebreak")
	}
}

func TestEntriesNeverNil(t *testing.T) {
	if got := Entries(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
