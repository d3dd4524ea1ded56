package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"snake-highscore/internal/domain/highscores"
	"snake-highscore/internal/testutil"
)

var fixedNow = time.Date(2025, time.July, 4, 10, 0, 0, 0, time.UTC)

type fakeAPI struct {
	mu        sync.Mutex
	yearly    []highscores.Entry
	allTime   []highscores.Entry
	topErr    error
	submitErr error
	sinces    []*time.Time
	submitted []highscores.Entry
}

func (f *fakeAPI) TopTen(_ context.Context, since *time.Time) ([]highscores.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sinces = append(f.sinces, since)
	if f.topErr != nil {
		return nil, f.topErr
	}
	if since != nil {
		return f.yearly, nil
	}
	return f.allTime, nil
}

func (f *fakeAPI) Submit(_ context.Context, e highscores.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submitted = append(f.submitted, e)
	return nil
}

type fakePrompt struct {
	name  string
	ok    bool
	calls int
}

func (f *fakePrompt) AskName(context.Context) (string, bool) {
	f.calls++
	return f.name, f.ok
}

type shown struct {
	board   Board
	entries []highscores.Entry
	err     error
}

type fakeDisplay struct {
	shown []shown
}

func (f *fakeDisplay) ShowTopTen(b Board, entries []highscores.Entry, err error) {
	f.shown = append(f.shown, shown{board: b, entries: entries, err: err})
}

func fullBoard(min uint) []highscores.Entry {
	out := make([]highscores.Entry, 0, 10)
	for i := uint(0); i < 10; i++ {
		out = append(out, highscores.Entry{UserName: fmt.Sprint("p", i), Score: min + 9 - i})
	}
	return out
}

func newProtocol(api *fakeAPI, prompt *fakePrompt, display *fakeDisplay) *Protocol {
	p := New(api, prompt, display, nil)
	p.now = testutil.NowAt(fixedNow)
	return p
}

func TestQualifies(t *testing.T) {
	board := fullBoard(5)
	tests := []struct {
		view  []highscores.Entry
		score uint
		want  bool
	}{
		{nil, 0, true},
		{board[:9], 0, true},
		{board, 5, false},
		{board, 6, true},
		{board, 100, true},
	}
	for _, tt := range tests {
		if got := Qualifies(tt.view, tt.score); got != tt.want {
			t.Fatalf("Qualifies(len=%d, %d) = %v, want %v", len(tt.view), tt.score, got, tt.want)
		}
	}
}

func TestCheckAndSubmitUsesYearlyWindow(t *testing.T) {
	api := &fakeAPI{yearly: fullBoard(5)}
	p := newProtocol(api, &fakePrompt{name: "ann", ok: true}, &fakeDisplay{})

	if err := p.CheckAndSubmit(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	if len(api.sinces) != 1 || api.sinces[0] == nil || !api.sinces[0].Equal(want) {
		t.Fatalf("expected yearly query since %s, got %v", want, api.sinces)
	}
	if len(api.submitted) != 0 {
		t.Fatalf("non-qualifying score was submitted")
	}
}

func TestCheckAndSubmitSubmitsQualifyingScore(t *testing.T) {
	api := &fakeAPI{yearly: fullBoard(5)}
	prompt := &fakePrompt{name: "  ann ", ok: true}
	p := newProtocol(api, prompt, &fakeDisplay{})

	if err := p.CheckAndSubmit(context.Background(), 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prompt.calls != 1 {
		t.Fatalf("expected one prompt")
	}
	if len(api.submitted) != 1 || api.submitted[0] != (highscores.Entry{UserName: "ann", Score: 6}) {
		t.Fatalf("unexpected submission %+v", api.submitted)
	}
}

func TestCheckAndSubmitAbortsWithoutName(t *testing.T) {
	for _, prompt := range []*fakePrompt{{ok: false}, {name: "   ", ok: true}} {
		api := &fakeAPI{}
		p := newProtocol(api, prompt, &fakeDisplay{})

		if err := p.CheckAndSubmit(context.Background(), 1); err != nil {
			t.Fatalf("expected abstention to be no error, got %v", err)
		}
		if len(api.submitted) != 0 {
			t.Fatalf("expected no submission without a name")
		}
	}
}

func TestCheckAndSubmitLogsAbstention(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	p := New(&fakeAPI{}, &fakePrompt{}, &fakeDisplay{}, logger)
	p.now = testutil.NowAt(fixedNow)

	if err := p.CheckAndSubmit(context.Background(), 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "no username given") || !strings.Contains(out, "score=4") {
		t.Fatalf("expected abstention warning, got %q", out)
	}
}

func TestCheckAndSubmitPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	p := newProtocol(&fakeAPI{topErr: boom}, &fakePrompt{}, &fakeDisplay{})
	if err := p.CheckAndSubmit(context.Background(), 1); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	p = newProtocol(&fakeAPI{submitErr: boom}, &fakePrompt{name: "x", ok: true}, &fakeDisplay{})
	if err := p.CheckAndSubmit(context.Background(), 1); !errors.Is(err, boom) {
		t.Fatalf("expected submit error, got %v", err)
	}
}

func TestGameOverRefreshesEvenWhenSubmitFails(t *testing.T) {
	boom := errors.New("submit failed")
	api := &fakeAPI{submitErr: boom, allTime: fullBoard(20)}
	display := &fakeDisplay{}
	p := newProtocol(api, &fakePrompt{name: "x", ok: true}, display)

	err := p.GameOver(context.Background(), 1)
	if !errors.Is(err, boom) {
		t.Fatalf("expected submit error surfaced, got %v", err)
	}
	if len(display.shown) != 2 {
		t.Fatalf("expected both views refreshed, got %d", len(display.shown))
	}
	if display.shown[0].board != Yearly || display.shown[1].board != AllTime {
		t.Fatalf("unexpected refresh order %+v", display.shown)
	}
	if len(display.shown[1].entries) != 10 {
		t.Fatalf("expected alltime entries displayed")
	}
}

func TestGameOverRefreshesWhenNotQualifying(t *testing.T) {
	api := &fakeAPI{yearly: fullBoard(50)}
	display := &fakeDisplay{}
	prompt := &fakePrompt{}
	p := newProtocol(api, prompt, display)

	if err := p.GameOver(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prompt.calls != 0 {
		t.Fatalf("expected no prompt for non-qualifying score")
	}
	if len(display.shown) != 2 {
		t.Fatalf("expected refresh regardless of qualification")
	}
}

func TestRefreshShowsFailures(t *testing.T) {
	boom := errors.New("offline")
	display := &fakeDisplay{}
	p := newProtocol(&fakeAPI{topErr: boom}, &fakePrompt{}, display)

	p.Refresh(context.Background())

	for _, s := range display.shown {
		if !errors.Is(s.err, boom) {
			t.Fatalf("expected failure passed to display, got %+v", s)
		}
	}
	if Yearly.FailureText() != "Failed to fetch top ten this year" || AllTime.FailureText() != "Failed to fetch top ten alltime" {
		t.Fatalf("unexpected failure text")
	}
}
