package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"snake-highscore/internal/domain/highscores"
	"snake-highscore/internal/logging"
	"snake-highscore/internal/timeutil"
)

// API is the remote leaderboard.
type API interface {
	TopTen(ctx context.Context, since *time.Time) ([]highscores.Entry, error)
	Submit(ctx context.Context, e highscores.Entry) error
}

// Prompter asks the player for a name. ok is false when the player declines.
type Prompter interface {
	AskName(ctx context.Context) (name string, ok bool)
}

// Display shows a leaderboard view, or err when it could not be fetched.
type Display interface {
	ShowTopTen(board Board, entries []highscores.Entry, err error)
}

// Board identifies a leaderboard window.
type Board int

const (
	AllTime Board = iota
	Yearly
)

func (b Board) String() string {
	if b == Yearly {
		return "this year"
	}
	return "alltime"
}

// FailureText is the placeholder shown when a view cannot be fetched.
func (b Board) FailureText() string {
	return "Failed to fetch top ten " + b.String()
}

// Qualifies reports whether score earns a place on view: the board has room,
// or score beats at least one entry.
func Qualifies(view []highscores.Entry, score uint) bool {
	if len(view) < highscores.TopTenLimit {
		return true
	}
	for _, e := range view {
		if e.Score < score {
			return true
		}
	}
	return false
}

// Protocol runs the end-of-life leaderboard flow against a shared remote store.
// Reads and submits are not coordinated across clients.
type Protocol struct {
	api     API
	prompt  Prompter
	display Display
	logger  *slog.Logger
	now     func() time.Time
}

// New constructs a Protocol.
func New(api API, prompt Prompter, display Display, logger *slog.Logger) *Protocol {
	return &Protocol{
		api:     api,
		prompt:  prompt,
		display: display,
		logger:  logger,
		now:     time.Now,
	}
}

// CheckAndSubmit submits score if it qualifies for this year's top ten and
// the player gives a name. Declining the prompt is not an error.
func (p *Protocol) CheckAndSubmit(ctx context.Context, score uint) error {
	since := timeutil.StartOfYear(p.now())
	view, err := p.api.TopTen(ctx, &since)
	if err != nil {
		return fmt.Errorf("fetch yearly top ten: %w", err)
	}
	if !Qualifies(view, score) {
		logging.Debug(p.logger, "score does not qualify", logging.FieldScore, score)
		return nil
	}

	logging.Debug(p.logger, "score is a highscore", logging.FieldScore, score)
	name, ok := p.prompt.AskName(ctx)
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		logging.Warn(p.logger, "highscore submission aborted because no username given", logging.FieldScore, score)
		return nil
	}

	if err := p.api.Submit(ctx, highscores.Entry{UserName: name, Score: score}); err != nil {
		return fmt.Errorf("submit highscore: %w", err)
	}
	logging.Info(p.logger, "highscore submitted", logging.FieldUserName, name, logging.FieldScore, score)
	return nil
}

// Refresh reloads both views. Failures are shown in place of the table.
func (p *Protocol) Refresh(ctx context.Context) {
	since := timeutil.StartOfYear(p.now())
	yearly, err := p.api.TopTen(ctx, &since)
	if err != nil {
		logging.Error(p.logger, "error fetching top ten yearly", err)
	}
	p.display.ShowTopTen(Yearly, yearly, err)

	allTime, err := p.api.TopTen(ctx, nil)
	if err != nil {
		logging.Error(p.logger, "error fetching top ten alltime", err)
	}
	p.display.ShowTopTen(AllTime, allTime, err)
}

// GameOver runs the check-and-submit flow and then refreshes both views
// whatever the outcome. The submit error, if any, is returned.
func (p *Protocol) GameOver(ctx context.Context, score uint) error {
	err := p.CheckAndSubmit(ctx, score)
	if err != nil {
		logging.Error(p.logger, "end of game actions failed", err)
	}
	p.Refresh(ctx)
	return err
}
