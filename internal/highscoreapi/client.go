package highscoreapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"snake-highscore/internal/domain/highscores"
	"snake-highscore/internal/logging"
	"snake-highscore/internal/timeutil"
)

const (
	defaultBaseURL     = "http://localhost:3000"
	defaultHTTPTimeout = 5 * time.Second
	defaultMaxRetries  = 3
	errorBodyLimit     = 512
)

// Config controls how the client reaches the leaderboard API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	// MaxRetries bounds retries of idempotent reads. Submissions are never retried.
	MaxRetries int
	Logger     *slog.Logger
}

// Client talks to the leaderboard HTTP API.
type Client struct {
	baseURL    string
	httpClient httpDoer
	newBackOff func() backoff.BackOff
	logger     *slog.Logger
}

// StatusError is returned for non-success responses.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

// AsStatusError attempts to unwrap err into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var sErr *StatusError
	if errors.As(err, &sErr) {
		return sErr, true
	}
	return nil, false
}

// NewClient constructs a Client with defaults filled in.
func NewClient(cfg Config) *Client {
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxInterval = time.Second
			return backoff.WithMaxRetries(b, uint64(retries))
		},
		logger: cfg.Logger,
	}
}

// TopTen fetches the best ten entries, optionally limited to since onwards.
// Transport failures and 5xx responses are retried with exponential backoff.
func (c *Client) TopTen(ctx context.Context, since *time.Time) ([]highscores.Entry, error) {
	var entries []highscores.Entry
	attempt := 0
	op := func() error {
		attempt++
		got, err := c.fetchTopTen(ctx, since)
		if err != nil {
			if !retryable(err) {
				return backoff.Permanent(err)
			}
			logging.Warn(c.logger, "topten fetch retry", "attempt", attempt, "error", err)
			return err
		}
		entries = got
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(c.newBackOff(), ctx)); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) fetchTopTen(ctx context.Context, since *time.Time) ([]highscores.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/topten", nil)
	if err != nil {
		return nil, err
	}
	if since != nil {
		q := req.URL.Query()
		q.Set("since", timeutil.FormatRFC3339(*since))
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("topten", resp)
	}

	entries := make([]highscores.Entry, 0, highscores.TopTenLimit)
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, &decodeError{err: err}
	}
	return entries, nil
}

// Submit posts e once.
func (c *Client) Submit(ctx context.Context, e highscores.Entry) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/submit", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return statusError("submit", resp)
	}
	return nil
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return "decode topten: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

func retryable(err error) bool {
	var dErr *decodeError
	if errors.As(err, &dErr) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if sErr, ok := AsStatusError(err); ok {
		return sErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}
