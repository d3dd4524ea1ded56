package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"snake-highscore/internal/domain/highscores"
	"snake-highscore/internal/logging"
	"snake-highscore/internal/metrics"
	"snake-highscore/internal/retention"
	"snake-highscore/internal/timeutil"
)

const (
	fetchErrorMessage   = "An error occured trying to fetch highscores from the database"
	persistErrorMessage = "An error occured trying to persist highscore to database"
	degradedMessage     = "Degraded - Database unreachable"
	maxBodyBytes        = 1 << 16
)

// Service is the leaderboard behaviour the handlers expose.
type Service interface {
	TopTen(ctx context.Context, since *time.Time) ([]highscores.Entry, error)
	Submit(ctx context.Context, e highscores.Entry) (highscores.Entry, error)
	Ping(ctx context.Context) error
}

// Handler wires HTTP routes to the leaderboard service.
type Handler struct {
	svc      Service
	logger   *slog.Logger
	metrics  *metrics.Recorder
	statusFn func() retention.Status
}

// NewHandler constructs a Handler. statusFn may be nil when no retention loop runs in-process.
func NewHandler(svc Service, logger *slog.Logger, recorder *metrics.Recorder, statusFn func() retention.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		metrics:  recorder,
		statusFn: statusFn,
	}
}

// TopTen serves GET /topten[?since=RFC3339].
func (h *Handler) TopTen(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)

	var since *time.Time
	if raw := strings.TrimSpace(r.URL.Query().Get("since")); raw != "" {
		parsed, err := timeutil.ParseRFC3339(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid since: expected RFC3339 timestamp", logger)
			return
		}
		since = &parsed
	}

	entries, err := h.svc.TopTen(r.Context(), since)
	if err != nil {
		logging.Error(logger, "failed querying highscores", err)
		writeError(w, r, http.StatusInternalServerError, fetchErrorMessage, logger)
		return
	}
	writeJSON(w, http.StatusOK, entries, logger)
}

// Submit serves POST /submit and echoes the stored entry with 201.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)

	var entry highscores.Entry
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&entry); err != nil {
		h.metrics.RecordSubmission(metrics.OutcomeRejected)
		writeError(w, r, http.StatusBadRequest, "invalid request body", logger)
		return
	}

	saved, err := h.svc.Submit(r.Context(), entry)
	if err != nil {
		if vErr, ok := highscores.AsValidationError(err); ok {
			h.metrics.RecordSubmission(metrics.OutcomeRejected)
			logging.Warn(logger, "highscore rejected",
				logging.FieldScore, entry.Score,
				"field", vErr.Field,
			)
			writeError(w, r, http.StatusUnprocessableEntity, vErr.Error(), logger)
			return
		}
		h.metrics.RecordSubmission(metrics.OutcomeFailed)
		logging.Error(logger, "failed to persist highscore", err)
		writeError(w, r, http.StatusInternalServerError, persistErrorMessage, logger)
		return
	}

	h.metrics.RecordSubmission(metrics.OutcomeAccepted)
	logging.Info(logger, "highscore accepted",
		logging.FieldUserName, saved.UserName,
		logging.FieldScore, saved.Score,
	)
	writeJSON(w, http.StatusCreated, saved, logger)
}

// Readyz pings the store and checks the in-process retention loop, if any.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if err := h.svc.Ping(r.Context()); err != nil {
		logging.Error(logger, "readiness check failed: store ping", err)
		writeText(w, http.StatusServiceUnavailable, degradedMessage)
		return
	}
	if h.statusFn != nil {
		if status := h.statusFn(); !status.IsReady() {
			logging.Warn(logger, "readiness check failed: retention",
				"consecutive_failures", status.ConsecutiveFailures,
				"last_error", status.LastError,
			)
			writeText(w, http.StatusServiceUnavailable, "Degraded - Retention failing")
			return
		}
	}
	writeText(w, http.StatusOK, "Ready")
}

// Livez reports that the process is up.
func (h *Handler) Livez(w http.ResponseWriter, r *http.Request) {
	if errors.Is(r.Context().Err(), context.Canceled) {
		writeText(w, http.StatusServiceUnavailable, "Shutting down")
		return
	}
	writeText(w, http.StatusOK, "Alive")
}
