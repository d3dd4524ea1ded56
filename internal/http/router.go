package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"snake-highscore/internal/http/handlers"
	"snake-highscore/internal/http/middleware"
	"snake-highscore/internal/metrics"
)

const handlerTimeout = 10 * time.Second

// NewRouter registers the leaderboard routes on a chi mux.
func NewRouter(h *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(handlerTimeout))
	r.Use(func(next nethttp.Handler) nethttp.Handler {
		return middleware.LoggingMiddleware(logger, recorder, next)
	})

	r.Get("/topten", h.TopTen)
	r.Post("/submit", h.Submit)
	r.Get("/readyz", h.Readyz)
	r.Get("/livez", h.Livez)
	return r
}
