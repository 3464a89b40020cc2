package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// NewRouter assembles the HTTP API. Only the scoring trigger is rate
// limited; read endpoints stay open.
func NewRouter(h *Handlers, scoreLimit rate.Limit, scoreBurst int) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Healthz)

	scoreLimiter := NewIPRateLimiter(scoreLimit, scoreBurst)

	r.Route("/api", func(r chi.Router) {
		r.Route("/events/{eventID}", func(r chi.Router) {
			r.With(RateLimitMiddleware(scoreLimiter)).Post("/score", h.ScoreEvent)
			r.Get("/scores", h.GetEventScores)
			r.Get("/scores/export", h.ExportEventScores)
			r.Get("/leaderboard", h.GetEventLeaderboard)
		})

		r.Route("/leaderboards", func(r chi.Router) {
			r.Get("/season", h.GetSeasonLeaderboard)
			r.Get("/season/chart", h.GetSeasonChart)
			r.Get("/leagues/{leagueID}", h.GetLeagueLeaderboard)
		})
	})

	return r
}
