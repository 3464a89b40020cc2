package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	leaderboardservice "github.com/podium-club/gridpicks/app/modules/leaderboard/application"
	leaderboarddb "github.com/podium-club/gridpicks/app/modules/leaderboard/infrastructure/repositories"
	scoringservice "github.com/podium-club/gridpicks/app/modules/scoring/application"
)

// Handlers serves the HTTP API on top of the scoring and leaderboard services.
type Handlers struct {
	scoring     scoringservice.Service
	leaderboard leaderboardservice.Service
	logger      *slog.Logger
}

func NewHandlers(scoring scoringservice.Service, leaderboard leaderboardservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{
		scoring:     scoring,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", slog.Any("error", err))
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handlers) eventID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid event ID")
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// ScoreEvent triggers a synchronous scoring run for one event.
func (h *Handlers) ScoreEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}

	summary, err := h.scoring.ScoreEvent(r.Context(), eventID)
	if err != nil {
		switch {
		case errors.Is(err, scoringservice.ErrEventNotFound):
			h.writeError(w, http.StatusNotFound, "event not found")
		case errors.Is(err, scoringservice.ErrEventNotCompleted),
			errors.Is(err, scoringservice.ErrNoResults):
			h.writeError(w, http.StatusConflict, err.Error())
		default:
			h.logger.ErrorContext(r.Context(), "Scoring run failed",
				slog.String("event_id", eventID.String()),
				slog.Any("error", err),
			)
			h.writeError(w, http.StatusInternalServerError, "scoring run failed")
		}
		return
	}

	h.writeJSON(w, http.StatusOK, summary)
}

// GetEventScores lists the persisted scores of one event, highest first.
func (h *Handlers) GetEventScores(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}

	views, err := h.scoring.GetEventScores(r.Context(), eventID, queryInt(r, "limit", 0))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list event scores",
			slog.String("event_id", eventID.String()),
			slog.Any("error", err),
		)
		h.writeError(w, http.StatusInternalServerError, "failed to list scores")
		return
	}

	h.writeJSON(w, http.StatusOK, views)
}

// GetEventLeaderboard returns per-user standings for one event.
func (h *Handlers) GetEventLeaderboard(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}

	standings, err := h.leaderboard.EventLeaderboard(r.Context(), eventID, queryInt(r, "limit", 0))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to build event leaderboard",
			slog.String("event_id", eventID.String()),
			slog.Any("error", err),
		)
		h.writeError(w, http.StatusInternalServerError, "failed to build leaderboard")
		return
	}

	h.writeJSON(w, http.StatusOK, standings)
}

// GetSeasonLeaderboard returns season standings for the given year.
func (h *Handlers) GetSeasonLeaderboard(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year", time.Now().Year())

	standings, err := h.leaderboard.SeasonLeaderboard(r.Context(), year, queryInt(r, "limit", 0))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to build season leaderboard",
			slog.Int("year", year),
			slog.Any("error", err),
		)
		h.writeError(w, http.StatusInternalServerError, "failed to build leaderboard")
		return
	}

	h.writeJSON(w, http.StatusOK, standings)
}

// GetLeagueLeaderboard returns season standings restricted to a league's members.
func (h *Handlers) GetLeagueLeaderboard(w http.ResponseWriter, r *http.Request) {
	leagueID, err := uuid.Parse(chi.URLParam(r, "leagueID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid league ID")
		return
	}
	year := queryInt(r, "year", time.Now().Year())

	standings, err := h.leaderboard.LeagueLeaderboard(r.Context(), leagueID, year, queryInt(r, "limit", 0))
	if err != nil {
		if errors.Is(err, leaderboarddb.ErrLeagueNotFound) {
			h.writeError(w, http.StatusNotFound, "league not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to build league leaderboard",
			slog.String("league_id", leagueID.String()),
			slog.Any("error", err),
		)
		h.writeError(w, http.StatusInternalServerError, "failed to build leaderboard")
		return
	}

	h.writeJSON(w, http.StatusOK, standings)
}

// GetSeasonChart serves a PNG bar chart of the season standings.
func (h *Handlers) GetSeasonChart(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year", time.Now().Year())

	png, err := h.leaderboard.RenderSeasonChart(r.Context(), year, queryInt(r, "limit", 0))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render season chart",
			slog.Int("year", year),
			slog.Any("error", err),
		)
		h.writeError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.logger.Error("Failed to write chart response", slog.Any("error", err))
	}
}

// ExportEventScores serves an xlsx workbook of one event's scores.
func (h *Handlers) ExportEventScores(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}

	data, err := h.leaderboard.ExportEventScores(r.Context(), eventID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to export event scores",
			slog.String("event_id", eventID.String()),
			slog.Any("error", err),
		)
		h.writeError(w, http.StatusInternalServerError, "failed to export scores")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "event-scores-"+eventID.String()+".xlsx"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("Failed to write export response", slog.Any("error", err))
	}
}

// Healthz reports liveness.
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
