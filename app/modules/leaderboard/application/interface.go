package leaderboardservice

import (
	"context"

	"github.com/google/uuid"
)

// SeasonStanding is one ranked row of a season leaderboard.
type SeasonStanding struct {
	Rank          int       `json:"rank"`
	UserID        uuid.UUID `json:"user_id"`
	DisplayName   string    `json:"display_name"`
	TotalPoints   int       `json:"total_points"`
	EventsScored  int       `json:"events_scored"`
	AveragePoints float64   `json:"average_points"`
}

// EventStanding is one ranked row of a single-event leaderboard.
type EventStanding struct {
	Rank         int       `json:"rank"`
	UserID       uuid.UUID `json:"user_id"`
	DisplayName  string    `json:"display_name"`
	TotalPoints  int       `json:"total_points"`
	PicksScored  int       `json:"picks_scored"`
	ExactMatches int       `json:"exact_matches"`
}

// Service computes standings from persisted scores.
type Service interface {
	SeasonLeaderboard(ctx context.Context, year int, limit int) ([]SeasonStanding, error)
	EventLeaderboard(ctx context.Context, eventID uuid.UUID, limit int) ([]EventStanding, error)
	LeagueLeaderboard(ctx context.Context, leagueID uuid.UUID, year int, limit int) ([]SeasonStanding, error)
	RenderSeasonChart(ctx context.Context, year int, limit int) ([]byte, error)
	ExportEventScores(ctx context.Context, eventID uuid.UUID) ([]byte, error)
}
