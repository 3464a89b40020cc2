package leaderboarddb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SeasonTotalRow is one user's aggregate over all scored events of a season.
type SeasonTotalRow struct {
	UserID        uuid.UUID `bun:"user_id"`
	DisplayName   string    `bun:"display_name"`
	TotalPoints   int       `bun:"total_points"`
	EventsScored  int       `bun:"events_scored"`
	AveragePoints float64   `bun:"average_points"`
}

// EventTotalRow is one user's aggregate over a single event.
type EventTotalRow struct {
	UserID       uuid.UUID `bun:"user_id"`
	DisplayName  string    `bun:"display_name"`
	TotalPoints  int       `bun:"total_points"`
	PicksScored  int       `bun:"picks_scored"`
	ExactMatches int       `bun:"exact_matches"`
}

// Repository aggregates persisted scores into standings. A nil db falls back
// to the repository's own connection.
type Repository interface {
	GetLeague(ctx context.Context, db bun.IDB, leagueID uuid.UUID) (*League, error)
	LeagueMemberIDs(ctx context.Context, db bun.IDB, leagueID uuid.UUID) ([]uuid.UUID, error)
	SeasonTotals(ctx context.Context, db bun.IDB, year int, userIDs []uuid.UUID, limit int) ([]SeasonTotalRow, error)
	EventTotals(ctx context.Context, db bun.IDB, eventID uuid.UUID, limit int) ([]EventTotalRow, error)
}
