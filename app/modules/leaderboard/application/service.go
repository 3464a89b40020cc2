package leaderboardservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	leaderboarddb "github.com/podium-club/gridpicks/app/modules/leaderboard/infrastructure/repositories"
	scoringservice "github.com/podium-club/gridpicks/app/modules/scoring/application"
)

const defaultStandingLimit = 100

// LeaderboardService aggregates persisted scores into season, event, and
// league standings. Standings are computed on demand rather than maintained
// incrementally, so a rescoring run is reflected immediately.
type LeaderboardService struct {
	repo    leaderboarddb.Repository
	scoring scoringservice.Service
	db      *bun.DB
	logger  *slog.Logger
	tracer  trace.Tracer
}

var _ Service = (*LeaderboardService)(nil)

func NewLeaderboardService(
	repo leaderboarddb.Repository,
	scoring scoringservice.Service,
	db *bun.DB,
	logger *slog.Logger,
	tracer trace.Tracer,
) *LeaderboardService {
	return &LeaderboardService{
		repo:    repo,
		scoring: scoring,
		db:      db,
		logger:  logger,
		tracer:  tracer,
	}
}

func (s *LeaderboardService) SeasonLeaderboard(ctx context.Context, year int, limit int) ([]SeasonStanding, error) {
	ctx, span := s.tracer.Start(ctx, "leaderboard.SeasonLeaderboard")
	defer span.End()

	if limit <= 0 {
		limit = defaultStandingLimit
	}

	rows, err := s.repo.SeasonTotals(ctx, nil, year, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load season totals for %d: %w", year, err)
	}
	return rankSeasonRows(rows), nil
}

func (s *LeaderboardService) EventLeaderboard(ctx context.Context, eventID uuid.UUID, limit int) ([]EventStanding, error) {
	ctx, span := s.tracer.Start(ctx, "leaderboard.EventLeaderboard")
	defer span.End()

	if limit <= 0 {
		limit = defaultStandingLimit
	}

	rows, err := s.repo.EventTotals(ctx, nil, eventID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load event totals for %s: %w", eventID, err)
	}

	standings := make([]EventStanding, len(rows))
	for i, row := range rows {
		standings[i] = EventStanding{
			Rank:         i + 1,
			UserID:       row.UserID,
			DisplayName:  row.DisplayName,
			TotalPoints:  row.TotalPoints,
			PicksScored:  row.PicksScored,
			ExactMatches: row.ExactMatches,
		}
	}
	return standings, nil
}

func (s *LeaderboardService) LeagueLeaderboard(ctx context.Context, leagueID uuid.UUID, year int, limit int) ([]SeasonStanding, error) {
	ctx, span := s.tracer.Start(ctx, "leaderboard.LeagueLeaderboard")
	defer span.End()

	if limit <= 0 {
		limit = defaultStandingLimit
	}

	if _, err := s.repo.GetLeague(ctx, nil, leagueID); err != nil {
		return nil, err
	}

	memberIDs, err := s.repo.LeagueMemberIDs(ctx, nil, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members of league %s: %w", leagueID, err)
	}
	if len(memberIDs) == 0 {
		return []SeasonStanding{}, nil
	}

	rows, err := s.repo.SeasonTotals(ctx, nil, year, memberIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load season totals for league %s: %w", leagueID, err)
	}
	return rankSeasonRows(rows), nil
}

// rankSeasonRows assigns 1-based ranks in the order the repository returned,
// which is already highest points first with a deterministic tiebreak.
func rankSeasonRows(rows []leaderboarddb.SeasonTotalRow) []SeasonStanding {
	standings := make([]SeasonStanding, len(rows))
	for i, row := range rows {
		standings[i] = SeasonStanding{
			Rank:          i + 1,
			UserID:        row.UserID,
			DisplayName:   row.DisplayName,
			TotalPoints:   row.TotalPoints,
			EventsScored:  row.EventsScored,
			AveragePoints: row.AveragePoints,
		}
	}
	return standings
}
