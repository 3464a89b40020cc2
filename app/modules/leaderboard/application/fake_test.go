package leaderboardservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	leaderboarddb "github.com/podium-club/gridpicks/app/modules/leaderboard/infrastructure/repositories"
	scoringservice "github.com/podium-club/gridpicks/app/modules/scoring/application"
)

// FakeLeaderboardRepo is a programmable in-memory stub for the
// leaderboarddb.Repository interface.
type FakeLeaderboardRepo struct {
	Leagues    map[uuid.UUID]*leaderboarddb.League
	Members    map[uuid.UUID][]uuid.UUID // league ID -> member user IDs
	SeasonRows []leaderboarddb.SeasonTotalRow
	EventRows  []leaderboarddb.EventTotalRow

	GetLeagueFunc       func(ctx context.Context, db bun.IDB, leagueID uuid.UUID) (*leaderboarddb.League, error)
	LeagueMemberIDsFunc func(ctx context.Context, db bun.IDB, leagueID uuid.UUID) ([]uuid.UUID, error)
	SeasonTotalsFunc    func(ctx context.Context, db bun.IDB, year int, userIDs []uuid.UUID, limit int) ([]leaderboarddb.SeasonTotalRow, error)
	EventTotalsFunc     func(ctx context.Context, db bun.IDB, eventID uuid.UUID, limit int) ([]leaderboarddb.EventTotalRow, error)
}

func NewFakeLeaderboardRepo() *FakeLeaderboardRepo {
	return &FakeLeaderboardRepo{
		Leagues: map[uuid.UUID]*leaderboarddb.League{},
		Members: map[uuid.UUID][]uuid.UUID{},
	}
}

func (f *FakeLeaderboardRepo) GetLeague(ctx context.Context, db bun.IDB, leagueID uuid.UUID) (*leaderboarddb.League, error) {
	if f.GetLeagueFunc != nil {
		return f.GetLeagueFunc(ctx, db, leagueID)
	}
	league, ok := f.Leagues[leagueID]
	if !ok {
		return nil, leaderboarddb.ErrLeagueNotFound
	}
	return league, nil
}

func (f *FakeLeaderboardRepo) LeagueMemberIDs(ctx context.Context, db bun.IDB, leagueID uuid.UUID) ([]uuid.UUID, error) {
	if f.LeagueMemberIDsFunc != nil {
		return f.LeagueMemberIDsFunc(ctx, db, leagueID)
	}
	return f.Members[leagueID], nil
}

func (f *FakeLeaderboardRepo) SeasonTotals(ctx context.Context, db bun.IDB, year int, userIDs []uuid.UUID, limit int) ([]leaderboarddb.SeasonTotalRow, error) {
	if f.SeasonTotalsFunc != nil {
		return f.SeasonTotalsFunc(ctx, db, year, userIDs, limit)
	}

	filter := map[uuid.UUID]bool{}
	for _, id := range userIDs {
		filter[id] = true
	}

	var rows []leaderboarddb.SeasonTotalRow
	for _, row := range f.SeasonRows {
		if len(filter) > 0 && !filter[row.UserID] {
			continue
		}
		rows = append(rows, row)
		if limit > 0 && len(rows) == limit {
			break
		}
	}
	return rows, nil
}

func (f *FakeLeaderboardRepo) EventTotals(ctx context.Context, db bun.IDB, eventID uuid.UUID, limit int) ([]leaderboarddb.EventTotalRow, error) {
	if f.EventTotalsFunc != nil {
		return f.EventTotalsFunc(ctx, db, eventID, limit)
	}
	rows := f.EventRows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

var _ leaderboarddb.Repository = (*FakeLeaderboardRepo)(nil)

// FakeScoringService serves canned score views for export tests.
type FakeScoringService struct {
	Views []scoringservice.EventScoreView
	Err   error
}

func (f *FakeScoringService) ScoreEvent(_ context.Context, eventID uuid.UUID) (scoringservice.ScoreEventSummary, error) {
	return scoringservice.ScoreEventSummary{EventID: eventID}, f.Err
}

func (f *FakeScoringService) GetEventScores(_ context.Context, _ uuid.UUID, limit int) ([]scoringservice.EventScoreView, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	views := f.Views
	if limit > 0 && len(views) > limit {
		views = views[:limit]
	}
	return views, nil
}

var _ scoringservice.Service = (*FakeScoringService)(nil)
