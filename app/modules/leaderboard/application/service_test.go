package leaderboardservice

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/trace/noop"

	leaderboarddb "github.com/podium-club/gridpicks/app/modules/leaderboard/infrastructure/repositories"
	scoringservice "github.com/podium-club/gridpicks/app/modules/scoring/application"
	scoringdomain "github.com/podium-club/gridpicks/app/modules/scoring/domain"
	"github.com/podium-club/gridpicks/app/observability"
)

func newTestService(repo leaderboarddb.Repository, scoring scoringservice.Service) *LeaderboardService {
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewLeaderboardService(repo, scoring, nil, observability.NoOpLogger, tracer)
}

func seasonRow(name string, points, events int, avg float64) leaderboarddb.SeasonTotalRow {
	return leaderboarddb.SeasonTotalRow{
		UserID:        uuid.New(),
		DisplayName:   name,
		TotalPoints:   points,
		EventsScored:  events,
		AveragePoints: avg,
	}
}

func TestSeasonLeaderboard(t *testing.T) {
	repo := NewFakeLeaderboardRepo()
	repo.SeasonRows = []leaderboarddb.SeasonTotalRow{
		seasonRow("Alice", 120, 5, 8.0),
		seasonRow("Bob", 95, 5, 6.33),
		seasonRow("Carol", 95, 4, 7.91),
	}

	svc := newTestService(repo, nil)

	standings, err := svc.SeasonLeaderboard(context.Background(), 2025, 0)
	require.NoError(t, err)
	require.Len(t, standings, 3)

	require.Equal(t, 1, standings[0].Rank)
	require.Equal(t, "Alice", standings[0].DisplayName)
	require.Equal(t, 120, standings[0].TotalPoints)
	require.Equal(t, 5, standings[0].EventsScored)
	require.InDelta(t, 8.0, standings[0].AveragePoints, 1e-9)

	// Ranks stay 1-based and sequential even on tied points.
	require.Equal(t, 2, standings[1].Rank)
	require.Equal(t, 3, standings[2].Rank)
}

func TestSeasonLeaderboard_Empty(t *testing.T) {
	svc := newTestService(NewFakeLeaderboardRepo(), nil)

	standings, err := svc.SeasonLeaderboard(context.Background(), 2025, 0)
	require.NoError(t, err)
	require.Empty(t, standings)
}

func TestEventLeaderboard(t *testing.T) {
	repo := NewFakeLeaderboardRepo()
	repo.EventRows = []leaderboarddb.EventTotalRow{
		{UserID: uuid.New(), DisplayName: "Alice", TotalPoints: 65, PicksScored: 8, ExactMatches: 4},
		{UserID: uuid.New(), DisplayName: "Bob", TotalPoints: 40, PicksScored: 8, ExactMatches: 1},
	}

	svc := newTestService(repo, nil)

	standings, err := svc.EventLeaderboard(context.Background(), uuid.New(), 0)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	require.Equal(t, 1, standings[0].Rank)
	require.Equal(t, 65, standings[0].TotalPoints)
	require.Equal(t, 4, standings[0].ExactMatches)
	require.Equal(t, 2, standings[1].Rank)
}

func TestLeagueLeaderboard(t *testing.T) {
	repo := NewFakeLeaderboardRepo()
	leagueID := uuid.New()
	repo.Leagues[leagueID] = &leaderboarddb.League{ID: leagueID, Name: gofakeit.Company()}

	member := seasonRow("Member", 80, 4, 6.67)
	outsider := seasonRow("Outsider", 200, 6, 11.1)
	repo.SeasonRows = []leaderboarddb.SeasonTotalRow{outsider, member}
	repo.Members[leagueID] = []uuid.UUID{member.UserID}

	svc := newTestService(repo, nil)

	standings, err := svc.LeagueLeaderboard(context.Background(), leagueID, 2025, 0)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	require.Equal(t, member.UserID, standings[0].UserID)
	require.Equal(t, 1, standings[0].Rank)
}

func TestLeagueLeaderboard_NotFound(t *testing.T) {
	svc := newTestService(NewFakeLeaderboardRepo(), nil)

	_, err := svc.LeagueLeaderboard(context.Background(), uuid.New(), 2025, 0)
	require.ErrorIs(t, err, leaderboarddb.ErrLeagueNotFound)
}

func TestLeagueLeaderboard_EmptyLeague(t *testing.T) {
	repo := NewFakeLeaderboardRepo()
	leagueID := uuid.New()
	repo.Leagues[leagueID] = &leaderboarddb.League{ID: leagueID, Name: "Empty"}
	repo.SeasonRows = []leaderboarddb.SeasonTotalRow{seasonRow("Outsider", 10, 1, 10)}

	svc := newTestService(repo, nil)

	standings, err := svc.LeagueLeaderboard(context.Background(), leagueID, 2025, 0)
	require.NoError(t, err)
	require.Empty(t, standings)
}

func TestSeasonLeaderboard_RepositoryError(t *testing.T) {
	repo := NewFakeLeaderboardRepo()
	dbDown := errors.New("connection refused")
	repo.SeasonTotalsFunc = func(context.Context, bun.IDB, int, []uuid.UUID, int) ([]leaderboarddb.SeasonTotalRow, error) {
		return nil, dbDown
	}

	svc := newTestService(repo, nil)

	_, err := svc.SeasonLeaderboard(context.Background(), 2025, 0)
	require.ErrorIs(t, err, dbDown)
}

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderSeasonChart(t *testing.T) {
	repo := NewFakeLeaderboardRepo()
	for i := 0; i < 5; i++ {
		repo.SeasonRows = append(repo.SeasonRows, seasonRow(gofakeit.Name(), 100-i*10, 5, float64(20-i*2)))
	}

	svc := newTestService(repo, nil)

	png, err := svc.RenderSeasonChart(context.Background(), 2025, 0)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestRenderSeasonChart_NoData(t *testing.T) {
	svc := newTestService(NewFakeLeaderboardRepo(), nil)

	png, err := svc.RenderSeasonChart(context.Background(), 2025, 0)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestExportEventScores(t *testing.T) {
	repo := NewFakeLeaderboardRepo()
	repo.EventRows = []leaderboarddb.EventTotalRow{
		{UserID: uuid.New(), DisplayName: "Alice", TotalPoints: 65, PicksScored: 8, ExactMatches: 4},
	}

	margin := 0.666
	scoring := &FakeScoringService{Views: []scoringservice.EventScoreView{
		{
			ScoreID:        uuid.New(),
			UserID:         uuid.New(),
			PickID:         uuid.New(),
			PropType:       scoringdomain.PropFastestLap,
			PredictedValue: "LEC",
			Points:         4,
			Margin:         &margin,
		},
	}}

	svc := newTestService(repo, scoring)

	data, err := svc.ExportEventScores(context.Background(), uuid.New())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	require.ElementsMatch(t, []string{"Standings", "Picks"}, f.GetSheetList())

	name, err := f.GetCellValue("Standings", "B2")
	require.NoError(t, err)
	require.Equal(t, "Alice", name)

	points, err := f.GetCellValue("Standings", "C2")
	require.NoError(t, err)
	require.Equal(t, "65", points)

	prediction, err := f.GetCellValue("Picks", "C2")
	require.NoError(t, err)
	require.Equal(t, "LEC", prediction)
}

func TestExportEventScores_ScoringFailure(t *testing.T) {
	repo := NewFakeLeaderboardRepo()
	scoringErr := errors.New("scores unavailable")
	svc := newTestService(repo, &FakeScoringService{Err: scoringErr})

	_, err := svc.ExportEventScores(context.Background(), uuid.New())
	require.ErrorIs(t, err, scoringErr)
}
