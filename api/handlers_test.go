package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	leaderboardservice "github.com/podium-club/gridpicks/app/modules/leaderboard/application"
	leaderboarddb "github.com/podium-club/gridpicks/app/modules/leaderboard/infrastructure/repositories"
	scoringservice "github.com/podium-club/gridpicks/app/modules/scoring/application"
	"github.com/podium-club/gridpicks/app/observability"
)

type fakeScoring struct {
	summary scoringservice.ScoreEventSummary
	views   []scoringservice.EventScoreView
	err     error
}

func (f *fakeScoring) ScoreEvent(_ context.Context, eventID uuid.UUID) (scoringservice.ScoreEventSummary, error) {
	if f.err != nil {
		return scoringservice.ScoreEventSummary{}, f.err
	}
	summary := f.summary
	summary.EventID = eventID
	return summary, nil
}

func (f *fakeScoring) GetEventScores(context.Context, uuid.UUID, int) ([]scoringservice.EventScoreView, error) {
	return f.views, f.err
}

type fakeLeaderboard struct {
	season []leaderboardservice.SeasonStanding
	event  []leaderboardservice.EventStanding
	png    []byte
	xlsx   []byte
	err    error
}

func (f *fakeLeaderboard) SeasonLeaderboard(context.Context, int, int) ([]leaderboardservice.SeasonStanding, error) {
	return f.season, f.err
}

func (f *fakeLeaderboard) EventLeaderboard(context.Context, uuid.UUID, int) ([]leaderboardservice.EventStanding, error) {
	return f.event, f.err
}

func (f *fakeLeaderboard) LeagueLeaderboard(context.Context, uuid.UUID, int, int) ([]leaderboardservice.SeasonStanding, error) {
	return f.season, f.err
}

func (f *fakeLeaderboard) RenderSeasonChart(context.Context, int, int) ([]byte, error) {
	return f.png, f.err
}

func (f *fakeLeaderboard) ExportEventScores(context.Context, uuid.UUID) ([]byte, error) {
	return f.xlsx, f.err
}

var (
	_ scoringservice.Service     = (*fakeScoring)(nil)
	_ leaderboardservice.Service = (*fakeLeaderboard)(nil)
)

func newTestRouter(scoring scoringservice.Service, leaderboard leaderboardservice.Service) http.Handler {
	h := NewHandlers(scoring, leaderboard, observability.NoOpLogger)
	return NewRouter(h, rate.Limit(100), 100)
}

func TestScoreEvent(t *testing.T) {
	eventID := uuid.New()
	scoring := &fakeScoring{summary: scoringservice.ScoreEventSummary{PicksScored: 8, TotalPoints: 65}}
	router := newTestRouter(scoring, &fakeLeaderboard{})

	req := httptest.NewRequest(http.MethodPost, "/api/events/"+eventID.String()+"/score", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary scoringservice.ScoreEventSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Equal(t, eventID, summary.EventID)
	require.Equal(t, 65, summary.TotalPoints)
}

func TestScoreEvent_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"event not found", scoringservice.ErrEventNotFound, http.StatusNotFound},
		{"event not completed", scoringservice.ErrEventNotCompleted, http.StatusConflict},
		{"no results", scoringservice.ErrNoResults, http.StatusConflict},
		{"internal failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeScoring{err: tt.serviceErr}, &fakeLeaderboard{})

			req := httptest.NewRequest(http.MethodPost, "/api/events/"+uuid.NewString()+"/score", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestScoreEvent_InvalidEventID(t *testing.T) {
	router := newTestRouter(&fakeScoring{}, &fakeLeaderboard{})

	req := httptest.NewRequest(http.MethodPost, "/api/events/not-a-uuid/score", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScoreEvent_RateLimited(t *testing.T) {
	h := NewHandlers(&fakeScoring{}, &fakeLeaderboard{}, observability.NoOpLogger)
	router := NewRouter(h, rate.Limit(0.1), 1)

	url := "/api/events/" + uuid.NewString() + "/score"

	req := httptest.NewRequest(http.MethodPost, url, nil)
	req.RemoteAddr = "10.1.2.3:5000"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestGetEventScores(t *testing.T) {
	views := []scoringservice.EventScoreView{
		{ScoreID: uuid.New(), Points: 10, ExactMatch: true},
		{ScoreID: uuid.New(), Points: 4},
	}
	router := newTestRouter(&fakeScoring{views: views}, &fakeLeaderboard{})

	req := httptest.NewRequest(http.MethodGet, "/api/events/"+uuid.NewString()+"/scores", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []scoringservice.EventScoreView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
}

func TestGetSeasonLeaderboard(t *testing.T) {
	standings := []leaderboardservice.SeasonStanding{
		{Rank: 1, UserID: uuid.New(), DisplayName: "Alice", TotalPoints: 120},
	}
	router := newTestRouter(&fakeScoring{}, &fakeLeaderboard{season: standings})

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboards/season?year=2025", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []leaderboardservice.SeasonStanding
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "Alice", got[0].DisplayName)
}

func TestGetLeagueLeaderboard_NotFound(t *testing.T) {
	router := newTestRouter(&fakeScoring{}, &fakeLeaderboard{err: leaderboarddb.ErrLeagueNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboards/leagues/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSeasonChart(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	router := newTestRouter(&fakeScoring{}, &fakeLeaderboard{png: png})

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboards/season/chart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.Equal(t, png, rec.Body.Bytes())
}

func TestExportEventScores(t *testing.T) {
	router := newTestRouter(&fakeScoring{}, &fakeLeaderboard{xlsx: []byte("PK workbook")})

	req := httptest.NewRequest(http.MethodGet, "/api/events/"+uuid.NewString()+"/scores/export", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&fakeScoring{}, &fakeLeaderboard{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
