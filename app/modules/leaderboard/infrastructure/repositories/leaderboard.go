package leaderboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	scoringdb "github.com/podium-club/gridpicks/app/modules/scoring/infrastructure/repositories"
)

// LeaderboardDBImpl aggregates standings straight from the scores table, so
// leaderboards never go stale relative to a rescoring run.
type LeaderboardDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*LeaderboardDBImpl)(nil)

func (r *LeaderboardDBImpl) idb(db bun.IDB) bun.IDB {
	if db == nil {
		return r.DB
	}
	return db
}

func (r *LeaderboardDBImpl) GetLeague(ctx context.Context, db bun.IDB, leagueID uuid.UUID) (*League, error) {
	league := new(League)
	err := r.idb(db).NewSelect().
		Model(league).
		Where("l.id = ?", leagueID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("leaderboarddb.GetLeague: %w", err)
	}
	return league, nil
}

func (r *LeaderboardDBImpl) LeagueMemberIDs(ctx context.Context, db bun.IDB, leagueID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.idb(db).NewSelect().
		Model((*LeagueMember)(nil)).
		Column("lm.user_id").
		Where("lm.league_id = ?", leagueID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("leaderboarddb.LeagueMemberIDs: %w", err)
	}
	return ids, nil
}

// SeasonTotals sums each user's points across all events of a season.
// events_scored counts distinct events the user has at least one score in.
// An empty userIDs slice means no membership filter.
func (r *LeaderboardDBImpl) SeasonTotals(ctx context.Context, db bun.IDB, year int, userIDs []uuid.UUID, limit int) ([]SeasonTotalRow, error) {
	var rows []SeasonTotalRow

	q := r.idb(db).NewSelect().
		Model((*scoringdb.Score)(nil)).
		ColumnExpr("s.user_id").
		ColumnExpr("u.display_name").
		ColumnExpr("SUM(s.points) AS total_points").
		ColumnExpr("COUNT(DISTINCT p.event_id) AS events_scored").
		ColumnExpr("ROUND(AVG(s.points)::numeric, 2) AS average_points").
		Join("JOIN picks AS p ON p.id = s.pick_id").
		Join("JOIN events AS e ON e.id = p.event_id").
		Join("JOIN users AS u ON u.id = s.user_id").
		Where("e.year = ?", year).
		GroupExpr("s.user_id, u.display_name").
		OrderExpr("total_points DESC, u.display_name ASC")

	if len(userIDs) > 0 {
		q = q.Where("s.user_id IN (?)", bun.In(userIDs))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("leaderboarddb.SeasonTotals: %w", err)
	}
	return rows, nil
}

// EventTotals sums each user's points for one event.
func (r *LeaderboardDBImpl) EventTotals(ctx context.Context, db bun.IDB, eventID uuid.UUID, limit int) ([]EventTotalRow, error) {
	var rows []EventTotalRow

	q := r.idb(db).NewSelect().
		Model((*scoringdb.Score)(nil)).
		ColumnExpr("s.user_id").
		ColumnExpr("u.display_name").
		ColumnExpr("SUM(s.points) AS total_points").
		ColumnExpr("COUNT(*) AS picks_scored").
		ColumnExpr("COUNT(*) FILTER (WHERE s.exact_match) AS exact_matches").
		Join("JOIN picks AS p ON p.id = s.pick_id").
		Join("JOIN users AS u ON u.id = s.user_id").
		Where("p.event_id = ?", eventID).
		GroupExpr("s.user_id, u.display_name").
		OrderExpr("total_points DESC, u.display_name ASC")

	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("leaderboarddb.EventTotals: %w", err)
	}
	return rows, nil
}
