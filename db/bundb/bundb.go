package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	leaderboarddb "github.com/podium-club/gridpicks/app/modules/leaderboard/infrastructure/repositories"
	scoringdb "github.com/podium-club/gridpicks/app/modules/scoring/infrastructure/repositories"
	"github.com/podium-club/gridpicks/config"
)

// DBService bundles the bun connection with the per-module repositories.
type DBService struct {
	ScoringDB     *scoringdb.ScoringDBImpl
	LeaderboardDB *leaderboarddb.LeaderboardDBImpl
	db            *bun.DB
}

// GetDB returns the underlying database connection pool.
func (s *DBService) GetDB() *bun.DB {
	return s.db
}

// Close closes the database connection.
func (s *DBService) Close() error {
	return s.db.Close()
}

// NewBunDBService initializes a new DBService with the provided Postgres configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel(
		(*scoringdb.Event)(nil),
		(*scoringdb.Pick)(nil),
		(*scoringdb.Result)(nil),
		(*scoringdb.Score)(nil),
		(*scoringdb.AuditLog)(nil),
		(*leaderboarddb.User)(nil),
		(*leaderboarddb.League)(nil),
		(*leaderboarddb.LeagueMember)(nil),
	)

	return &DBService{
		ScoringDB:     &scoringdb.ScoringDBImpl{DB: db},
		LeaderboardDB: &leaderboarddb.LeaderboardDBImpl{DB: db},
		db:            db,
	}, nil
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqldb, nil
}
