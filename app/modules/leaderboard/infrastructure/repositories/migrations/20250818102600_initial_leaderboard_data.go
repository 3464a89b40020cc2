package leaderboardmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	leaderboarddb "github.com/podium-club/gridpicks/app/modules/leaderboard/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating leaderboard tables...")

		models := []any{
			(*leaderboarddb.User)(nil),
			(*leaderboarddb.League)(nil),
			(*leaderboarddb.LeagueMember)(nil),
		}

		for _, model := range models {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		indices := []string{
			"CREATE INDEX IF NOT EXISTS idx_league_members_league_id ON league_members (league_id)",
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_league_members_league_user ON league_members (league_id, user_id)",
			"CREATE INDEX IF NOT EXISTS idx_leagues_owner_id ON leagues (owner_id)",
		}

		for _, stmt := range indices {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}

		fmt.Println("Leaderboard tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping leaderboard tables...")

		models := []any{
			(*leaderboarddb.LeagueMember)(nil),
			(*leaderboarddb.League)(nil),
			(*leaderboarddb.User)(nil),
		}

		for _, model := range models {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Leaderboard tables dropped successfully!")
		return nil
	})
}
