package scoringmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	scoringdb "github.com/podium-club/gridpicks/app/modules/scoring/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating scoring tables...")

		models := []any{
			(*scoringdb.Event)(nil),
			(*scoringdb.Pick)(nil),
			(*scoringdb.Result)(nil),
			(*scoringdb.Score)(nil),
			(*scoringdb.AuditLog)(nil),
		}

		for _, model := range models {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		indices := []string{
			"CREATE INDEX IF NOT EXISTS idx_picks_event_id ON picks (event_id)",
			"CREATE INDEX IF NOT EXISTS idx_picks_prop_type ON picks (prop_type)",
			"CREATE INDEX IF NOT EXISTS idx_results_event_id ON results (event_id)",
			"CREATE INDEX IF NOT EXISTS idx_results_prop_type ON results (prop_type)",
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_scores_pick_id ON scores (pick_id)",
			"CREATE INDEX IF NOT EXISTS idx_scores_user_id ON scores (user_id)",
			"CREATE INDEX IF NOT EXISTS idx_audit_entity ON audit (entity_type, entity_id)",
			"CREATE INDEX IF NOT EXISTS idx_events_year_round ON events (year, round_number)",
		}

		for _, stmt := range indices {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}

		fmt.Println("Scoring tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping scoring tables...")

		models := []any{
			(*scoringdb.AuditLog)(nil),
			(*scoringdb.Score)(nil),
			(*scoringdb.Result)(nil),
			(*scoringdb.Pick)(nil),
			(*scoringdb.Event)(nil),
		}

		for _, model := range models {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Scoring tables dropped successfully!")
		return nil
	})
}
