package scoringdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EventScoreRow is a score joined with its pick for read-side display.
type EventScoreRow struct {
	Score Score
	Pick  Pick
}

// Repository is the persistence contract of the scoring module. Methods take
// a bun.IDB so callers can run them inside a transaction; passing nil falls
// back to the repository's own connection.
type Repository interface {
	GetEvent(ctx context.Context, db bun.IDB, eventID uuid.UUID) (*Event, error)
	ListEventResults(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]Result, error)
	ListEventPicks(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]Pick, error)
	GetScoreByPickID(ctx context.Context, db bun.IDB, pickID uuid.UUID) (*Score, error)
	CreateScore(ctx context.Context, db bun.IDB, score *Score) error
	UpdateScore(ctx context.Context, db bun.IDB, score *Score) error
	CreateAuditLog(ctx context.Context, db bun.IDB, entry *AuditLog) error
	ListEventScores(ctx context.Context, db bun.IDB, eventID uuid.UUID, limit int) ([]EventScoreRow, error)
}
