package scoringdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ScoringDBImpl implements Repository on bun.
type ScoringDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*ScoringDBImpl)(nil)

func (r *ScoringDBImpl) idb(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *ScoringDBImpl) GetEvent(ctx context.Context, db bun.IDB, eventID uuid.UUID) (*Event, error) {
	var event Event
	err := r.idb(db).NewSelect().
		Model(&event).
		Where("e.id = ?", eventID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}
	return &event, nil
}

func (r *ScoringDBImpl) ListEventResults(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]Result, error) {
	var results []Result
	err := r.idb(db).NewSelect().
		Model(&results).
		Where("r.event_id = ?", eventID).
		Order("ingested_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results for event %s: %w", eventID, err)
	}
	return results, nil
}

func (r *ScoringDBImpl) ListEventPicks(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]Pick, error) {
	var picks []Pick
	err := r.idb(db).NewSelect().
		Model(&picks).
		Where("p.event_id = ?", eventID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch picks for event %s: %w", eventID, err)
	}
	return picks, nil
}

func (r *ScoringDBImpl) GetScoreByPickID(ctx context.Context, db bun.IDB, pickID uuid.UUID) (*Score, error) {
	var score Score
	err := r.idb(db).NewSelect().
		Model(&score).
		Where("s.pick_id = ?", pickID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("failed to fetch score for pick %s: %w", pickID, err)
	}
	return &score, nil
}

func (r *ScoringDBImpl) CreateScore(ctx context.Context, db bun.IDB, score *Score) error {
	// The unique pick_id index makes concurrent runs for the same event safe:
	// a second inserter updates in place instead of duplicating.
	_, err := r.idb(db).NewInsert().
		Model(score).
		On("CONFLICT (pick_id) DO UPDATE").
		Set("points = EXCLUDED.points, margin = EXCLUDED.margin, exact_match = EXCLUDED.exact_match, metadata = EXCLUDED.metadata, updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert score for pick %s: %w", score.PickID, err)
	}
	return nil
}

func (r *ScoringDBImpl) UpdateScore(ctx context.Context, db bun.IDB, score *Score) error {
	score.UpdatedAt = time.Now().UTC()
	res, err := r.idb(db).NewUpdate().
		Model(score).
		Column("points", "margin", "exact_match", "metadata", "updated_at").
		Where("s.id = ?", score.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update score %s: %w", score.ID, err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrScoreNotFound
	}
	return nil
}

func (r *ScoringDBImpl) CreateAuditLog(ctx context.Context, db bun.IDB, entry *AuditLog) error {
	_, err := r.idb(db).NewInsert().
		Model(entry).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry for %s %s: %w", entry.EntityType, entry.EntityID, err)
	}
	return nil
}

func (r *ScoringDBImpl) ListEventScores(ctx context.Context, db bun.IDB, eventID uuid.UUID, limit int) ([]EventScoreRow, error) {
	var scores []Score
	err := r.idb(db).NewSelect().
		Model(&scores).
		Join("JOIN picks AS p ON p.id = s.pick_id").
		Where("p.event_id = ?", eventID).
		Order("points DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scores for event %s: %w", eventID, err)
	}

	if len(scores) == 0 {
		return nil, nil
	}

	pickIDs := make([]uuid.UUID, len(scores))
	for i, s := range scores {
		pickIDs[i] = s.PickID
	}

	var picks []Pick
	err = r.idb(db).NewSelect().
		Model(&picks).
		Where("p.id IN (?)", bun.In(pickIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch picks for event %s scores: %w", eventID, err)
	}

	picksByID := make(map[uuid.UUID]Pick, len(picks))
	for _, p := range picks {
		picksByID[p.ID] = p
	}

	rows := make([]EventScoreRow, 0, len(scores))
	for _, s := range scores {
		rows = append(rows, EventScoreRow{Score: s, Pick: picksByID[s.PickID]})
	}
	return rows, nil
}
