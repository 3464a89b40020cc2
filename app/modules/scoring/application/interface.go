package scoringservice

import (
	"context"

	"github.com/google/uuid"

	scoringdomain "github.com/podium-club/gridpicks/app/modules/scoring/domain"
)

// ScoreEventSummary reports the aggregate counts of one scoring run.
type ScoreEventSummary struct {
	EventID       uuid.UUID `json:"event_id"`
	PicksScored   int       `json:"picks_scored"`
	ScoresCreated int       `json:"scores_created"`
	ScoresUpdated int       `json:"scores_updated"`
	PicksSkipped  int       `json:"picks_skipped"`
	TotalPoints   int       `json:"total_points"`
}

// EventScoreView is one row of the read-side score listing.
type EventScoreView struct {
	ScoreID        uuid.UUID              `json:"score_id"`
	UserID         uuid.UUID              `json:"user_id"`
	PickID         uuid.UUID              `json:"pick_id"`
	PropType       scoringdomain.PropType `json:"prop_type"`
	PredictedValue string                 `json:"predicted_value"`
	Points         int                    `json:"points"`
	Margin         *float64               `json:"margin"`
	ExactMatch     bool                   `json:"exact_match"`
	Metadata       map[string]any         `json:"metadata"`
}

// Service is the scoring module's application interface.
type Service interface {
	// ScoreEvent scores every outstanding pick for a completed event inside a
	// single transaction and returns the run summary.
	ScoreEvent(ctx context.Context, eventID uuid.UUID) (ScoreEventSummary, error)
	// GetEventScores returns up to limit scores for an event, highest first.
	GetEventScores(ctx context.Context, eventID uuid.UUID, limit int) ([]EventScoreView, error)
}
