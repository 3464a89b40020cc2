package scoringservice

import (
	"context"

	"github.com/google/uuid"
)

const defaultScoreListLimit = 100

// GetEventScores returns the scores for an event joined with their picks,
// ordered by points descending. Not used by the scoring logic itself.
func (s *ScoringService) GetEventScores(ctx context.Context, eventID uuid.UUID, limit int) ([]EventScoreView, error) {
	if limit <= 0 {
		limit = defaultScoreListLimit
	}

	rows, err := s.repo.ListEventScores(ctx, nil, eventID, limit)
	if err != nil {
		return nil, err
	}

	views := make([]EventScoreView, 0, len(rows))
	for _, row := range rows {
		views = append(views, EventScoreView{
			ScoreID:        row.Score.ID,
			UserID:         row.Score.UserID,
			PickID:         row.Pick.ID,
			PropType:       row.Pick.PropType,
			PredictedValue: row.Pick.PropValue,
			Points:         row.Score.Points,
			Margin:         row.Score.Margin,
			ExactMatch:     row.Score.ExactMatch,
			Metadata:       row.Score.Metadata,
		})
	}
	return views, nil
}
