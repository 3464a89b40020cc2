package scoringservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/podium-club/gridpicks/app/eventbus"
	scoringdomain "github.com/podium-club/gridpicks/app/modules/scoring/domain"
	scoringdb "github.com/podium-club/gridpicks/app/modules/scoring/infrastructure/repositories"
)

// ScoreEvent scores every pick for a completed event. The whole run is one
// transaction: score upserts and the audit entry become visible together or
// not at all. Re-running after re-ingestion updates scores in place.
func (s *ScoringService) ScoreEvent(ctx context.Context, eventID uuid.UUID) (ScoreEventSummary, error) {
	ctx, span := s.tracer.Start(ctx, "ScoreEvent", trace.WithAttributes(
		attribute.String("event_id", eventID.String()),
	))
	defer span.End()

	s.metrics.RecordRunAttempt(ctx)
	startTime := time.Now()
	defer func() {
		s.metrics.RecordRunDuration(ctx, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, "Starting event scoring run",
		slog.String("event_id", eventID.String()),
	)

	summary := ScoreEventSummary{EventID: eventID}

	err := s.runInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		event, err := s.repo.GetEvent(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, scoringdb.ErrEventNotFound) {
				return fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
			}
			return err
		}

		if event.Status != scoringdb.EventCompleted {
			return fmt.Errorf("%w: %s (status: %s)", ErrEventNotCompleted, eventID, event.Status)
		}

		results, err := s.repo.ListEventResults(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return fmt.Errorf("%w: %s", ErrNoResults, eventID)
		}

		resultsByType := organizeResults(results)

		picks, err := s.repo.ListEventPicks(ctx, tx, eventID)
		if err != nil {
			return err
		}
		summary.PicksScored = len(picks)

		for _, pick := range picks {
			outcome, err := scoringdomain.ScorePick(pick.PropType, pick.PropValue, resultsByType[pick.PropType])
			if err != nil {
				// A bad value on one pick must not ruin the batch. Repository
				// failures below, by contrast, abort the run so the
				// transaction rolls back.
				s.logger.ErrorContext(ctx, "Skipping pick that failed to score",
					slog.String("event_id", eventID.String()),
					slog.String("pick_id", pick.ID.String()),
					slog.String("prop_type", pick.PropType.String()),
					slog.Any("error", err),
				)
				s.metrics.RecordPickSkipped(ctx)
				summary.PicksSkipped++
				continue
			}

			created, err := s.persistOutcome(ctx, tx, pick, outcome)
			if err != nil {
				return err
			}
			if created {
				summary.ScoresCreated++
			} else {
				summary.ScoresUpdated++
			}

			summary.TotalPoints += outcome.Points
			s.metrics.RecordPickScored(ctx, outcome.Points)
		}

		return s.repo.CreateAuditLog(ctx, tx, &scoringdb.AuditLog{
			EntityType: scoringdb.EntityEvent,
			EntityID:   eventID,
			Action:     scoringdb.ActionScoreCalculated,
			Metadata: map[string]any{
				"picks_scored":   summary.PicksScored,
				"scores_created": summary.ScoresCreated,
				"scores_updated": summary.ScoresUpdated,
				"total_points":   summary.TotalPoints,
			},
		})
	})
	if err != nil {
		s.metrics.RecordRunFailure(ctx)
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "Event scoring run failed",
			slog.String("event_id", eventID.String()),
			slog.Any("error", err),
		)
		return ScoreEventSummary{}, err
	}

	s.metrics.RecordRunSuccess(ctx)
	s.logger.InfoContext(ctx, "Event scoring run completed",
		slog.String("event_id", eventID.String()),
		slog.Int("picks_scored", summary.PicksScored),
		slog.Int("scores_created", summary.ScoresCreated),
		slog.Int("scores_updated", summary.ScoresUpdated),
		slog.Int("picks_skipped", summary.PicksSkipped),
		slog.Int("total_points", summary.TotalPoints),
	)

	// Publish after commit so subscribers never observe an uncommitted run.
	if s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, eventbus.TopicScoreCalculated, summary); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish score.calculated",
				slog.String("event_id", eventID.String()),
				slog.Any("error", err),
			)
		}
	}

	return summary, nil
}

// persistOutcome writes one pick's outcome, updating any existing score in
// place. Returns whether a new score row was created.
func (s *ScoringService) persistOutcome(ctx context.Context, tx bun.IDB, pick scoringdb.Pick, outcome scoringdomain.Outcome) (bool, error) {
	existing, err := s.repo.GetScoreByPickID(ctx, tx, pick.ID)
	if err != nil && !errors.Is(err, scoringdb.ErrScoreNotFound) {
		return false, err
	}

	if existing != nil {
		existing.Points = outcome.Points
		existing.Margin = outcome.Margin
		existing.ExactMatch = outcome.ExactMatch
		existing.Metadata = outcome.Metadata
		return false, s.repo.UpdateScore(ctx, tx, existing)
	}

	return true, s.repo.CreateScore(ctx, tx, &scoringdb.Score{
		PickID:     pick.ID,
		UserID:     pick.UserID,
		Points:     outcome.Points,
		Margin:     outcome.Margin,
		ExactMatch: outcome.ExactMatch,
		Metadata:   outcome.Metadata,
	})
}

// organizeResults groups results by prop type, preserving ingestion order,
// and converts rows into the shape the algorithms consume.
func organizeResults(results []scoringdb.Result) map[scoringdomain.PropType][]scoringdomain.ResultData {
	byType := make(map[scoringdomain.PropType][]scoringdomain.ResultData)
	for i := range results {
		r := &results[i]
		byType[r.PropType] = append(byType[r.PropType], r.ResultData())
	}
	return byType
}
