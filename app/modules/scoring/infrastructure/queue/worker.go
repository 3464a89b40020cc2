package scoringqueue

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/riverqueue/river"

	scoringservice "github.com/podium-club/gridpicks/app/modules/scoring/application"
)

// ScoreEventArgs is the job payload for scoring one event.
type ScoreEventArgs struct {
	EventID uuid.UUID `json:"event_id"`
}

func (ScoreEventArgs) Kind() string { return "scoring.score_event" }

func (ScoreEventArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue: QueueScoring,
		// Serialize concurrent runs for the same event; runs for different
		// events never contend.
		UniqueOpts: river.UniqueOpts{ByArgs: true},
	}
}

// ScoreEventWorker runs the scoring orchestrator for a completed event.
type ScoreEventWorker struct {
	river.WorkerDefaults[ScoreEventArgs]
	service scoringservice.Service
	logger  *slog.Logger
}

func NewScoreEventWorker(service scoringservice.Service, logger *slog.Logger) *ScoreEventWorker {
	return &ScoreEventWorker{service: service, logger: logger}
}

func (w *ScoreEventWorker) Work(ctx context.Context, job *river.Job[ScoreEventArgs]) error {
	eventID := job.Args.EventID

	summary, err := w.service.ScoreEvent(ctx, eventID)
	if err != nil {
		if scoringservice.IsPrecondition(err) {
			// Retrying cannot help until the event state is fixed.
			w.logger.WarnContext(ctx, "Cancelling scoring job on precondition failure",
				slog.String("event_id", eventID.String()),
				slog.Any("error", err),
			)
			return river.JobCancel(err)
		}
		return err
	}

	w.logger.InfoContext(ctx, "Scoring job completed",
		slog.String("event_id", eventID.String()),
		slog.Int("picks_scored", summary.PicksScored),
		slog.Int("total_points", summary.TotalPoints),
	)
	return nil
}
