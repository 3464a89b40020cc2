package scoringhandlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// ResultsIngestedPayload announces that official results for an event have
// landed and the event is ready to be scored.
type ResultsIngestedPayload struct {
	EventID uuid.UUID `json:"event_id"`
	Source  string    `json:"source,omitempty"`
}

// Enqueuer schedules a scoring run for one event.
type Enqueuer interface {
	EnqueueScoreEvent(ctx context.Context, eventID uuid.UUID) error
}

// Handlers exposes the message handlers the scoring router registers.
type Handlers interface {
	HandleResultsIngested(msg *message.Message) error
}

// ScoringHandlers reacts to ingestion events by scheduling scoring jobs.
// Scoring itself always runs through the queue so that retries and
// per-event dedup apply uniformly.
type ScoringHandlers struct {
	queue  Enqueuer
	logger *slog.Logger
}

func NewScoringHandlers(queue Enqueuer, logger *slog.Logger) *ScoringHandlers {
	return &ScoringHandlers{queue: queue, logger: logger}
}

var _ Handlers = (*ScoringHandlers)(nil)

func (h *ScoringHandlers) HandleResultsIngested(msg *message.Message) error {
	var payload ResultsIngestedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		// A malformed payload never becomes valid on redelivery.
		h.logger.Error("Dropping unparseable results-ingested message",
			slog.String("message_id", msg.UUID),
			slog.Any("error", err),
		)
		return nil
	}

	if payload.EventID == uuid.Nil {
		h.logger.Error("Dropping results-ingested message without event ID",
			slog.String("message_id", msg.UUID),
		)
		return nil
	}

	ctx := msg.Context()
	if err := h.queue.EnqueueScoreEvent(ctx, payload.EventID); err != nil {
		return fmt.Errorf("failed to enqueue scoring for event %s: %w", payload.EventID, err)
	}

	h.logger.InfoContext(ctx, "Scheduled scoring run from ingestion event",
		slog.String("event_id", payload.EventID.String()),
		slog.String("source", payload.Source),
	)
	return nil
}
