package scoringqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	scoringservice "github.com/podium-club/gridpicks/app/modules/scoring/application"
)

// QueueScoring is the dedicated river queue for scoring jobs.
const QueueScoring = "scoring"

// Service schedules and runs scoring jobs through River.
type Service interface {
	EnqueueScoreEvent(ctx context.Context, eventID uuid.UUID) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type queueService struct {
	client *river.Client[pgx.Tx]
	pool   *pgxpool.Pool
	logger *slog.Logger
}

var _ Service = (*queueService)(nil)

// NewService creates a River-based queue service for scoring jobs. River
// requires pgx, so it gets its own pool alongside the bun connection.
func NewService(ctx context.Context, dsn string, maxWorkers int, scoring scoringservice.Service, logger *slog.Logger) (Service, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN for River: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool for River: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database for River: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewScoreEventWorker(scoring, logger))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			QueueScoring: {MaxWorkers: maxWorkers},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	logger.Info("Scoring queue service initialized")

	return &queueService{
		client: client,
		pool:   pool,
		logger: logger,
	}, nil
}

func (s *queueService) EnqueueScoreEvent(ctx context.Context, eventID uuid.UUID) error {
	res, err := s.client.Insert(ctx, ScoreEventArgs{EventID: eventID}, nil)
	if err != nil {
		return fmt.Errorf("failed to enqueue scoring job for event %s: %w", eventID, err)
	}

	if res.UniqueSkippedAsDuplicate {
		s.logger.InfoContext(ctx, "Scoring job already queued for event",
			slog.String("event_id", eventID.String()),
		)
		return nil
	}

	s.logger.InfoContext(ctx, "Enqueued scoring job",
		slog.String("event_id", eventID.String()),
		slog.Int64("job_id", res.Job.ID),
	)
	return nil
}

func (s *queueService) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.Info("Scoring queue service started")
	return nil
}

func (s *queueService) Stop(ctx context.Context) error {
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	s.logger.Info("Scoring queue service stopped")
	return nil
}
