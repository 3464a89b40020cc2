package scoringservice

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	"github.com/podium-club/gridpicks/app/eventbus"
	"github.com/podium-club/gridpicks/app/observability"
	scoringdb "github.com/podium-club/gridpicks/app/modules/scoring/infrastructure/repositories"
)

// ScoringService implements the Service interface.
type ScoringService struct {
	repo     scoringdb.Repository
	db       *bun.DB
	eventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  observability.ScoringMetrics
	tracer   trace.Tracer
}

var _ Service = (*ScoringService)(nil)

// NewScoringService creates a new ScoringService. eventBus may be nil when
// no bus is wired (tests, CLI runs); the run summary is then simply not
// published.
func NewScoringService(
	repo scoringdb.Repository,
	db *bun.DB,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	metrics observability.ScoringMetrics,
	tracer trace.Tracer,
) *ScoringService {
	return &ScoringService{
		repo:     repo,
		db:       db,
		eventBus: eventBus,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
	}
}

// runInTx ensures fn runs within a single transaction. Without a DB handle
// (unit tests run against fakes) fn runs directly.
func (s *ScoringService) runInTx(ctx context.Context, fn func(ctx context.Context, tx bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}
