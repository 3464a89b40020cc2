package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ScoringMetrics records prometheus metrics for scoring runs and individual
// pick outcomes.
type ScoringMetrics interface {
	RecordRunAttempt(ctx context.Context)
	RecordRunSuccess(ctx context.Context)
	RecordRunFailure(ctx context.Context)
	RecordRunDuration(ctx context.Context, duration time.Duration)
	RecordPickScored(ctx context.Context, points int)
	RecordPickSkipped(ctx context.Context)
}

type scoringMetrics struct {
	runAttempts   prometheus.Counter
	runSuccesses  prometheus.Counter
	runFailures   prometheus.Counter
	runDuration   prometheus.Histogram
	picksScored   prometheus.Counter
	picksSkipped  prometheus.Counter
	pointsAwarded prometheus.Counter
}

// NewScoringMetrics registers the scoring metric set on reg.
func NewScoringMetrics(reg prometheus.Registerer) ScoringMetrics {
	m := &scoringMetrics{
		runAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridpicks_scoring_runs_total",
			Help: "Number of event scoring runs attempted.",
		}),
		runSuccesses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridpicks_scoring_runs_succeeded_total",
			Help: "Number of event scoring runs that committed.",
		}),
		runFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridpicks_scoring_runs_failed_total",
			Help: "Number of event scoring runs that aborted.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridpicks_scoring_run_duration_seconds",
			Help:    "Duration of event scoring runs.",
			Buckets: prometheus.DefBuckets,
		}),
		picksScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridpicks_picks_scored_total",
			Help: "Number of picks scored across all runs.",
		}),
		picksSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridpicks_picks_skipped_total",
			Help: "Number of picks skipped due to per-pick scoring failures.",
		}),
		pointsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridpicks_points_awarded_total",
			Help: "Total points awarded across all runs.",
		}),
	}

	reg.MustRegister(
		m.runAttempts,
		m.runSuccesses,
		m.runFailures,
		m.runDuration,
		m.picksScored,
		m.picksSkipped,
		m.pointsAwarded,
	)

	return m
}

func (m *scoringMetrics) RecordRunAttempt(context.Context) { m.runAttempts.Inc() }
func (m *scoringMetrics) RecordRunSuccess(context.Context) { m.runSuccesses.Inc() }
func (m *scoringMetrics) RecordRunFailure(context.Context) { m.runFailures.Inc() }

func (m *scoringMetrics) RecordRunDuration(_ context.Context, duration time.Duration) {
	m.runDuration.Observe(duration.Seconds())
}

func (m *scoringMetrics) RecordPickScored(_ context.Context, points int) {
	m.picksScored.Inc()
	m.pointsAwarded.Add(float64(points))
}

func (m *scoringMetrics) RecordPickSkipped(context.Context) { m.picksSkipped.Inc() }

// NoOpScoringMetrics is used in tests.
type NoOpScoringMetrics struct{}

func (NoOpScoringMetrics) RecordRunAttempt(context.Context)                 {}
func (NoOpScoringMetrics) RecordRunSuccess(context.Context)                 {}
func (NoOpScoringMetrics) RecordRunFailure(context.Context)                 {}
func (NoOpScoringMetrics) RecordRunDuration(context.Context, time.Duration) {}
func (NoOpScoringMetrics) RecordPickScored(context.Context, int)            {}
func (NoOpScoringMetrics) RecordPickSkipped(context.Context)                {}
