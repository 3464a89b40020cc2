package scoringhandlers

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/podium-club/gridpicks/app/eventbus"
)

// NewRouter builds the watermill router that feeds ingestion events into the
// scoring queue. The prometheus registry is optional; pass nil to skip router
// metrics in tests.
func NewRouter(
	bus eventbus.EventBus,
	handlers Handlers,
	logger *slog.Logger,
	registry *prometheus.Registry,
) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create message router: %w", err)
	}

	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)

	if registry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(registry, "gridpicks", "messaging")
		builder.AddPrometheusRouterMetrics(router)
	}

	router.AddNoPublisherHandler(
		"scoring.results_ingested",
		eventbus.TopicResultsIngested,
		bus.Subscriber(),
		handlers.HandleResultsIngested,
	)

	return router, nil
}
