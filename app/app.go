package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"

	"github.com/podium-club/gridpicks/api"
	"github.com/podium-club/gridpicks/app/eventbus"
	leaderboardservice "github.com/podium-club/gridpicks/app/modules/leaderboard/application"
	scoringservice "github.com/podium-club/gridpicks/app/modules/scoring/application"
	scoringhandlers "github.com/podium-club/gridpicks/app/modules/scoring/infrastructure/handlers"
	scoringqueue "github.com/podium-club/gridpicks/app/modules/scoring/infrastructure/queue"
	"github.com/podium-club/gridpicks/app/observability"
	"github.com/podium-club/gridpicks/config"
	"github.com/podium-club/gridpicks/db/bundb"
)

// App owns every long-lived component of the service.
type App struct {
	Config             *config.Config
	Logger             *slog.Logger
	ScoringService     scoringservice.Service
	LeaderboardService leaderboardservice.Service

	db            *bundb.DBService
	bus           eventbus.EventBus
	queue         scoringqueue.Service
	messageRouter *message.Router
	httpServer    *http.Server
	metricsServer *http.Server
	registry      *prometheus.Registry
}

// Initialize wires configuration, storage, messaging, and services.
func (a *App) Initialize(ctx context.Context, cfg *config.Config) error {
	a.Config = cfg
	a.Logger = observability.NewLogger(cfg.Observability.Environment)

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	scoringMetrics := observability.NewScoringMetrics(a.registry)

	tracer := otel.Tracer("gridpicks")

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to initialize database service: %w", err)
	}
	a.db = dbService

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize event bus: %w", err)
	}
	a.bus = bus

	a.ScoringService = scoringservice.NewScoringService(
		dbService.ScoringDB,
		dbService.GetDB(),
		bus,
		a.Logger,
		scoringMetrics,
		tracer,
	)

	a.LeaderboardService = leaderboardservice.NewLeaderboardService(
		dbService.LeaderboardDB,
		a.ScoringService,
		dbService.GetDB(),
		a.Logger,
		tracer,
	)

	queue, err := scoringqueue.NewService(ctx, cfg.Postgres.DSN, cfg.Scoring.QueueMaxWorkers, a.ScoringService, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize scoring queue: %w", err)
	}
	a.queue = queue

	handlers := scoringhandlers.NewScoringHandlers(queue, a.Logger)
	router, err := scoringhandlers.NewRouter(bus, handlers, a.Logger, a.registry)
	if err != nil {
		return fmt.Errorf("failed to initialize message router: %w", err)
	}
	a.messageRouter = router

	apiHandlers := api.NewHandlers(a.ScoringService, a.LeaderboardService, a.Logger)
	a.httpServer = &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           api.NewRouter(apiHandlers, rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Observability.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
		a.metricsServer = &http.Server{
			Addr:              cfg.Observability.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	a.Logger.Info("Application initialized",
		slog.String("http_address", cfg.HTTP.Address),
		slog.String("environment", cfg.Observability.Environment),
	)
	return nil
}

// Run starts the queue, message router, and HTTP servers, then blocks until
// the context is cancelled or a component fails.
func (a *App) Run(ctx context.Context) error {
	if err := a.queue.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scoring queue: %w", err)
	}

	errCh := make(chan error, 3)

	go func() {
		if err := a.messageRouter.Run(ctx); err != nil {
			errCh <- fmt.Errorf("message router stopped: %w", err)
		}
	}()

	go func() {
		a.Logger.Info("HTTP server listening", slog.String("address", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server stopped: %w", err)
		}
	}()

	if a.metricsServer != nil {
		go func() {
			a.Logger.Info("Metrics server listening", slog.String("address", a.metricsServer.Addr))
			if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server stopped: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown signal received")
		return a.shutdown()
	case err := <-errCh:
		a.Logger.Error("Component failure, shutting down", slog.Any("error", err))
		if shutdownErr := a.shutdown(); shutdownErr != nil {
			a.Logger.Error("Shutdown after failure was not clean", slog.Any("error", shutdownErr))
		}
		return err
	}
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if a.httpServer != nil {
		record(a.httpServer.Shutdown(ctx))
	}
	if a.metricsServer != nil {
		record(a.metricsServer.Shutdown(ctx))
	}
	if a.messageRouter != nil {
		record(a.messageRouter.Close())
	}
	if a.queue != nil {
		record(a.queue.Stop(ctx))
	}
	if a.bus != nil {
		record(a.bus.Close())
	}
	if a.db != nil {
		record(a.db.Close())
	}

	if firstErr != nil {
		return fmt.Errorf("shutdown was not clean: %w", firstErr)
	}
	a.Logger.Info("Shutdown complete")
	return nil
}
