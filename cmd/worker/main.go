package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/ghuser/laundry-inventory/pkg/app"
	"github.com/ghuser/laundry-inventory/pkg/cache"
	"github.com/ghuser/laundry-inventory/pkg/config"
	"github.com/ghuser/laundry-inventory/pkg/database"
	"github.com/ghuser/laundry-inventory/pkg/events"
	"github.com/ghuser/laundry-inventory/pkg/logger"
	"github.com/ghuser/laundry-inventory/pkg/telemetry"
	"github.com/ghuser/laundry-inventory/pkg/workflows"
	appsvcs "github.com/ghuser/laundry-inventory/services/item/application/services"
	"github.com/ghuser/laundry-inventory/services/item/application/subscribers"
	itemWorkflows "github.com/ghuser/laundry-inventory/services/item/application/workflows"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	if !cfg.UsesPostgres() {
		log.Error("worker requires ITEM_STORE=postgres: events are only published by the postgres store")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelProviders, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer otelProviders.Shutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close() //nolint:errcheck
	log.Info("database pool connected")

	eventBus, err := events.New(pool.DB().DB, events.OptionsFromConfig(cfg, false), log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if cfg.TemporalEnabled {
		temporalClient, err := workflows.NewTemporalClient(ctx, cfg, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer temporalClient.Close()
		appConfig.TemporalClient = temporalClient
	}

	svcs := appsvcs.New(appConfig)
	acts := &itemWorkflows.Activities{Items: svcs.Item, Log: log}

	var alerter itemWorkflows.Alerter = itemWorkflows.NewLogAlerter(acts)
	if tc := appConfig.TemporalClient; tc != nil {
		w := tc.NewWorker()
		itemWorkflows.Register(w, acts)
		if err := w.Start(); err != nil {
			log.Error("failed to start temporal worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer w.Stop()
		alerter = itemWorkflows.NewTemporalAlerter(tc.Client, tc.TaskQueue)
		log.Info("temporal worker started", "task_queue", tc.TaskQueue)
	}

	if err := registerSubscribers(ctx, appConfig, subscribers.New(svcs.Item, alerter, log)); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	// EventBus.Close (deferred) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new services' subscribers here as they start publishing events.
func registerSubscribers(ctx context.Context, a *app.Application, items *subscribers.ItemSubscribers) error {
	handlers := items.Handlers()
	topics := make([]string, 0, len(handlers))
	for topic := range handlers {
		topics = append(topics, topic)
	}
	slices.Sort(topics)

	for _, topic := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handlers[topic])
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error",
					"topic", topic,
					"error", err,
				)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}
