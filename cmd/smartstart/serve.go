package main

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/smartstart/smartstart-money/config"
	"github.com/smartstart/smartstart-money/internal/application/command"
	"github.com/smartstart/smartstart-money/internal/application/eventhandler"
	"github.com/smartstart/smartstart-money/internal/application/query"
	"github.com/smartstart/smartstart-money/internal/domain/session"
	"github.com/smartstart/smartstart-money/internal/infrastructure/metrics"
	"github.com/smartstart/smartstart-money/internal/infrastructure/persistence/memory"
	redisstore "github.com/smartstart/smartstart-money/internal/infrastructure/persistence/redis"
	"github.com/smartstart/smartstart-money/internal/infrastructure/scheduler"
	"github.com/smartstart/smartstart-money/internal/infrastructure/scheduler/jobs"
	httpapi "github.com/smartstart/smartstart-money/internal/interface/http"
	"github.com/smartstart/smartstart-money/internal/interface/http/handlers"
	"github.com/smartstart/smartstart-money/pkg/logger"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			return serve(cmd.Context(), cfg, log)
		},
	}
}

// serve wires every component and blocks until ctx is cancelled or the HTTP
// server fails.
func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	log.Info("starting SmartStart Money",
		logger.String("version", cfg.App.Version),
		logger.String("session_store", cfg.Session.Store),
		logger.String("catalog_source", cfg.Catalog.Source),
		logger.String("event_bus", cfg.EventBus.Driver),
	)

	m := metrics.New()
	health := handlers.NewCompositeHealthChecker(cfg.App.Version)

	// ─────────────────────────────────────────────────────────────────────────
	// Infrastructure
	// ─────────────────────────────────────────────────────────────────────────

	var rdb *goredis.Client
	if cfg.UsesRedis() {
		var err error
		rdb, err = redisstore.Connect(ctx, redisConfig(cfg.Redis), log)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = rdb.Close() }()

		health.AddReadinessCheck("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	loaded, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer loaded.Close()
	cat := loaded.catalog

	if loaded.conn != nil {
		health.AddReadinessCheck("postgres", handlers.NewPingCheck(loaded.conn))
	}
	health.AddCheck("catalog", func(context.Context) error {
		if len(cat.Modules()) == 0 {
			return fmt.Errorf("catalog has no modules")
		}
		return nil
	})

	var (
		store   session.Repository
		sweeper jobs.Sweeper
	)
	switch cfg.Session.Store {
	case config.StoreRedis:
		store = redisstore.NewSessionStore(rdb)
	default:
		mem := memory.NewSessionStore()
		store, sweeper = mem, mem
	}

	bus, err := newEventBus(cfg, rdb, m, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := bus.Close(); err != nil {
			log.Warn("event bus close failed", logger.Err(err))
		}
	}()

	if err := eventhandler.NewMetricsRecorder(m).Register(bus); err != nil {
		return fmt.Errorf("register metrics recorder: %w", err)
	}
	if err := eventhandler.NewActivityLogger(log).Register(bus); err != nil {
		return fmt.Errorf("register activity logger: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Application
	// ─────────────────────────────────────────────────────────────────────────

	locker := session.NewLocker()
	cmdCfg := command.Config{
		SessionTTL: cfg.Session.TTL,
		TokenCost:  cfg.Session.TokenCost,
	}

	deps := httpapi.Dependencies{
		StartSession:   command.NewStartSessionHandler(store, bus, log, cmdCfg),
		SetMode:        command.NewSetModeHandler(store, locker, log, cmdCfg),
		QuizStep:       command.NewQuizStepHandler(store, locker, bus, log, cmdCfg),
		RetakeQuiz:     command.NewRetakeQuizHandler(store, locker, bus, log, cmdCfg),
		CompleteModule: command.NewCompleteModuleHandler(store, locker, cat, bus, log, cmdCfg),
		ChooseOption:   command.NewChooseScenarioOptionHandler(store, locker, cat, bus, log, cmdCfg),
		GetSession:     query.NewGetSessionHandler(store),
		GetPlan:        query.NewGetPlanHandler(store),
		GetDashboard:   query.NewGetDashboardHandler(store, cat),
		Content:        query.NewContentHandler(store, cat),
		HealthChecker:  health,
		Logger:         log,
	}
	if cfg.Observability.MetricsEnabled {
		deps.Metrics = m
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Background jobs
	// ─────────────────────────────────────────────────────────────────────────

	if cfg.Scheduler.Enabled && sweeper != nil {
		schedCfg := scheduler.DefaultConfig()
		schedCfg.Logger = log
		schedCfg.Timezone = cfg.Location()
		sched := scheduler.New(schedCfg)
		if err := sched.Register(jobs.NewSweepSessionsJob(sweeper, m.SessionsSwept, log), cfg.Scheduler.SweepSpec); err != nil {
			return fmt.Errorf("register sweep job: %w", err)
		}
		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		defer func() { _ = sched.Stop() }()
	}

	// ─────────────────────────────────────────────────────────────────────────
	// HTTP
	// ─────────────────────────────────────────────────────────────────────────

	srv := httpapi.NewServer(httpConfig(cfg), deps)
	errCh := srv.StartAsync()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	start := time.Now()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped", logger.Duration("took", time.Since(start)))
	return nil
}
