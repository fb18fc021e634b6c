package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/smartstart/smartstart-money/config"
	"github.com/smartstart/smartstart-money/internal/domain/catalog"
	"github.com/smartstart/smartstart-money/internal/domain/shared"
	catalogsrc "github.com/smartstart/smartstart-money/internal/infrastructure/catalog"
	"github.com/smartstart/smartstart-money/internal/infrastructure/messaging"
	"github.com/smartstart/smartstart-money/internal/infrastructure/metrics"
	"github.com/smartstart/smartstart-money/internal/infrastructure/persistence/postgres"
	redisstore "github.com/smartstart/smartstart-money/internal/infrastructure/persistence/redis"
	httpapi "github.com/smartstart/smartstart-money/internal/interface/http"
	"github.com/smartstart/smartstart-money/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIG MAPPING
// ══════════════════════════════════════════════════════════════════════════════

func redisConfig(c config.RedisConfig) redisstore.Config {
	rc := redisstore.DefaultConfig()
	rc.Host = c.Host
	rc.Port = c.Port
	rc.Password = c.Password
	rc.DB = c.DB
	rc.PoolSize = c.PoolSize
	rc.MinIdleConns = c.MinIdleConns
	rc.DialTimeout = c.DialTimeout
	rc.ReadTimeout = c.ReadTimeout
	rc.WriteTimeout = c.WriteTimeout
	rc.ConnectAttempts = c.ConnectAttempts
	return rc
}

func postgresConfig(c config.DatabaseConfig) postgres.Config {
	pc := postgres.DefaultConfig()
	pc.URL = c.URL
	pc.Host = c.Host
	pc.Port = c.Port
	pc.Database = c.Name
	pc.User = c.User
	pc.Password = c.Password
	pc.SSLMode = c.SSLMode
	pc.MaxConns = c.MaxConns
	pc.MinConns = c.MinConns
	pc.ConnectTimeout = c.ConnectTimeout
	pc.ConnectAttempts = c.ConnectAttempts
	return pc
}

func httpConfig(cfg *config.Config) httpapi.Config {
	hc := httpapi.DefaultConfig()
	hc.Host = cfg.HTTP.Host
	hc.Port = cfg.HTTP.Port
	hc.ReadTimeout = cfg.HTTP.ReadTimeout
	hc.WriteTimeout = cfg.HTTP.WriteTimeout
	hc.IdleTimeout = cfg.HTTP.IdleTimeout
	hc.MaxBodyBytes = cfg.HTTP.MaxBodyBytes
	hc.AllowedOrigins = cfg.HTTP.CORSOrigins
	hc.EnableCORS = len(cfg.HTTP.CORSOrigins) > 0
	hc.EnableMetrics = cfg.Observability.MetricsEnabled
	hc.MetricsPath = cfg.Observability.MetricsPath
	hc.RateLimitPerMinute = cfg.HTTP.RateLimitPerMinute
	hc.RateLimitBurst = cfg.HTTP.RateLimitBurst
	hc.TrustedProxies = cfg.HTTP.TrustedProxies
	hc.Version = cfg.App.Version
	return hc
}

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG
// ══════════════════════════════════════════════════════════════════════════════

// loadedCatalog is the catalog plus the postgres connection it came from, if
// any. The connection stays open for readiness checks.
type loadedCatalog struct {
	catalog *catalog.Catalog
	conn    *postgres.Connection
}

func (l loadedCatalog) Close() {
	if l.conn != nil {
		l.conn.Close()
	}
}

func loadCatalog(ctx context.Context, cfg *config.Config, log *logger.Logger) (loadedCatalog, error) {
	var (
		src  catalog.Source
		conn *postgres.Connection
	)

	switch cfg.Catalog.Source {
	case config.CatalogFile:
		src = catalogsrc.NewFileSource(cfg.Catalog.File)
	case config.CatalogPostgres:
		var err error
		conn, err = postgres.NewConnection(ctx, postgresConfig(cfg.Database), log)
		if err != nil {
			return loadedCatalog{}, fmt.Errorf("connect catalog database: %w", err)
		}
		src = postgres.NewCatalogRepository(conn)
	default:
		src = catalogsrc.NewEmbeddedSource()
	}

	cat, err := src.Load(ctx)
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return loadedCatalog{}, fmt.Errorf("load %s catalog: %w", cfg.Catalog.Source, err)
	}

	log.Info("catalog loaded",
		logger.String("source", cfg.Catalog.Source),
		logger.Int("modules", len(cat.Modules())),
		logger.Int("scenarios", len(cat.Scenarios())),
	)
	return loadedCatalog{catalog: cat, conn: conn}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// EVENT BUS
// ══════════════════════════════════════════════════════════════════════════════

func newEventBus(cfg *config.Config, rdb *goredis.Client, m *metrics.Metrics, log *logger.Logger) (shared.EventBus, error) {
	local := messaging.InMemoryEventBusConfig{
		AsyncMode:      cfg.EventBus.Async,
		WorkerPoolSize: cfg.EventBus.Workers,
		Logger:         log,
		Observer:       m,
	}

	if cfg.EventBus.Driver != config.StoreRedis {
		return messaging.NewInMemoryEventBus(local), nil
	}

	bus, err := messaging.NewRedisEventBus(messaging.RedisEventBusConfig{
		Client:         redisstore.NewPubSub(rdb),
		ChannelName:    cfg.EventBus.Channel,
		LocalBusConfig: local,
		Logger:         log,
	})
	if err != nil {
		return nil, fmt.Errorf("redis event bus: %w", err)
	}
	return bus, nil
}
