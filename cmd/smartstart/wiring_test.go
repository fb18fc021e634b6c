package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartstart/smartstart-money/config"
	"github.com/smartstart/smartstart-money/pkg/logger"
)

func TestConfigMapping(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"HTTP_PORT":                  "9090",
		"HTTP_CORS_ORIGINS":          "https://a.example,https://b.example",
		"HTTP_RATE_LIMIT_PER_MINUTE": "0",
		"HTTP_TRUSTED_PROXIES":       "10.0.0.0/8",
		"REDIS_HOST":                 "cache",
		"REDIS_CONNECT_ATTEMPTS":     "2",
		"DB_URL":                     "postgres://u:p@db:5432/smartstart",
		"DB_MAX_CONNS":               "7",
		"METRICS_PATH":               "/internal/metrics",
	})
	require.NoError(t, err)

	hc := httpConfig(cfg)
	assert.Equal(t, 9090, hc.Port)
	assert.True(t, hc.EnableCORS)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, hc.AllowedOrigins)
	assert.Zero(t, hc.RateLimitPerMinute)
	assert.Equal(t, []string{"10.0.0.0/8"}, hc.TrustedProxies)
	assert.Equal(t, "/internal/metrics", hc.MetricsPath)
	assert.Equal(t, int64(65536), hc.MaxBodyBytes)

	rc := redisConfig(cfg.Redis)
	assert.Equal(t, "cache", rc.Host)
	assert.Equal(t, 6379, rc.Port)
	assert.Equal(t, 2, rc.ConnectAttempts)

	pc := postgresConfig(cfg.Database)
	assert.Equal(t, "postgres://u:p@db:5432/smartstart", pc.URL)
	assert.Equal(t, int32(7), pc.MaxConns)
	assert.Equal(t, 10*time.Second, pc.ConnectTimeout)
}

func TestLoadCatalog_Embedded(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)

	loaded, err := loadCatalog(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer loaded.Close()

	assert.Nil(t, loaded.conn)
	assert.NotEmpty(t, loaded.catalog.Modules())
	assert.NotEmpty(t, loaded.catalog.Scenarios())
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"CATALOG_SOURCE": "file",
		"CATALOG_FILE":   t.TempDir() + "/missing.yaml",
	})
	require.NoError(t, err)

	_, err = loadCatalog(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "smartstart dev (commit none)\n", out.String())
}
