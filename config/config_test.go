package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.App.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, StoreMemory, cfg.Session.Store)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, CatalogEmbedded, cfg.Catalog.Source)
	assert.Equal(t, "smartstart", cfg.Database.Name)
	assert.Equal(t, "@every 5m", cfg.Scheduler.SweepSpec)
	assert.Equal(t, "/metrics", cfg.Observability.MetricsPath)
	assert.Empty(t, cfg.HTTP.TrustedProxies)
	assert.False(t, cfg.UsesRedis())
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"APP_ENV":           "production",
		"HTTP_PORT":         "9000",
		"HTTP_CORS_ORIGINS": "https://a.example,https://b.example",
		"SESSION_STORE":     "redis",
		"SESSION_TTL":       "30m",
		"REDIS_HOST":        "cache",
		"EVENT_BUS_DRIVER":  "redis",
		"CATALOG_SOURCE":    "file",
		"CATALOG_FILE":      "/etc/smartstart/catalog.yaml",
		"LOG_LEVEL":         "debug",
		"LOG_FORMAT":        "console",
	})
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "cache", cfg.Redis.Host)
	assert.True(t, cfg.UsesRedis())
	assert.Equal(t, "/etc/smartstart/catalog.yaml", cfg.Catalog.File)
}

func TestLoadFrom_ParseError(t *testing.T) {
	_, err := LoadFrom(map[string]string{"HTTP_PORT": "eighty"})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		want    []string
	}{
		{
			name:    "unknown store",
			environ: map[string]string{"SESSION_STORE": "disk"},
			want:    []string{"SESSION_STORE"},
		},
		{
			name:    "file catalog without path",
			environ: map[string]string{"CATALOG_SOURCE": "file"},
			want:    []string{"CATALOG_FILE"},
		},
		{
			name:    "bad cron spec",
			environ: map[string]string{"SCHEDULER_SWEEP_SPEC": "every now and then"},
			want:    []string{"SCHEDULER_SWEEP_SPEC"},
		},
		{
			name:    "six field cron spec",
			environ: map[string]string{"SCHEDULER_SWEEP_SPEC": "0 */5 * * * *"},
		},
		{
			name:    "trusted proxies",
			environ: map[string]string{"HTTP_TRUSTED_PROXIES": "10.0.0.0/8,192.168.1.7,::1"},
		},
		{
			name:    "bad trusted proxy",
			environ: map[string]string{"HTTP_TRUSTED_PROXIES": "10.0.0.0/8,gateway"},
			want:    []string{"HTTP_TRUSTED_PROXIES", "gateway"},
		},
		{
			name:    "disabled scheduler skips spec",
			environ: map[string]string{"SCHEDULER_ENABLED": "false", "SCHEDULER_SWEEP_SPEC": "nope"},
		},
		{
			name: "problems are aggregated",
			environ: map[string]string{
				"APP_ENV":            "qa",
				"HTTP_PORT":          "0",
				"SESSION_TOKEN_COST": "2",
				"EVENT_BUS_WORKERS":  "0",
				"LOG_FORMAT":         "xml",
			},
			want: []string{"APP_ENV", "HTTP_PORT", "SESSION_TOKEN_COST", "EVENT_BUS_WORKERS", "LOG_FORMAT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tt.environ)
			if len(tt.want) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}
