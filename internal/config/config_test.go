package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NOTIFY_WORKERS", "")
	t.Setenv("NOTIFY_QUEUE_SIZE", "")
	t.Setenv("SUSPENSION_DAYS", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("METRICS_ENABLED", "")

	cfg := Load()

	assert.Equal(t, 4, cfg.NotifyWorkers)
	assert.Equal(t, 100, cfg.NotifyQueueSize)
	assert.Equal(t, 30, cfg.SuspensionDays)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "@every 15m", cfg.CronSuspensionSpec)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NOTIFY_WORKERS", "2")
	t.Setenv("NOTIFY_QUEUE_SIZE", "not-a-number")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("METRICS_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, 2, cfg.NotifyWorkers)
	assert.Equal(t, 100, cfg.NotifyQueueSize, "invalid ints fall back to the default")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.MetricsEnabled)
}

func TestValidate(t *testing.T) {
	cfg := &Config{NotifyWorkers: 0}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "NOTIFY_WORKERS")

	cfg = &Config{JWTSecret: "s", DBPassword: "p", NotifyWorkers: 1}
	assert.NoError(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5433", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "require"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5433 sslmode=require TimeZone=UTC", cfg.DSN())
}
