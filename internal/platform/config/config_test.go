package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"CONFIG_FILE", "SERVICE_NAME", "HTTP_PORT", "POSTGRES_DSN", "KAFKA_BROKERS",
		"SNOWFLAKE_SITE_ID", "SNOWFLAKE_WORKER_ID", "OUTBOX_POLL_INTERVAL",
		"OUTBOX_BATCH_SIZE", "TRACING_ENABLED", "AUTO_MIGRATE",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "arcana", cfg.ServiceName)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 2*time.Second, cfg.OutboxPollInterval)
	assert.Equal(t, 0, cfg.SnowflakeSiteID)
	assert.False(t, cfg.TracingEnabled)
	assert.False(t, cfg.AutoMigrate)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVICE_NAME", "catalog")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("SNOWFLAKE_SITE_ID", "3")
	t.Setenv("SNOWFLAKE_WORKER_ID", "17")
	t.Setenv("OUTBOX_POLL_INTERVAL", "500ms")
	t.Setenv("TRACING_ENABLED", "yes")
	t.Setenv("AUTO_MIGRATE", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "catalog", cfg.ServiceName)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 3, cfg.SnowflakeSiteID)
	assert.Equal(t, 17, cfg.SnowflakeWorkerID)
	assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
	assert.True(t, cfg.TracingEnabled)
	assert.True(t, cfg.AutoMigrate)
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "arcana.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
service_name: from-file
http_port: "7000"
postgres_dsn: postgres://file
snowflake_site_id: 4
snowflake_worker_id: 5
outbox_poll_interval: 10s
tracing_enabled: true
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_PORT", "7001")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.ServiceName)
	assert.Equal(t, "7001", cfg.HTTPPort)
	assert.Equal(t, "postgres://file", cfg.PostgresDSN)
	assert.Equal(t, 4, cfg.SnowflakeSiteID)
	assert.Equal(t, 5, cfg.SnowflakeWorkerID)
	assert.Equal(t, 10*time.Second, cfg.OutboxPollInterval)
	assert.True(t, cfg.TracingEnabled)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SNOWFLAKE_SITE_ID", "three")
	_, err := Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("OUTBOX_POLL_INTERVAL", "soon")
	_, err = Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	assert.Error(t, err)
}
