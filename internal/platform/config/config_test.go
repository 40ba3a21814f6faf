package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.False(t, cfg.Postgres.Enabled())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "deal.registrations", cfg.Kafka.RegistrationTopic)
	assert.Equal(t, 8, cfg.Gate.BatchConcurrency)
	assert.Equal(t, time.Minute, cfg.Redis.DealCacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DEALS_ADDR", ":9090")
	t.Setenv("PG_DSN", "postgres://deals@localhost/deals")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("GATE_BATCH_CONCURRENCY", "2")
	t.Setenv("REDIS_DEAL_CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.True(t, cfg.Postgres.Enabled())
	assert.True(t, cfg.Redis.Enabled())
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2, cfg.Gate.BatchConcurrency)
	assert.Equal(t, 30*time.Second, cfg.Redis.DealCacheTTL)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("non-positive batch concurrency", func(t *testing.T) {
		t.Setenv("GATE_BATCH_CONCURRENCY", "0")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GATE_BATCH_CONCURRENCY")
	})

	t.Run("unparseable duration", func(t *testing.T) {
		t.Setenv("DEALS_REQUEST_TIMEOUT", "soon")
		_, err := Load()
		require.Error(t, err)
	})
}
