package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("OUTBOX_POLL_INTERVAL", "")
		t.Setenv("KAFKA_BROKER", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "3000", cfg.App.Port)
		assert.Equal(t, 3*time.Second, cfg.Jobs.OutboxPollInterval)
		assert.Error(t, cfg.RequireKafka())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PORT", "8081")
		t.Setenv("APP_ENV", "production")
		t.Setenv("RATE_LIMIT_RPS", "2.5")
		t.Setenv("TIMESHEET_GENERATOR_INTERVAL", "30m")
		t.Setenv("KAFKA_BROKER", "kafka:9092")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8081", cfg.App.Port)
		assert.True(t, cfg.App.IsProduction())
		assert.Equal(t, 2.5, cfg.RateLimit.RPS)
		assert.Equal(t, 30*time.Minute, cfg.Jobs.TimesheetGeneratorInterval)
		assert.NoError(t, cfg.RequireKafka())
	})

	t.Run("invalid burst", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_BURST", "many")

		_, err := Load()
		assert.ErrorContains(t, err, "RATE_LIMIT_BURST")
	})
}
