package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", c.Environment)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 90, c.Pipeline.LookbackDays)
	assert.Equal(t, 7, c.Pipeline.HorizonDays)
	assert.Equal(t, 0.02, c.Pipeline.RiskFreeRate)
	assert.Equal(t, []float64{1000, 5000, 10000, 25000}, c.Pipeline.InvestmentAmounts)
	assert.Equal(t, "random", c.Pipeline.SeedMode)
	assert.Equal(t, "synthetic", c.Source.Type)
	assert.Equal(t, "memory", c.Cache.Type)
	assert.Equal(t, 10*time.Minute, c.Cache.TTL)
	assert.Equal(t, -1, c.Kafka.RequiredAcks)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9090
pipeline:
  lookback_days: 30
  horizon_days: 14
source:
  type: clickhouse
cache:
  ttl: 1m
warmer:
  enabled: true
  cron: "*/5 * * * *"
  symbols: [AAPL, MSFT]
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", c.Environment)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 30, c.Pipeline.LookbackDays)
	assert.Equal(t, 14, c.Pipeline.HorizonDays)
	assert.Equal(t, 0.02, c.Pipeline.RiskFreeRate)
	assert.Equal(t, "clickhouse", c.Source.Type)
	assert.Equal(t, time.Minute, c.Cache.TTL)
	assert.Equal(t, []string{"AAPL", "MSFT"}, c.Warmer.Symbols)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad source":       "source:\n  type: csv\n",
		"bad seed mode":    "pipeline:\n  seed_mode: hourly\n",
		"zero horizon":     "pipeline:\n  horizon_days: 0\n",
		"kafka no brokers": "kafka:\n  enabled: true\n",
		"warmer no list":   "warmer:\n  enabled: true\n",
		"bad yaml":         "server: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	env := map[string]string{
		"PRICECAST_ENV":  "staging",
		"PRICECAST_PORT": "7070",
		"LOG_LEVEL":      "DEBUG",
		"SOURCE_TYPE":    "clickhouse",
		"KAFKA_BROKERS":  "k1:9092, k2:9092",
		"REDIS_ADDR":     "redis:6379",
		"WARMER_SYMBOLS": "AAPL,,TSLA",
	}
	require.NoError(t, c.applyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, "staging", c.Environment)
	assert.Equal(t, 7070, c.Server.Port)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "clickhouse", c.Source.Type)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
	assert.True(t, c.Kafka.Enabled)
	assert.Equal(t, "redis", c.Cache.Type)
	assert.Equal(t, "redis:6379", c.Cache.Redis.Addr)
	assert.Equal(t, []string{"AAPL", "TSLA"}, c.Warmer.Symbols)
	require.NoError(t, c.Validate())
}

func TestApplyEnv_BadPort(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	err = c.applyEnv(func(k string) string {
		if k == "PRICECAST_PORT" {
			return "http"
		}
		return ""
	})
	require.Error(t, err)
}
