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

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "data/cases.csv", cfg.CasesSource)
	assert.Equal(t, "data/metrics.csv", cfg.MetricsSource)
	assert.Equal(t, "data/headline.csv", cfg.HeadlineSource)
	assert.Equal(t, "data/boundaries.geojson", cfg.BoundariesSource)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 30*time.Second, cfg.LoadTimeout)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "caseboard-refresh", cfg.KafkaTopic)
	assert.False(t, cfg.NotifierEnabled)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://dash.example.org, https://staging.example.org")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("CASES_SOURCE", "https://files.example.org/cases.csv")
	t.Setenv("METRICS_SOURCE", "/srv/data/metrics.csv")
	t.Setenv("HEADLINE_SOURCE", "/srv/data/headline.csv")
	t.Setenv("BOUNDARIES_SOURCE", "https://files.example.org/boundaries.geojson")
	t.Setenv("REFRESH_INTERVAL", "1m")
	t.Setenv("LOAD_TIMEOUT", "5s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "custom-refresh")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, []string{"https://dash.example.org", "https://staging.example.org"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://files.example.org/cases.csv", cfg.CasesSource)
	assert.Equal(t, time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 5*time.Second, cfg.LoadTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-refresh", cfg.KafkaTopic)
	assert.True(t, cfg.NotifierEnabled)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_RefreshDisabled(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.RefreshInterval)
}

func TestLoad_InvalidRefreshInterval(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "soon")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}

func TestLoad_InvalidLoadTimeout(t *testing.T) {
	t.Setenv("LOAD_TIMEOUT", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOAD_TIMEOUT")
}

func TestLoad_NotifierEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_NOTIFY_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_NotifierExplicitlyDisabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092")
	t.Setenv("KAFKA_NOTIFY_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.NotifierEnabled)
}
