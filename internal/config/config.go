package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr           string
	CORSAllowedOrigins []string
	LogLevel           string
	LogFormat          string
	ShutdownTimeout    time.Duration

	// Dataset sources: local file paths or http(s) URLs.
	CasesSource      string
	MetricsSource    string
	HeadlineSource   string
	BoundariesSource string

	RefreshInterval time.Duration // 0 disables periodic refresh
	LoadTimeout     time.Duration

	// Kafka refresh notifications.
	KafkaBrokers    []string
	KafkaTopic      string
	NotifierEnabled bool
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	loadTimeout, err := parseDuration("LOAD_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	refreshInterval, err := parseRefreshInterval()
	if err != nil {
		return nil, err
	}

	brokers := splitList(os.Getenv("KAFKA_BROKERS"))
	notifierEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_NOTIFY_ENABLED"); v != "" {
		notifierEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		CORSAllowedOrigins: splitList(envOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,

		CasesSource:      envOrDefault("CASES_SOURCE", "data/cases.csv"),
		MetricsSource:    envOrDefault("METRICS_SOURCE", "data/metrics.csv"),
		HeadlineSource:   envOrDefault("HEADLINE_SOURCE", "data/headline.csv"),
		BoundariesSource: envOrDefault("BOUNDARIES_SOURCE", "data/boundaries.geojson"),

		RefreshInterval: refreshInterval,
		LoadTimeout:     loadTimeout,

		KafkaBrokers:    brokers,
		KafkaTopic:      envOrDefault("KAFKA_TOPIC", "caseboard-refresh"),
		NotifierEnabled: notifierEnabled,
	}

	if cfg.CasesSource == "" {
		return nil, errors.New("CASES_SOURCE is required")
	}
	if cfg.MetricsSource == "" {
		return nil, errors.New("METRICS_SOURCE is required")
	}
	if cfg.HeadlineSource == "" {
		return nil, errors.New("HEADLINE_SOURCE is required")
	}
	if cfg.BoundariesSource == "" {
		return nil, errors.New("BOUNDARIES_SOURCE is required")
	}
	if cfg.NotifierEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_NOTIFY_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

// envOrDefault returns the environment value for key, or def when unset.
func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitList splits a comma-separated list, trimming whitespace and dropping
// empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseDuration reads a positive duration from the environment.
func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

// parseRefreshInterval reads REFRESH_INTERVAL; "0" disables the refresh loop.
func parseRefreshInterval() (time.Duration, error) {
	raw := envOrDefault("REFRESH_INTERVAL", "5m")
	if raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, errors.New("invalid REFRESH_INTERVAL")
	}
	return d, nil
}
