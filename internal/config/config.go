// Package config centralises configuration parsing for the roster service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration values for the roster service.
type Config struct {
	HTTPAddress       string
	SeedFile          string // YAML catalog; empty selects the built-in catalog.
	CORSAllowedOrigin string
	KafkaBrokers      []string // Empty disables roster event publishing.
	RosterEventsTopic string
	ConsumerGroupID   string
	MetricsAddress    string // Listen address of the audit consumer's metrics endpoint.
	OutboxBufferSize  int
	OutboxBatchSize   int
	OutboxFlushEvery  time.Duration
	LogLevel          string
	LogFormat         string // "json" or "console".
	ShutdownTimeout   time.Duration
}

// Load reads an optional .env file and the environment into Config, applying
// defaults for local dev.
func Load() Config {
	// The .env file is optional; variables may come from the environment alone.
	_ = godotenv.Load()

	return Config{
		HTTPAddress:       getEnv("HTTP_ADDRESS", ":8000"),
		SeedFile:          getEnv("SEED_FILE", ""),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:5173"),
		KafkaBrokers:      splitAndTrim(getEnv("KAFKA_BROKERS", "")),
		RosterEventsTopic: getEnv("ROSTER_EVENTS_TOPIC", "roster_events"),
		ConsumerGroupID:   getEnv("CONSUMER_GROUP_ID", "roster-audit"),
		MetricsAddress:    getEnv("METRICS_ADDRESS", ":9102"),
		OutboxBufferSize:  getIntEnv("OUTBOX_BUFFER_SIZE", 256),
		OutboxBatchSize:   getIntEnv("OUTBOX_BATCH_SIZE", 25),
		OutboxFlushEvery:  getDurationEnv("OUTBOX_FLUSH_INTERVAL", time.Second),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		ShutdownTimeout:   getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

// EventsEnabled reports whether roster events should be published.
func (c Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
