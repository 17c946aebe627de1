// Package config builds runtime configuration from the environment so main
// stays lean. Values are read once at startup; the resulting structs are
// passed by value and never mutated afterwards.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full application configuration.
type Config struct {
	Server   Server
	Database Database
	Redis    Redis
	Kafka    Kafka
	Notify   Notify
	Image    Image
	Pipeline Pipeline
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Database holds the postgres connection settings. An empty URL selects the
// in-memory result store.
type Database struct {
	URL string
}

// Redis holds the cache connection settings. An empty URL disables caching.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// Kafka holds the audit sink settings. No brokers means no sink.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Notify holds the webhook endpoints for verification outcomes.
type Notify struct {
	FraudURL   string
	SuccessURL string
	Timeout    time.Duration
}

// Image holds the upload validation limits.
type Image struct {
	MaxFileSize    int64
	AllowedFormats []string
	MinResolution  string
}

// Pipeline bounds the external calls made while processing one verification.
type Pipeline struct {
	AssessTimeout time.Duration
	NotifyTimeout time.Duration
	FraudSeed     int64
}

// FromEnv builds the full config from environment variables.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            envString("QUOD_ADDR", ":8080"),
			ShutdownTimeout: envDuration("QUOD_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: Database{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			CacheTTL:     envDuration("REDIS_CACHE_TTL", time.Minute),
		},
		Kafka: Kafka{
			Brokers: envList("KAFKA_BROKERS"),
			Topic:   envString("KAFKA_AUDIT_TOPIC", "quod.verification.audit"),
		},
		Notify: Notify{
			FraudURL:   envString("NOTIFY_FRAUD_URL", "http://localhost:8081/api/notifications/fraud"),
			SuccessURL: envString("NOTIFY_SUCCESS_URL", "http://localhost:8081/api/notifications/success"),
			Timeout:    envDuration("NOTIFY_TIMEOUT", 5*time.Second),
		},
		Image: Image{
			MaxFileSize:    envInt64("IMAGE_MAX_FILE_SIZE", 5*1024*1024),
			AllowedFormats: envListDefault("IMAGE_ALLOWED_FORMATS", []string{"image/jpeg", "image/png"}),
			MinResolution:  envString("IMAGE_MIN_RESOLUTION", "640x480"),
		},
		Pipeline: Pipeline{
			AssessTimeout: envDuration("ASSESS_TIMEOUT", 5*time.Second),
			NotifyTimeout: envDuration("NOTIFY_PIPELINE_TIMEOUT", 5*time.Second),
			FraudSeed:     envInt64("FRAUD_SEED", time.Now().UnixNano()),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func envListDefault(key string, fallback []string) []string {
	if list := envList(key); list != nil {
		return list
	}
	return fallback
}
