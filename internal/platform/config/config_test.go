package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Empty(t, cfg.Database.URL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "quod.verification.audit", cfg.Kafka.Topic)
	assert.Equal(t, int64(5*1024*1024), cfg.Image.MaxFileSize)
	assert.Equal(t, []string{"image/jpeg", "image/png"}, cfg.Image.AllowedFormats)
	assert.Equal(t, "640x480", cfg.Image.MinResolution)
	assert.Equal(t, 5*time.Second, cfg.Pipeline.AssessTimeout)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("QUOD_ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/quod")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")
	t.Setenv("IMAGE_MAX_FILE_SIZE", "1048576")
	t.Setenv("IMAGE_ALLOWED_FORMATS", "image/webp")
	t.Setenv("ASSESS_TIMEOUT", "2s")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "postgres://localhost/quod", cfg.Database.URL)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, int64(1048576), cfg.Image.MaxFileSize)
	assert.Equal(t, []string{"image/webp"}, cfg.Image.AllowedFormats)
	assert.Equal(t, 2*time.Second, cfg.Pipeline.AssessTimeout)
}

func TestFromEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("IMAGE_MAX_FILE_SIZE", "lots")
	t.Setenv("ASSESS_TIMEOUT", "soon")

	cfg := FromEnv()

	assert.Equal(t, int64(5*1024*1024), cfg.Image.MaxFileSize)
	assert.Equal(t, 5*time.Second, cfg.Pipeline.AssessTimeout)
}
