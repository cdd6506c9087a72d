package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "roomify", cfg.App.Name)
	assert.Equal(t, "none", cfg.Events.Driver)
	assert.Equal(t, "roomify.bookings", cfg.Events.Topic)
	assert.Equal(t, "roomify:bookings", cfg.Events.Channel)
	assert.Equal(t, "localhost", cfg.Cache.Redis.Primary.Host)
	assert.Equal(t, "6379", cfg.Cache.Redis.Primary.Port)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = "9000"
	cfg.Events.Driver = "kafka"

	applyDefaults(cfg)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "kafka", cfg.Events.Driver)
}

func TestGet(t *testing.T) {
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("BOOKING_MAX_DURATION_HOURS", "12")

	cfg := Get()

	assert.NotNil(t, cfg)
	assert.Same(t, cfg, Get())
}
