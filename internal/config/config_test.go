package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("LISTEN_PORT", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ListenPort)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SESSION_TTL_HOURS", "zero")

	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("SESSION_TTL_HOURS", "-1")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigCustomTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SESSION_TTL_HOURS", "72")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 72*time.Hour, cfg.SessionTTL)
}
