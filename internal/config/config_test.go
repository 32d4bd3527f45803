package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every env var that Load() reads.
var allConfigKeys = []string{
	"PORT",
	"LISTEN_HOST",
	"CORS_ORIGIN",
	"DATABASE_URL",
	"DB_PATH",
	"RENDER_API_KEY",
	"RENDER_SERVICE_ID",
	"RENDER_API_URL",
	"HEARTBEAT_SCHEDULE",
	"REDIS_ADDR",
	"AUTH_REQUIRED",
	"MOUNT_DUMMY_TABLE",
	"LOG_LEVEL",
}

// isolateConfigEnv saves and unsets every config env var so tests don't
// inherit values from the host environment. t.Cleanup restores the originals.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("LISTEN_HOST", "127.0.0.1")
	t.Setenv("CORS_ORIGIN", "https://records.example.com")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/records")
	t.Setenv("RENDER_API_KEY", "rnd_key")
	t.Setenv("RENDER_SERVICE_ID", "srv-123")
	t.Setenv("RENDER_API_URL", "http://render.local/v1/")
	t.Setenv("HEARTBEAT_SCHEDULE", "*/5 * * * *")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("MOUNT_DUMMY_TABLE", "1")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8081", cfg.ListenAddr())
	assert.Equal(t, "https://records.example.com", cfg.CORSOrigin)
	assert.Equal(t, "postgres://u:p@db:5432/records", cfg.DatabaseURL)
	assert.True(t, cfg.HasRenderCredentials())
	assert.Equal(t, "http://render.local/v1", cfg.RenderAPIURL)
	assert.Equal(t, "*/5 * * * *", cfg.HeartbeatSchedule)
	assert.True(t, cfg.HeartbeatEnabled())
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.True(t, cfg.AuthRequired)
	assert.True(t, cfg.MountDummyTable)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":3000", cfg.ListenAddr())
	assert.Equal(t, "http://localhost:5173", cfg.CORSOrigin)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "data-backend.db", cfg.DBPath)
	assert.Equal(t, "https://api.render.com/v1", cfg.RenderAPIURL)
	assert.False(t, cfg.HasRenderCredentials())
	assert.Equal(t, "0 0 * * *", cfg.HeartbeatSchedule)
	assert.False(t, cfg.AuthRequired)
	assert.False(t, cfg.MountDummyTable)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_HeartbeatOff(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("HEARTBEAT_SCHEDULE", "OFF")

	cfg, err := Load()

	require.NoError(t, err)
	assert.False(t, cfg.HeartbeatEnabled())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PORT", "abc"},
		{"PORT", "70000"},
		{"HEARTBEAT_SCHEDULE", "daily"},
		{"AUTH_REQUIRED", "sometimes"},
		{"MOUNT_DUMMY_TABLE", "yes please"},
		{"LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			isolateConfigEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
