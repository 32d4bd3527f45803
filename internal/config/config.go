// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
)

// HeartbeatOff disables the scheduled heartbeat refresh.
const HeartbeatOff = "off"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Port       int
	ListenHost string
	CORSOrigin string

	DatabaseURL string
	DBPath      string

	RenderAPIKey    string
	RenderServiceID string
	RenderAPIURL    string

	HeartbeatSchedule string
	RedisAddr         string

	AuthRequired    bool
	MountDummyTable bool
	LogLevel        slog.Level
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.ListenHost, strconv.Itoa(c.Port))
}

// HeartbeatEnabled reports whether the heartbeat scheduler should run.
func (c *Config) HeartbeatEnabled() bool {
	return c.HeartbeatSchedule != HeartbeatOff
}

// HasRenderCredentials returns true when both the Render API key and service
// id are set. Without them the service status routes answer with an error.
func (c *Config) HasRenderCredentials() bool {
	return c.RenderAPIKey != "" && c.RenderServiceID != ""
}

// Load reads configuration from environment variables and returns a validated Config.
// Optional variables with defaults: PORT (3000), LISTEN_HOST (all interfaces),
// CORS_ORIGIN (http://localhost:5173), DB_PATH (data-backend.db, used when
// DATABASE_URL is empty), RENDER_API_URL (https://api.render.com/v1),
// HEARTBEAT_SCHEDULE (0 0 * * *, or "off"), AUTH_REQUIRED (false),
// MOUNT_DUMMY_TABLE (false), LOG_LEVEL (info).
func Load() (*Config, error) {
	port := 3000
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 65535 {
			return nil, fmt.Errorf("PORT has invalid value %q", v)
		}
		port = parsed
	}

	corsOrigin := "http://localhost:5173"
	if v, ok := os.LookupEnv("CORS_ORIGIN"); ok && v != "" {
		corsOrigin = v
	}

	dbPath := "data-backend.db"
	if v, ok := os.LookupEnv("DB_PATH"); ok && v != "" {
		dbPath = v
	}

	renderAPIURL := "https://api.render.com/v1"
	if v, ok := os.LookupEnv("RENDER_API_URL"); ok && v != "" {
		renderAPIURL = strings.TrimRight(v, "/")
	}

	schedule := "0 0 * * *"
	if v, ok := os.LookupEnv("HEARTBEAT_SCHEDULE"); ok && v != "" {
		schedule = strings.TrimSpace(v)
	}
	if !strings.EqualFold(schedule, HeartbeatOff) {
		if _, err := cron.ParseStandard(schedule); err != nil {
			return nil, fmt.Errorf("HEARTBEAT_SCHEDULE has invalid cron expression %q: %w", schedule, err)
		}
	} else {
		schedule = HeartbeatOff
	}

	authRequired, err := boolEnv("AUTH_REQUIRED")
	if err != nil {
		return nil, err
	}

	mountDummy, err := boolEnv("MOUNT_DUMMY_TABLE")
	if err != nil {
		return nil, err
	}

	logLevel := slog.LevelInfo
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		if err := logLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("LOG_LEVEL has invalid value %q: %w", v, err)
		}
	}

	return &Config{
		Port:              port,
		ListenHost:        os.Getenv("LISTEN_HOST"),
		CORSOrigin:        corsOrigin,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBPath:            dbPath,
		RenderAPIKey:      os.Getenv("RENDER_API_KEY"),
		RenderServiceID:   os.Getenv("RENDER_SERVICE_ID"),
		RenderAPIURL:      renderAPIURL,
		HeartbeatSchedule: schedule,
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		AuthRequired:      authRequired,
		MountDummyTable:   mountDummy,
		LogLevel:          logLevel,
	}, nil
}

// boolEnv parses an optional boolean variable, defaulting to false.
func boolEnv(key string) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s has invalid boolean %q: %w", key, v, err)
	}
	return b, nil
}
