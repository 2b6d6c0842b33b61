package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment string
	LogLevel    slog.Level
	LogFile     string

	PlayerName         string
	RedisURL           string
	LeaderboardTimeout time.Duration

	RepeatMissionRewards bool
}

func Load() *Config {
	return &Config{
		Environment:          getEnv("ENVIRONMENT", "development"),
		LogLevel:             parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:              getEnv("LOG_FILE", ""),
		PlayerName:           getEnv("PLAYER_NAME", "eco-warrior"),
		RedisURL:             getEnv("REDIS_URL", ""),
		LeaderboardTimeout:   parseDuration(getEnv("LEADERBOARD_TIMEOUT", ""), 2*time.Second),
		RepeatMissionRewards: parseBool(getEnv("REPEAT_MISSION_REWARDS", ""), false),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return fallback
}

func parseBool(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return fallback
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
