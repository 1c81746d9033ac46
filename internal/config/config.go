package config

import (
	"os"
	"strconv"
)

// Config holds all runtime settings, read from environment variables
// (optionally loaded from a .env file by the entry point).
type Config struct {
	// Database
	DBType      string // "sqlite" (default) or "postgres"
	DatabaseURL string // postgres only
	DataDir     string // sqlite data directory

	// HTTP API
	ServerPort string

	// Review defaults
	DefaultSessionLimit int

	// Reminders
	TelegramBotToken      string
	TelegramChatID        int64
	NotificationStartHour int
	NotificationEndHour   int
}

// Load builds the configuration from the environment, applying defaults.
func Load() *Config {
	return &Config{
		DBType:                getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		DataDir:               getEnv("DATA_DIR", "data"),
		ServerPort:            getEnv("SERVER_PORT", "8080"),
		DefaultSessionLimit:   getEnvInt("DEFAULT_SESSION_LIMIT", 20),
		TelegramBotToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:        int64(getEnvInt("TELEGRAM_CHAT_ID", 0)),
		NotificationStartHour: getEnvInt("NOTIFICATION_START_HOUR", 8),
		NotificationEndHour:   getEnvInt("NOTIFICATION_END_HOUR", 22),
	}
}

// RemindersEnabled reports whether a Telegram reminder channel is configured.
func (c *Config) RemindersEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
