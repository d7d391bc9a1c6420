package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendPocketBase = "pocketbase"
	BackendFile       = "file"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Store configuration
	StoreBackend string
	TicketsFile  string
	EventsFile   string

	// Redis configuration (rate limiting)
	RedisURL           string
	RateLimitPerMinute int
	RateLimitWindow    time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	EnableMetrics bool

	// Slot catalog offered by the forms
	Slots SlotCatalog
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8090"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Store
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendPocketBase)),
		TicketsFile:  getEnv("TICKETS_FILE", "tickets.json"),
		EventsFile:   getEnv("EVENTS_FILE", "events.json"),

		// Redis
		RedisURL:           getEnv("REDIS_URL", ""),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),
		RateLimitWindow:    getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		Slots: NewSlotCatalog(
			getEnvAsList("SLOT_DAYS", "25-05,27-05"),
			getEnvAsList("SLOT_HOURS", "Matin,Après-midi,Soir,18h"),
		),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key string, defaultValue string) []string {
	parts := strings.Split(getEnv(key, defaultValue), ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
