package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/digits/internal/digits/service"
)

const (
	SessionBackendSQLite = "sqlite"
	SessionBackendRedis  = "redis"
)

type Config struct {
	DatabaseFile   string // Optional: path to SQLite database file (default: ./digits.db)
	PepperFile     string // Optional: path to the password pepper, generated when missing (default: ./pepper)
	SigningKeyFile string // Optional: path to the commit token HMAC key, generated when missing (default: ./signing.key)

	SessionBackend string        // Optional: where sessions live (sqlite, redis) (default: sqlite)
	RedisAddr      string        // Optional: redis address when SessionBackend is redis (default: localhost:6379)
	RedisPassword  string        // Optional
	RedisDB        int           // Optional (default: 0)
	SessionTTL     time.Duration // Optional: session lifetime (default: 336h)
	CookieSecure   bool          // Optional: Secure flag on cookies (default: false in dev, true otherwise)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		DatabaseFile:        getEnvOrDefault("DIGITS_DATABASE_FILE", "digits.db"),
		PepperFile:          getEnvOrDefault("DIGITS_PEPPER_FILE", "pepper"),
		SigningKeyFile:      getEnvOrDefault("DIGITS_SIGNING_KEY_FILE", "signing.key"),
		SessionBackend:      getEnvOrDefault("DIGITS_SESSION_BACKEND", SessionBackendSQLite),
		RedisAddr:           getEnvOrDefault("DIGITS_REDIS_ADDR", "localhost:6379"),
		RedisPassword:       os.Getenv("DIGITS_REDIS_PASSWORD"),
		RedisDB:             getEnvIntOrDefault("DIGITS_REDIS_DB", 0),
		SessionTTL:          getEnvDurationOrDefault("DIGITS_SESSION_TTL", service.DefaultSessionTTL),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	cfg.CookieSecure = getEnvBoolOrDefault("DIGITS_COOKIE_SECURE", cfg.Env != "dev")

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// "1h", "30m", "90s"
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
