package app

import (
	"os"
	"strconv"
	"time"

	"github.com/teamhq/userauth/pkg/cryptox"
	"github.com/teamhq/userauth/pkg/jwtx"
)

type Config struct {
	SigningSecret string // Required: shared secret for HS256 token signing
	Issuer        string // Optional: issuer claim for tokens (default: userauth)

	AccessTTL  time.Duration // Optional: access token lifetime (default: 1h)
	BcryptCost int           // Optional: bcrypt work factor (default: 12)

	DatabaseFile string // Optional: path to SQLite database file (default: ./userauth.db)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	RequestTimeout      time.Duration // Per-request deadline (default: 10s)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		SigningSecret:       os.Getenv("AUTH_SIGNING_SECRET"),
		Issuer:              getEnvOrDefault("AUTH_ISSUER", "userauth"),
		AccessTTL:           getEnvDurationOrDefault("AUTH_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		BcryptCost:          getEnvIntOrDefault("AUTH_BCRYPT_COST", cryptox.DefaultCost),
		DatabaseFile:        getEnvOrDefault("AUTH_DATABASE_FILE", "userauth.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		RequestTimeout:      getEnvDurationOrDefault("REQUEST_TIMEOUT", 10*time.Second),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
