package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port      string
	Env       string
	JWTSecret string
	JWTExpiry time.Duration

	// InitialBalance is credited to every new wallet, in kobo.
	InitialBalance int64

	PaginationDefaultLimit int
	PaginationMaxLimit     int

	// Requests per minute, per client.
	MutatingRatePerMin int
	ReadRatePerMin     int
}

func Load() *Config {
	return &Config{
		Port:                   envOr("PORT", "8080"),
		Env:                    envOr("ENVIRONMENT", "development"),
		JWTSecret:              envOr("JWT_SECRET", "default-secret-change-me"),
		JWTExpiry:              envDuration("JWT_EXPIRES_IN", 24*time.Hour),
		InitialBalance:         envInt64("INITIAL_BALANCE", 1_000_000), // 10,000 NGN
		PaginationDefaultLimit: envInt("PAGINATION_DEFAULT_LIMIT", 20),
		PaginationMaxLimit:     envInt("PAGINATION_MAX_LIMIT", 100),
		MutatingRatePerMin:     envInt("RATE_LIMIT_MUTATING_MAX", 30),
		ReadRatePerMin:         envInt("RATE_LIMIT_READ_MAX", 100),
	}
}

// IsTest reports whether the service runs under the test environment,
// which disables rate limiting.
func (c *Config) IsTest() bool {
	return c.Env == "test"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
