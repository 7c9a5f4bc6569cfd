package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment
// variables. It is built once at startup and never mutated afterwards;
// request-handling code receives it (or values derived from it) by injection.
type Config struct {
	ServerPort string
	Env        string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string
	JWTSecret  string
	TokenTTL   time.Duration
	CatAPIURL  string
	CatAPIKey  string
}

// Load builds Config from environment. A missing required variable is
// reported as an error so the process fails at startup instead of on the
// first request that needs it.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		Env:        getEnv("APP_ENV", "production"),
		MySQLDSN:   os.Getenv("MYSQL_DSN"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		TokenTTL:   getEnvDuration("TOKEN_TTL", time.Hour),
		CatAPIURL:  getEnv("CAT_API_URL", "https://api.thecatapi.com/v1"),
		CatAPIKey:  os.Getenv("CAT_API_KEY"),
	}

	var missing []string
	for _, required := range []struct {
		name  string
		value string
	}{
		{"MYSQL_DSN", cfg.MySQLDSN},
		{"JWT_SECRET", cfg.JWTSecret},
		{"CAT_API_KEY", cfg.CatAPIKey},
	} {
		if required.value == "" {
			missing = append(missing, required.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// Development reports whether the process runs in development mode, which
// enables stack traces in error responses.
func (c *Config) Development() bool {
	return c.Env == "development"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
