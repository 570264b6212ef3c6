package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	// ServiceSecret authenticates callers of the processing trigger. It is
	// accepted either verbatim in the api-key header or as the signing secret
	// of a bearer token with a service_role claim. Empty disables the check (dev).
	ServiceSecret string

	// Env is "dev" (default) or "prod". When "prod", SERVICE_SECRET must be set.
	Env string

	// WorkerPoolSize bounds how many schedules are processed concurrently (default 4).
	WorkerPoolSize int

	// WriteRatePerSec paces writes against the store across all workers
	// (default 50). Zero or negative disables pacing.
	WriteRatePerSec int

	// RunTimeoutSeconds is the per-run deadline (default 300). Schedules not
	// reached before the deadline are reported as errors in the run summary.
	RunTimeoutSeconds int

	// CronSpec is when the standalone runner triggers a pass (default daily at 06:00).
	CronSpec string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string
}

func Load() Config {
	// Optional .env for local development; real deployments set the environment.
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "dogoods"),
		DBUser: getEnv("DB_USER", "dogoods"),
		DBPass: getEnv("DB_PASS", "dogoods"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		ServiceSecret: getEnv("SERVICE_SECRET", ""),
		Env:           getEnv("ENV", "dev"),

		WorkerPoolSize:    getEnvInt("WORKER_POOL_SIZE", 4),
		WriteRatePerSec:   getEnvInt("WRITE_RATE_PER_SEC", 50),
		RunTimeoutSeconds: getEnvInt("RUN_TIMEOUT_SECONDS", 300),

		CronSpec: getEnv("CRON_SPEC", "0 6 * * *"),

		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// DatabaseURL returns the postgres URL form of the DB settings, as used by migrations.
func (c Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
