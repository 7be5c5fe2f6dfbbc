package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go-payroll/internal/shared/connection"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  connection.DBConfig
	RedisAddr string
	Kafka     KafkaConfig
	JWTSecret string
	RateLimit RateLimitConfig
	Jobs      JobsConfig
}

type AppConfig struct {
	Port string
	Env  string
}

func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

type KafkaConfig struct {
	Broker string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// JobsConfig holds the tick intervals of the background loops run by cmd/worker.
type JobsConfig struct {
	OutboxPollInterval         time.Duration
	TimesheetGeneratorInterval time.Duration
}

// Load reads configuration from the environment. A .env file is optional.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: connection.DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "go_payroll"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		Kafka:     KafkaConfig{Broker: getEnv("KAFKA_BROKER", "")},
		JWTSecret: getEnv("JWT_SECRET", ""),
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}
	cfg.RateLimit = RateLimitConfig{RPS: rps, Burst: burst}

	outboxPoll, err := time.ParseDuration(getEnv("OUTBOX_POLL_INTERVAL", "3s"))
	if err != nil {
		return nil, fmt.Errorf("invalid OUTBOX_POLL_INTERVAL: %w", err)
	}
	generatorTick, err := time.ParseDuration(getEnv("TIMESHEET_GENERATOR_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMESHEET_GENERATOR_INTERVAL: %w", err)
	}
	cfg.Jobs = JobsConfig{
		OutboxPollInterval:         outboxPoll,
		TimesheetGeneratorInterval: generatorTick,
	}

	return cfg, nil
}

// RequireKafka fails fast for processes that cannot run without a broker.
func (c *Config) RequireKafka() error {
	if c.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}
