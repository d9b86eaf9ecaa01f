package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Ate-lier/microservice-questions/pkg/db"
)

type Config struct {
	HTTPPort          string
	MetricsPort       string
	LogLevel          string
	RequestsPerMinute int
	DB                db.Config
}

// Load reads configuration from the environment, after loading a .env file
// when one is present. Missing variables fall back to development defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort:          getEnv("HTTP_PORT", "3000"),
		MetricsPort:       getEnv("METRICS_PORT", "9090"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		RequestsPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		DB: db.Config{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 3306),
			User:            getEnv("DB_USER", "qna_user"),
			Password:        getEnv("DB_PASSWORD", "qna_password"),
			Database:        getEnv("DB_DATABASE", "qna_db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
