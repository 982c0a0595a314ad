package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port          string
	Env           string
	PostgresURL   string
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	SweepInterval time.Duration
}

// Load resolves the configuration from the environment. A .env file, when present, is
// folded into the environment first so every lookup below sees it.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, assuming environment variables are set")
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PostgresURL:   getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "community"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		SweepInterval: getDuration("SWEEP_INTERVAL", 5*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
