package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// InitRedis connects to Redis at addr. A nil client is returned when addr is empty or
// the server is unreachable; callers treat nil as "no cache" and keep working.
func InitRedis(addr string) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("Redis unreachable, continuing without cache")
		return nil
	}

	logrus.Info("Redis connected successfully")
	return client
}

// Close shuts the client down if one was created.
func Close(client *redis.Client) {
	if client != nil {
		if err := client.Close(); err != nil {
			logrus.WithError(err).Error("Error closing Redis")
		}
	}
}
