package main

import (
	"github.com/ecovibe/community/backend/internal/router"
	"github.com/ecovibe/community/backend/pkg/cache"
	"github.com/ecovibe/community/backend/pkg/config"
	"github.com/ecovibe/community/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Optional aggregate cache
	redisClient := cache.InitRedis(cfg.RedisAddr)
	defer cache.Close(redisClient)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	svc, err := router.SetupRoutes(e, db.Postgres, db.Mongo.Database(cfg.MongoDatabase), redisClient)
	if err != nil {
		logrus.Fatalf("Failed to set up routes: %v", err)
	}

	// Validator
	e.Validator = validators.NewValidator()

	// TTL sweeper for stories and notifications
	if err := svc.Sweeper.Start(cfg.SweepInterval); err != nil {
		logrus.Fatalf("Failed to start TTL sweeper: %v", err)
	}
	defer svc.Sweeper.Stop()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
