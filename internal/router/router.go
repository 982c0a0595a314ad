package router

import (
	"github.com/ecovibe/community/backend/internal/handlers"
	"github.com/ecovibe/community/backend/internal/middleware"
	"github.com/ecovibe/community/backend/internal/models"
	"github.com/ecovibe/community/backend/internal/repositories"
	"github.com/ecovibe/community/backend/internal/services"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// Services bundles the wired engagement core so the entrypoint can reach the parts
// with a lifecycle of their own (the sweeper).
type Services struct {
	Sweeper *services.Sweeper
}

// SetupRoutes configures all application routes and injects dependencies. cache may
// be nil when Redis is not configured.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mongoDB *mongo.Database, cache *redis.Client) (*Services, error) {
	// AutoMigrate the identity-store models
	if err := pgdb.AutoMigrate(&models.User{}, &models.VerifiedAction{}); err != nil {
		return nil, err
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	actionRepo := repositories.NewPostgresActionRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	storyRepo := repositories.NewMongoStoryRepository(mongoDB)
	notificationRepo := repositories.NewMongoNotificationRepository(mongoDB)

	// --- Services ---
	identityService := services.NewIdentityService(userRepo, postRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	postService := services.NewPostService(postRepo, identityService)
	storyService := services.NewStoryService(storyRepo, identityService, notificationService)
	engagementService := services.NewEngagementService(postRepo, storyRepo, identityService, notificationService)
	trendingService := services.NewTrendingService(postRepo, cache)
	leaderboardService := services.NewLeaderboardService(actionRepo, userRepo, cache)
	sweeper := services.NewSweeper(storyRepo, notificationRepo)

	// --- Protected routes ---
	api := e.Group("/api/v1")
	api.Use(middleware.PrincipalMiddleware())

	handlers.NewPostHandler(postService).RegisterPostRoutes(api)
	handlers.NewStoryHandler(storyService).RegisterStoryRoutes(api)
	handlers.NewEngagementHandler(engagementService).RegisterEngagementRoutes(api)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api)
	handlers.NewAggregateHandler(trendingService, leaderboardService).RegisterAggregateRoutes(api)

	logrus.Info("All routes configured")
	return &Services{Sweeper: sweeper}, nil
}
