package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/storyweave/story-platform/docs"
	"github.com/storyweave/story-platform/internal/api/handler"
	"github.com/storyweave/story-platform/internal/api/middleware"
	"github.com/storyweave/story-platform/internal/core/service"
	"github.com/storyweave/story-platform/internal/infrastructure/config"
	mongodb "github.com/storyweave/story-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/storyweave/story-platform/internal/infrastructure/db/redis"
	"github.com/storyweave/story-platform/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and starts
// the rating recompute workers. Workers stop when ctx is cancelled.
func NewRouter(ctx context.Context, db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storyweave"))

	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	storyRepo := mongodb.NewStoryRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)
	ratingRepo := mongodb.NewRatingRepository(db)

	// --- Services ---
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	loginLimiter := redisdb.NewLoginLimiter(rdb, 0)
	authService := service.NewAuthService(userRepo, tokenService, loginLimiter, log)
	storyService := service.NewStoryService(storyRepo, authService, log)
	commentService := service.NewCommentService(commentRepo, storyRepo, log)

	dispatcher := queue.NewDispatcher(0, log)
	ratingService := service.NewRatingService(ratingRepo, storyRepo, dispatcher, log)
	dispatcher.Start(ctx, ratingService.Recompute)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	storyHandler := handler.NewStoryHandler(storyService)
	commentHandler := handler.NewCommentHandler(commentService)
	ratingHandler := handler.NewRatingHandler(ratingService)

	// Resolve the principal once per request. Anonymous requests pass
	// through with no principal set.
	e.Use(middleware.Authenticate(authService))
	requireAuth := middleware.RequireAuth()

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/auth/me", authHandler.Me, requireAuth)

	// --- Story routes ---
	v1.GET("/stories", storyHandler.List)
	v1.GET("/stories/search", storyHandler.Search)
	v1.GET("/stories/top", storyHandler.TopRated)
	v1.GET("/stories/me", storyHandler.Mine, requireAuth)
	v1.GET("/stories/author/:username", storyHandler.ByAuthor)
	v1.GET("/stories/:id", storyHandler.Get)
	v1.GET("/stories/:id/ownership", storyHandler.GetOwned)
	v1.POST("/stories", storyHandler.Create, requireAuth)
	v1.PUT("/stories/:id", storyHandler.Update, requireAuth)
	v1.PUT("/stories/:id/metadata", storyHandler.UpdateMetadata, requireAuth)
	v1.DELETE("/stories/:id", storyHandler.Delete, requireAuth)
	v1.POST("/stories/:id/chapters", storyHandler.AddChapter, requireAuth)
	v1.PUT("/stories/:id/chapters/:number", storyHandler.UpdateChapter, requireAuth)

	// --- Comment routes ---
	v1.GET("/stories/:id/comments", commentHandler.List)
	v1.POST("/stories/:id/comments", commentHandler.Create, requireAuth)
	v1.GET("/stories/:id/chapters/:number/comments", commentHandler.List)
	v1.POST("/stories/:id/chapters/:number/comments", commentHandler.Create, requireAuth)
	v1.PUT("/comments/:id", commentHandler.Update, requireAuth)
	v1.DELETE("/comments/:id", commentHandler.Delete, requireAuth)

	// --- Rating routes ---
	v1.GET("/stories/:id/ratings", ratingHandler.Stats)
	v1.GET("/stories/:id/ratings/me", ratingHandler.Mine, requireAuth)
	v1.POST("/stories/:id/ratings", ratingHandler.Rate, requireAuth)
	v1.DELETE("/stories/:id/ratings", ratingHandler.Unrate, requireAuth)
	v1.GET("/stories/:id/chapters/:number/ratings", ratingHandler.Stats)
	v1.GET("/stories/:id/chapters/:number/ratings/me", ratingHandler.Mine, requireAuth)
	v1.POST("/stories/:id/chapters/:number/ratings", ratingHandler.Rate, requireAuth)
	v1.DELETE("/stories/:id/chapters/:number/ratings", ratingHandler.Unrate, requireAuth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
