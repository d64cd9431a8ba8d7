package router

import (
	"github.com/daksh-app/daksh/backend/internal/handlers"
	"github.com/daksh-app/daksh/backend/internal/middleware"
	"github.com/daksh-app/daksh/backend/internal/ratelimit"
	"github.com/daksh-app/daksh/backend/internal/repositories"
	"github.com/daksh-app/daksh/backend/internal/storage"
	"github.com/daksh-app/daksh/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
)

// Deps is everything the routes need.
type Deps struct {
	Repos     *repositories.Repositories
	Media     storage.MediaStore
	Limiter   ratelimit.Limiter
	JWTSecret string
	// Firebase is nil when Firebase auth is not configured.
	Firebase middleware.IDTokenVerifier
	Logger   logger.Logger
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, log logger.Logger) {
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Info("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Deps) {
	log := deps.Logger
	repos := deps.Repos

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	auth := middleware.AuthConfig{
		JWTSecret: deps.JWTSecret,
		Firebase:  deps.Firebase,
		Students:  repos.Students,
		Logger:    log,
	}

	// --- Public routes; identity is optional ---
	api := e.Group("/api")
	api.Use(middleware.Authenticate(auth))

	feedHandler := handlers.NewFeedHandler(repos.Posts, repos.Stats, repos.SavedPosts, log)
	feedHandler.RegisterFeedRoutes(api)

	hashtagHandler := handlers.NewHashtagHandler(repos.Posts)
	hashtagHandler.RegisterHashtagRoutes(api)

	followHandler := handlers.NewFollowHandler(repos.Follows)
	followHandler.RegisterFollowRoutes(api)

	postScoped := api.Group("/video-assignment/:postId")
	statsHandler := handlers.NewHighlightStatsHandler(repos.Stats, repos.Posts, deps.Limiter, log)
	statsHandler.RegisterHighlightStatsRoutes(postScoped)
	commentHandler := handlers.NewCommentHandler(repos.CommentLikes, repos.Stats, log)
	commentHandler.RegisterCommentRoutes(postScoped)
	log.Info("Public API routes configured.")

	// --- Protected routes ---
	auth.Required = true
	v1 := e.Group("/api/v1")
	v1.Use(middleware.Authenticate(auth))

	postHandler := handlers.NewPostHandler(repos.Posts, repos.Students, deps.Media, log)
	postHandler.RegisterPostRoutes(v1)

	savedPostHandler := handlers.NewSavedPostHandler(repos.SavedPosts, repos.Posts)
	savedPostHandler.RegisterSavedPostRoutes(v1)
	log.Info("Protected API routes configured.")
}
