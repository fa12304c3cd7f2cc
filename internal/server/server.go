// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"haven/internal/cache"
	"haven/internal/config"
	"haven/internal/database"
	"haven/internal/mail"
	"haven/internal/middleware"
	"haven/internal/models"
	"haven/internal/notifications"
	"haven/internal/repository"
	"haven/internal/seed"
	"haven/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository

	notifier *notifications.Notifier

	articleService  *service.ArticleService
	commentService  *service.CommentService
	reactionService *service.ReactionService
	ratingService   *service.RatingService
	followService   *service.FollowService
	profileService  *service.ProfileService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := seed.Impressions(context.Background(), db); err != nil {
		return nil, fmt.Errorf("impression seeding failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	var mailer mail.Mailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSender)
	}

	return NewServerWithDeps(cfg, db, redisClient, mailer)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use it to run against an in-memory database without Redis or SMTP.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, mailer mail.Mailer) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	tagRepo := repository.NewTagRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	followRepo := repository.NewFollowRepository(db)

	middleware.InitMiddleware(cfg)
	prom := middleware.InitMetrics("haven-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
	}

	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
	}

	server.articleService = service.NewArticleService(
		articleRepo, tagRepo, profileRepo, server.notifier, mailer, cfg.AppHost)
	server.commentService = service.NewCommentService(commentRepo, articleRepo, server.notifier)
	server.reactionService = service.NewReactionService(reactionRepo, articleRepo)
	server.ratingService = service.NewRatingService(ratingRepo, articleRepo)
	server.followService = service.NewFollowService(followRepo, profileRepo, server.notifier)
	server.profileService = service.NewProfileService(profileRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", s.Signup)
	auth.Post("/login", s.Login)

	api.Get("/tags", s.GetTags)

	// Article routes. Specific /:slug/:resource routes are registered BEFORE
	// the generic /:slug routes.
	articles := api.Group("/articles")
	articles.Get("/", s.GetArticles)
	articles.Post("/", middleware.AuthRequired, s.CreateArticle)
	articles.Get("/:slug/comments/:id/thread", s.GetCommentThread)
	articles.Post("/:slug/comments/:id/thread", middleware.AuthRequired, s.CreateThreadReply)
	articles.Get("/:slug/comments", s.GetComments)
	articles.Post("/:slug/comments", middleware.AuthRequired, s.CreateComment)
	articles.Put("/:slug/comments/:id", middleware.AuthRequired, s.UpdateComment)
	articles.Delete("/:slug/comments/:id", middleware.AuthRequired, s.DeleteComment)
	articles.Post("/:slug/reaction", middleware.AuthRequired, s.ReactToArticle)
	articles.Delete("/:slug/reaction", middleware.AuthRequired, s.RemoveReaction)
	articles.Post("/:slug/rate", middleware.AuthRequired, s.RateArticle)
	articles.Post("/:slug/share", middleware.AuthRequired, s.ShareArticle)
	articles.Get("/:slug", middleware.OptionalAuth, s.GetArticle)
	articles.Put("/:slug", middleware.AuthRequired, s.UpdateArticle)
	articles.Delete("/:slug", middleware.AuthRequired, s.DeleteArticle)

	// Profile routes, same specific-before-generic ordering
	profiles := api.Group("/profiles")
	profiles.Get("/", s.GetProfiles)
	profiles.Put("/", middleware.AuthRequired, s.UpdateMyProfile)
	profiles.Post("/:username/follow", middleware.AuthRequired, s.FollowUser)
	profiles.Delete("/:username/follow", middleware.AuthRequired, s.UnfollowUser)
	profiles.Get("/:username/following", s.GetFollowing)
	profiles.Get("/:username/followers", s.GetFollowers)
	profiles.Get("/:username", middleware.OptionalAuth, s.GetProfile)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Eventing degrades gracefully without Redis; readiness only reports it.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "Haven API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
