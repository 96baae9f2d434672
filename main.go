package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/cvmate/backend/auth"
	"github.com/cvmate/backend/config"
	_ "github.com/cvmate/backend/docs"
	"github.com/cvmate/backend/gemini"
	"github.com/cvmate/backend/handlers"
	"github.com/cvmate/backend/interview"
	"github.com/cvmate/backend/logger"
	"github.com/cvmate/backend/storage"
)

// @title CV Mate API
// @version 1.0
// @description Career services backend: resume building, AI mock interviews, community feed, job board, messaging and blog.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@cvmate.app

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load .env file if present (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	zlog, err := logger.New(cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Set Gin mode based on debug setting
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create context for initialization
	ctx := context.Background()

	// Initialize Firestore client
	zlog.Info("Initializing Firestore client")
	firestoreClient, err := storage.NewFirestoreClient(ctx, cfg)
	if err != nil {
		zlog.Fatal("Failed to initialize Firestore client", zap.Error(err))
	}
	defer firestoreClient.Close()

	// Initialize Cloud Storage client
	zlog.Info("Initializing Cloud Storage client")
	storageClient, err := storage.NewCloudStorageClient(ctx, cfg)
	if err != nil {
		zlog.Fatal("Failed to initialize Cloud Storage client", zap.Error(err))
	}
	defer storageClient.Close()

	// Initialize Gemini client
	zlog.Info("Initializing Gemini client")
	geminiClient, err := gemini.NewClient(ctx, cfg)
	if err != nil {
		zlog.Fatal("Failed to create Gemini client", zap.Error(err))
	}
	defer geminiClient.Close()

	// Initialize auth service
	jwtService := auth.NewJWTService(cfg)

	// Interview session engine
	interviewService := interview.NewService(firestoreClient, geminiClient, zlog)

	// Create handlers
	authHandler := handlers.NewAuthHandler(firestoreClient, jwtService, zlog)
	resumeHandler := handlers.NewResumeHandler(firestoreClient, geminiClient, zlog)
	interviewHandler := handlers.NewInterviewHandler(interviewService, zlog)
	postHandler := handlers.NewPostHandler(firestoreClient, zlog)
	jobHandler := handlers.NewJobHandler(firestoreClient, zlog)
	articleHandler := handlers.NewArticleHandler(firestoreClient, geminiClient, zlog)
	messageHandler := handlers.NewMessageHandler(firestoreClient, zlog)
	notificationHandler := handlers.NewNotificationHandler(firestoreClient, zlog)
	dashboardHandler := handlers.NewDashboardHandler(firestoreClient, zlog)
	uploadHandler := handlers.NewUploadHandler(storageClient, zlog)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Configure CORS for the web frontend
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Register routes
	router.GET("/health", handlers.HealthCheck)

	authed := auth.Middleware(jwtService)

	api := router.Group("/api")
	{
		// Auth endpoints (public)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Protected auth endpoints
		authProtected := api.Group("/auth")
		authProtected.Use(authed)
		{
			authProtected.GET("/profile", authHandler.GetProfile)
			authProtected.PUT("/profile", authHandler.UpdateProfile)
		}

		// Resumes (owner only)
		resumes := api.Group("/resumes")
		resumes.Use(authed)
		{
			resumes.GET("", resumeHandler.List)
			resumes.POST("", resumeHandler.Create)
			resumes.GET("/:id", resumeHandler.Get)
			resumes.PUT("/:id", resumeHandler.Update)
			resumes.DELETE("/:id", resumeHandler.Delete)
			resumes.POST("/enhance", resumeHandler.Enhance)
			resumes.POST("/:id/analyze", resumeHandler.Analyze)
		}

		// Mock interviews (owner only)
		interviews := api.Group("/interviews")
		interviews.Use(authed)
		{
			interviews.POST("", interviewHandler.Start)
			interviews.GET("", interviewHandler.List)
			interviews.GET("/:id", interviewHandler.Get)
			interviews.POST("/:id/message", interviewHandler.SendMessage)
			interviews.POST("/:id/end", interviewHandler.End)
		}

		// Community feed
		posts := api.Group("/posts")
		{
			posts.GET("", postHandler.List)
			posts.POST("", authed, postHandler.Create)
			posts.DELETE("/:id", authed, postHandler.Delete)
			posts.PUT("/:id/like", authed, postHandler.Like)
			posts.POST("/:id/comments", authed, postHandler.Comment)
		}

		// Job board: reads are public, writes are admin only
		jobs := api.Group("/jobs")
		{
			jobs.GET("", jobHandler.List)
			jobs.GET("/:id", jobHandler.Get)
			jobs.POST("", authed, auth.RequireAdmin(), jobHandler.Create)
			jobs.PUT("/:id", authed, auth.RequireAdmin(), jobHandler.Update)
			jobs.DELETE("/:id", authed, auth.RequireAdmin(), jobHandler.Delete)
			jobs.POST("/:id/apply", authed, jobHandler.Apply)
		}

		// Blog articles: reads are public
		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.List)
			articles.GET("/:id", articleHandler.Get)
			articles.POST("", authed, articleHandler.Create)
			articles.PUT("/:id", authed, articleHandler.Update)
			articles.DELETE("/:id", authed, articleHandler.Delete)
		}

		// Direct messages
		messages := api.Group("/messages")
		messages.Use(authed)
		{
			messages.GET("/conversations", messageHandler.Conversations)
			messages.GET("/:userId", messageHandler.Thread)
			messages.POST("", messageHandler.Send)
		}

		// Notifications
		notifications := api.Group("/notifications")
		notifications.Use(authed)
		{
			notifications.GET("", notificationHandler.List)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
		}

		// Dashboard
		api.GET("/dashboard/stats", authed, dashboardHandler.Stats)

		// Image uploads
		api.POST("/uploads/image", authed, uploadHandler.Image)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		zlog.Info("Starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exited gracefully")
}
